package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type scanner interface {
	Scan(dest ...interface{}) error
}
