package timer

import "context"

// StaticIdentity reports a fixed user id, set once at login. The zero
// value is anonymous.
type StaticIdentity struct {
	userID string
}

func NewStaticIdentity(userID string) *StaticIdentity {
	return &StaticIdentity{userID: userID}
}

func (i *StaticIdentity) UserID(context.Context) (string, error) {
	return i.userID, nil
}
