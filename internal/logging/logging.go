package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Init installs the default slog logger. When logFile is non-empty, output
// also goes to a size-rotated file.
func Init(logFile string) *slog.Logger {
	var w io.Writer = os.Stderr
	if logFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	logger := slog.New(slog.NewTextHandler(w, nil))
	slog.SetDefault(logger)
	return logger
}
