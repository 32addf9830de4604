package utils

import (
	"io"

	"github.com/MrSnakeDoc/starfav/internal/logger"
)

// Close closes c and ignores any error.
// Use for best-effort cleanup in defer where error handling is not critical.
func Close(c io.Closer) {
	_ = c.Close()
}

// CloseFunc is a shutdown hook for handles that are not io.Closers (ex: mongo client).
type CloseFunc func() error

func (f CloseFunc) Close() error { return f() }

// MustClose closes c and logs the outcome under name.
func MustClose(c io.Closer, name string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return
	}
	log.Info("closed cleanly", logger.String("resource", name))
}
