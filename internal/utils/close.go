package utils

import (
	"io"

	"github.com/MrSnakeDoc/poetry/internal/logger"
)

// Close closes c and logs a failure with what it was.
func Close(c io.Closer, what string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", what), logger.Error(err))
	}
}
