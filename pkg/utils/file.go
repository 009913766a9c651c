package utils

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/zap"

	custom_logger "github.com/instill-ai/detection-backend/pkg/logger"
)

// RemoveScratchFile deletes a request's scratch file. Failures are logged and
// never returned: the request outcome does not depend on the cleanup.
func RemoveScratchFile(ctx context.Context, path string) {
	logger, _ := custom_logger.GetZapLogger(ctx)

	err := os.Remove(path)
	switch {
	case err == nil:
		logger.Debug("Removed scratch file", zap.String("path", path))
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("Scratch file already absent", zap.String("path", path))
	default:
		logger.Error("Failed to remove scratch file", zap.String("path", path), zap.Error(err))
	}
}
