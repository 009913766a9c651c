package minio

import (
	"context"
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/instill-ai/detection-backend/config"

	log "github.com/instill-ai/detection-backend/pkg/logger"
)

// Fetcher downloads remote objects into local scratch storage.
type Fetcher interface {
	// FetchFile downloads bucket/objectPath to localPath, creating exactly
	// one local file.
	FetchFile(ctx context.Context, bucket string, objectPath string, localPath string) error
}

// Minio is a Fetcher backed by an S3 compatible object store.
type Minio struct {
	client *minio.Client
}

// NewMinioClient creates the object store client. No request is made until
// the first fetch.
func NewMinioClient(ctx context.Context, cfg *config.MinioConfig) (*Minio, error) {
	logger, _ := log.GetZapLogger(ctx)
	logger.Info("Initializing Minio client...")

	client, err := minio.New(cfg.Host+":"+cfg.Port, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPwd, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		logger.Error("cannot create minio client",
			zap.String("host:port", cfg.Host+":"+cfg.Port),
			zap.String("user", cfg.RootUser),
			zap.Error(err))
		return nil, err
	}

	return &Minio{client: client}, nil
}

// FetchFile downloads the object into localPath.
func (m *Minio) FetchFile(ctx context.Context, bucket string, objectPath string, localPath string) error {
	logger, _ := log.GetZapLogger(ctx)
	logger.Debug("Downloading image",
		zap.String("bucket", bucket),
		zap.String("object", objectPath),
		zap.String("local_path", localPath))

	if err := m.client.FGetObject(ctx, bucket, objectPath, localPath, minio.GetObjectOptions{}); err != nil {
		resp := minio.ToErrorResponse(err)
		logger.Error("Failed to get file from MinIO",
			zap.String("bucket", bucket),
			zap.String("object", objectPath),
			zap.String("code", resp.Code),
			zap.Error(err))
		return errors.Wrapf(err, "download %s/%s", bucket, objectPath)
	}
	return nil
}

// ScratchPath returns a fresh local path under dir. Every call draws a new
// random id, so the path never depends on caller supplied values. The object
// key's base name is kept as a suffix so that scratch files stay recognizable.
func ScratchPath(dir string, objectKey string) (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "generate scratch file id")
	}
	return filepath.Join(dir, id.String()+"-"+filepath.Base(objectKey)), nil
}
