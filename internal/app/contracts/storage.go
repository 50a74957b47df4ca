package contracts

import (
	"context"
	"time"
)

type Storage interface {
	UploadObject(ctx context.Context, bucketName, objectName string, payload []byte, contentType string) error
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
