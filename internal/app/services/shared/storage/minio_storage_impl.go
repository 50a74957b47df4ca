package storage

import (
	"bytes"
	"context"
	"time"

	"medilink-service/internal/app/contracts"
	"medilink-service/internal/pkg/exceptions"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) UploadObject(ctx context.Context, bucketName, objectName string, payload []byte, contentType string) error {
	_, err := m.MinioClient.PutObject(
		ctx,
		bucketName,
		objectName,
		bytes.NewReader(payload),
		int64(len(payload)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	return nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiryTime, nil)
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, bucketName)
	}
	return presignedURL.String(), nil
}
