package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService defines the interface for call-recording storage operations.
type StorageService interface {
	// DownloadToTemp fetches the provider's short-lived recording URL into a
	// temp file and returns its path. The caller removes the file.
	DownloadToTemp(ctx context.Context, recordingURL, callID string) (string, error)
	// ArchiveRecording downloads the provider's recording URL and uploads it
	// to durable storage, returning the permanent public ID.
	ArchiveRecording(ctx context.Context, recordingURL, callID string) (string, error)
	UploadFile(ctx context.Context, localFilePath, destFolder string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}

// StorageServiceImpl implements StorageService using Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}
