package storage

import (
	"context"

	"scopeworks_backend/platform/apperr"
)

// RequestPhotoStore binds the generic storage service to the request
// photos bucket and implements the intake context's photo port.
type RequestPhotoStore struct {
	svc    StorageService
	bucket string
}

func NewRequestPhotoStore(svc StorageService, bucket string) *RequestPhotoStore {
	return &RequestPhotoStore{svc: svc, bucket: bucket}
}

// GenerateRequestPhotoUploadURL issues a presigned upload slot for one
// request photo. Validation failures surface as 400s.
func (p *RequestPhotoStore) GenerateRequestPhotoUploadURL(ctx context.Context, folder, fileName, contentType string, sizeBytes int64) (string, string, error) {
	if err := p.svc.ValidateContentType(contentType); err != nil {
		return "", "", apperr.Validation(err.Error())
	}
	if err := p.svc.ValidateFileSize(sizeBytes); err != nil {
		return "", "", apperr.Validation(err.Error())
	}
	presigned, err := p.svc.GenerateUploadURL(ctx, p.bucket, folder, fileName, contentType, sizeBytes)
	if err != nil {
		return "", "", err
	}
	return presigned.URL, presigned.FileKey, nil
}
