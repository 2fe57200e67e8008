package firebase

import "mime/multipart"

// StorageClient abstracts image storage so handlers can be tested without a
// real Firebase project.
type StorageClient interface {
	UploadProductImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
}

// FirebaseStorageClient is the production implementation backed by the
// package-level Firebase app.
type FirebaseStorageClient struct{}

func (f *FirebaseStorageClient) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadProductImage(file, filename, contentType)
}

func (f *FirebaseStorageClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}

// NewStorageClient returns the default storage client.
func NewStorageClient() StorageClient {
	return &FirebaseStorageClient{}
}
