// Package media is the external object-storage collaborator: it accepts an
// upload and returns a stable URL plus an opaque identifier used for later
// deletion.
package media

import (
	"context"
	"mime/multipart"
)

// UploadResult is what callers persist alongside the record that owns the
// image.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Store interface {
	// Upload pushes the file to the media host under a logical folder
	// ("posts", "profile-pics") and returns its URL and delete identifier.
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error)
	// Delete removes the object by its delete identifier. Deleting an
	// already-absent object is not an error.
	Delete(ctx context.Context, publicID string) error
}
