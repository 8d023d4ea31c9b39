package storage

import (
	"context"
	"errors"
)

var ErrUploadFailed = errors.New("upload failed")

// Uploader moves a local temp file into durable storage and returns its
// public URL. Implementations must remove localPath regardless of outcome;
// callers never reuse the file after Upload returns.
//
// Remove deletes a previously uploaded blob by its public URL so callers
// can undo the first upload of a multi-file operation when a later one
// fails. Removing an unknown URL is not an error.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
	Remove(ctx context.Context, url string) error
}
