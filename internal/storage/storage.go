// Package storage abstracts where uploaded files (damage claim images)
// land: the local uploads directory by default, S3 when a bucket is
// configured.
package storage

import (
	"context"
	"io"
)

// FileStore saves an uploaded file under a category and returns the
// reference to persist. Local storage returns a relative path that list
// responses expand to a full URL; S3 returns an absolute URL.
type FileStore interface {
	Save(ctx context.Context, category, ext string, file io.Reader) (string, error)
}
