package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes files under <dir>/<category>/<random-hex><ext> and
// returns the relative path as the stored reference.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, category, ext string, file io.Reader) (string, error) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	dir := filepath.Join(s.Dir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create category dir: %w", err)
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	path := filepath.Join(dir, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	// Stored reference is the relative path; responses expand it to a URL.
	return "/" + filepath.ToSlash(path), nil
}

// PublicURL expands a stored relative reference to a full URL for the
// requesting client. Absolute references (S3) pass through unchanged.
func PublicURL(scheme, host, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return scheme + "://" + host + ref
}
