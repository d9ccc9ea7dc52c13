package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// LocalBucket stores objects as files in a directory served by the web server.
type LocalBucket struct {
	dir     string
	baseURL string
}

// NewLocalBucket creates dir if needed and returns a bucket whose objects are
// served under baseURL, e.g. "/uploads/".
func NewLocalBucket(dir, baseURL string) (*LocalBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalBucket{dir: dir, baseURL: baseURL}, nil
}

// Dir returns the directory holding the objects.
func (b *LocalBucket) Dir() string {
	return b.dir
}

// Upload writes data to a temporary file and renames it into place.
func (b *LocalBucket) Upload(ctx context.Context, name string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("uploading object: invalid name %q", name)
	}

	tmp, err := os.CreateTemp(b.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("uploading object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(b.dir, name)); err != nil {
		return fmt.Errorf("uploading object: %w", err)
	}
	return nil
}

// PublicURL returns the path under which the web server serves name.
func (b *LocalBucket) PublicURL(name string) string {
	return b.baseURL + url.PathEscape(name)
}
