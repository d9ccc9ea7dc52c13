// Package storage writes product images to a public bucket.
package storage

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Bucket stores objects and resolves their public URLs.
type Bucket interface {
	// Upload stores data under name, replacing any existing object.
	Upload(ctx context.Context, name string, data []byte, contentType string) error

	// PublicURL returns the URL at which name can be fetched.
	PublicURL(name string) string
}

// imageExtensions lists the accepted extensions per stored image type. The
// first one is used when the uploaded filename does not match the type.
var imageExtensions = map[string][]string{
	"image/jpeg": {"jpg", "jpeg"},
	"image/png":  {"png"},
	"image/gif":  {"gif"},
	"image/webp": {"webp"},
}

// ObjectName returns a fresh object name for data of the given MIME type.
// filename's extension, lower-cased, is kept when it names that type;
// otherwise the type's usual extension is used, and "bin" for other types.
func ObjectName(filename, mime string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	exts, ok := imageExtensions[mime]
	switch {
	case !ok:
		ext = "bin"
	case !slices.Contains(exts, ext):
		ext = exts[0]
	}
	return uuid.NewString() + "." + ext
}
