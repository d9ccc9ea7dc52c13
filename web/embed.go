package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates content
var content embed.FS

// SiteContentFile is the embedded default marketing copy, relative to ContentFS.
const SiteContentFile = "site.yaml"

// StaticFS returns the static file system.
func StaticFS() fs.FS {
	return sub("static")
}

// TemplatesFS returns the templates file system.
func TemplatesFS() fs.FS {
	return sub("templates")
}

// ContentFS returns the site content file system.
func ContentFS() fs.FS {
	return sub("content")
}

func sub(dir string) fs.FS {
	s, err := fs.Sub(content, dir)
	if err != nil {
		log.Fatalf("failed to create %s sub-filesystem: %v", dir, err)
	}
	return s
}
