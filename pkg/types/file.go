// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path"
	"strings"
)

// DocumentKind classifies a stored file by what the collector can do with it.
type DocumentKind string

const (
	KindMarkdown DocumentKind = "markdown"
	KindImage    DocumentKind = "image"
	KindOther    DocumentKind = "other"
)

// SupportsImageExport reports whether documents of this kind can have their
// embedded images exported.
func (k DocumentKind) SupportsImageExport() bool {
	return k == KindMarkdown
}

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "bmp": true,
	"svg": true, "webp": true, "avif": true, "tif": true, "tiff": true,
}

// FileRef is a resolved handle to a concrete file in a vault.
type FileRef struct {
	// Path is slash-separated and relative to the vault root (e.g. "notes/trip.md").
	Path string `json:"path" yaml:"path"`

	// Name is the final path element including extension ("trip.md").
	Name string `json:"name" yaml:"name"`

	// Basename is Name without its extension ("trip").
	Basename string `json:"basename" yaml:"basename"`

	// Extension is the lower-cased extension without the dot ("md").
	Extension string `json:"extension" yaml:"extension"`
}

// NewFileRef builds a FileRef from a slash-separated vault path.
func NewFileRef(p string) FileRef {
	name := path.Base(p)
	ext := path.Ext(name)
	return FileRef{
		Path:      p,
		Name:      name,
		Basename:  strings.TrimSuffix(name, ext),
		Extension: strings.ToLower(strings.TrimPrefix(ext, ".")),
	}
}

// Dir returns the vault folder containing the file, or "" at the root.
func (f FileRef) Dir() string {
	d := path.Dir(f.Path)
	if d == "." || d == "/" {
		return ""
	}
	return d
}

// Kind classifies the file by extension.
func (f FileRef) Kind() DocumentKind {
	switch {
	case f.Extension == "md":
		return KindMarkdown
	case imageExtensions[f.Extension]:
		return KindImage
	default:
		return KindOther
	}
}
