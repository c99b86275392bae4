// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"strings"

	"github.com/adrg/frontmatter"
)

type noteMeta struct {
	Title string `yaml:"title"`
}

// Title returns the frontmatter title of a note, or "" if the note has no
// frontmatter, no title, or frontmatter that does not parse.
func Title(text string) string {
	var meta noteMeta
	if _, err := frontmatter.Parse(strings.NewReader(text), &meta); err != nil {
		return ""
	}
	return strings.TrimSpace(meta.Title)
}
