// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds embedded image references in markdown text.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/image-collector/pkg/types"
)

// imageRe matches both embed forms in a single alternation so that one
// left-to-right pass yields references in document order:
//
//	group 1: ![[path|size]]
//	group 2: alt text of ![alt](path|modifiers), unused
//	group 3: path of ![alt](path|modifiers), modifiers excluded
var imageRe = regexp.MustCompile(`!\[\[(.*?)\]\]|!\[(.*?)\]\((.*?)(?:\|.*?)?\)`)

// ImageReferences scans text for wikilink embeds and inline image links and
// returns one reference per occurrence in document order. Extraction never
// fails: malformed or empty matches are skipped.
func ImageReferences(text string) []types.ImageReference {
	var refs []types.ImageReference

	for _, m := range imageRe.FindAllStringSubmatchIndex(text, -1) {
		var (
			start, end int
			kind       types.ReferenceKind
		)
		switch {
		case m[2] >= 0:
			start, end, kind = m[2], m[3], types.ReferenceWikilink
		case m[6] >= 0:
			start, end, kind = m[6], m[7], types.ReferenceInline
		default:
			continue
		}

		literal := text[start:end]
		p := normalizePath(literal)
		if p == "" {
			continue
		}

		refs = append(refs, types.ImageReference{
			RawPath: p,
			Literal: literal,
			Kind:    kind,
			Offset:  m[0],
		})
	}

	return refs
}

// normalizePath percent-decodes, trims, and cuts the path at the first pipe.
// A path with malformed escapes is kept undecoded.
func normalizePath(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '|'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
