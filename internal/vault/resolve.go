// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vault

import (
	"path"
	"strings"

	"github.com/pdiddy/image-collector/pkg/types"
)

// ResolveLink returns the file a link written in the note at originPath
// points to. A "#subpath" suffix is ignored. Candidates are tried in order:
//
//  1. the link relative to the origin note's folder
//  2. the link as a vault-absolute path
//  3. both of the above with ".md" appended, for links without an extension
//  4. any file whose path is the link or ends in "/<link>"; a match in the
//     origin's folder wins, otherwise the shortest path (then lexical order)
//
// Step 4 is repeated case-insensitively if nothing matched exactly.
func (v *Vault) ResolveLink(link, originPath string) (types.FileRef, bool) {
	link = strings.TrimSpace(strings.ReplaceAll(link, `\`, "/"))
	if i := strings.IndexByte(link, '#'); i >= 0 {
		link = link[:i]
	}
	if link == "" {
		return types.FileRef{}, false
	}

	originDir := types.NewFileRef(originPath).Dir()

	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, c := range directCandidates(link, originDir) {
		if ref, ok := v.files[c]; ok {
			return ref, true
		}
	}

	suffix := path.Clean(strings.TrimLeft(link, "/"))
	if suffix == "." || suffix == ".." || strings.HasPrefix(suffix, "../") {
		return types.FileRef{}, false
	}

	if ref, ok := v.bestSuffixMatch(suffix, originDir, func(s string) string { return s }); ok {
		return ref, true
	}
	return v.bestSuffixMatch(suffix, originDir, strings.ToLower)
}

// directCandidates lists the exact vault paths a link may refer to.
func directCandidates(link, originDir string) []string {
	var bases []string
	if !strings.HasPrefix(link, "/") {
		bases = append(bases, path.Join(originDir, link))
	}
	bases = append(bases, path.Clean(strings.TrimLeft(link, "/")))

	out := make([]string, 0, len(bases)*2)
	out = append(out, bases...)
	if path.Ext(link) == "" {
		for _, b := range bases {
			out = append(out, b+".md")
		}
	}
	return out
}

// bestSuffixMatch scans the index for files matching suffix after fold is
// applied to both sides. Callers hold v.mu.
func (v *Vault) bestSuffixMatch(suffix, originDir string, fold func(string) string) (types.FileRef, bool) {
	want := fold(suffix)
	withMD := ""
	if path.Ext(suffix) == "" {
		withMD = want + ".md"
	}

	var (
		best  types.FileRef
		found bool
	)
	for p, ref := range v.files {
		fp := fold(p)
		if !hasPathSuffix(fp, want) && (withMD == "" || !hasPathSuffix(fp, withMD)) {
			continue
		}
		if !found || better(ref, best, originDir) {
			best, found = ref, true
		}
	}
	return best, found
}

func hasPathSuffix(p, suffix string) bool {
	return p == suffix || strings.HasSuffix(p, "/"+suffix)
}

// better reports whether a should be preferred over b for a link written in
// originDir.
func better(a, b types.FileRef, originDir string) bool {
	aLocal, bLocal := a.Dir() == originDir, b.Dir() == originDir
	if aLocal != bLocal {
		return aLocal
	}
	if len(a.Path) != len(b.Path) {
		return len(a.Path) < len(b.Path)
	}
	return a.Path < b.Path
}
