// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault exposes a directory of notes and attachments as the host the
// exporter runs against: it reads notes, resolves links between files, and
// reads and writes binary content. All paths in its API are slash-separated
// and relative to the vault root.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/image-collector/pkg/types"
)

// ErrOutsideVault is returned for paths that escape the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// Vault is a directory tree of notes and attachments with an in-memory file
// index used for link resolution. It is safe for concurrent use.
type Vault struct {
	root      string
	overwrite bool

	mu    sync.RWMutex
	files map[string]types.FileRef
}

// Option configures a Vault.
type Option func(*Vault)

// WithOverwrite makes WriteBinary replace existing files instead of failing.
func WithOverwrite(overwrite bool) Option {
	return func(v *Vault) { v.overwrite = overwrite }
}

// Open indexes the vault rooted at dir. Hidden files and directories (such as
// .obsidian, .git, .trash) are not indexed.
func Open(dir string, opts ...Option) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving vault path %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening vault %s: not a directory", dir)
	}

	v := &Vault{root: abs}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.Refresh(); err != nil {
		return nil, err
	}
	return v, nil
}

// Root returns the absolute OS path of the vault.
func (v *Vault) Root() string {
	return v.root
}

// Refresh rebuilds the file index from disk.
func (v *Vault) Refresh() error {
	files := make(map[string]types.FileRef)
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == v.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(v.root, p)
		if err != nil {
			return err
		}
		ref := types.NewFileRef(filepath.ToSlash(rel))
		files[ref.Path] = ref
		return nil
	})
	if err != nil {
		return fmt.Errorf("indexing vault %s: %w", v.root, err)
	}

	v.mu.Lock()
	v.files = files
	v.mu.Unlock()
	return nil
}

// File returns the indexed file at vault path p.
func (v *Vault) File(p string) (types.FileRef, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return types.FileRef{}, err
	}
	v.mu.RLock()
	ref, ok := v.files[clean]
	v.mu.RUnlock()
	if !ok {
		return types.FileRef{}, fmt.Errorf("%s: %w", clean, fs.ErrNotExist)
	}
	return ref, nil
}

// Lookup finds a file from a command-line argument, which may be a vault
// path or an OS path (absolute or relative to the working directory) that
// lies inside the vault.
func (v *Vault) Lookup(arg string) (types.FileRef, error) {
	if ref, err := v.File(arg); err == nil {
		return ref, nil
	}
	abs, err := filepath.Abs(arg)
	if err != nil {
		return types.FileRef{}, fmt.Errorf("resolving %s: %w", arg, err)
	}
	rel, err := filepath.Rel(v.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return types.FileRef{}, fmt.Errorf("%s: %w", arg, ErrOutsideVault)
	}
	return v.File(filepath.ToSlash(rel))
}

// Markdown returns every indexed markdown note sorted by path.
func (v *Vault) Markdown() []types.FileRef {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var notes []types.FileRef
	for _, ref := range v.files {
		if ref.Kind() == types.KindMarkdown {
			notes = append(notes, ref)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
	return notes
}

// Read returns the text of a note.
func (v *Vault) Read(ctx context.Context, doc types.FileRef) (string, error) {
	data, err := v.readFile(ctx, doc.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBinary returns the bytes of a file.
func (v *Vault) ReadBinary(ctx context.Context, f types.FileRef) ([]byte, error) {
	return v.readFile(ctx, f.Path)
}

func (v *Vault) readFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	osPath, err := v.osPath(p)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(osPath)
}

// CreateFolder creates the folder name, including missing parents. It
// returns an error wrapping fs.ErrExist if the folder is already there.
func (v *Vault) CreateFolder(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	osPath, err := v.osPath(name)
	if err != nil {
		return err
	}
	if info, err := os.Stat(osPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("folder %s: %w", name, fs.ErrExist)
		}
		return fmt.Errorf("%s is a file: %w", name, fs.ErrExist)
	}
	if err := os.MkdirAll(osPath, 0o755); err != nil {
		return fmt.Errorf("creating folder %s: %w", name, err)
	}
	return nil
}

// WriteBinary creates the file at vault path p with data. The parent folder
// must exist. Unless the vault was opened WithOverwrite, an existing file is
// left untouched and an error wrapping fs.ErrExist is returned.
func (v *Vault) WriteBinary(ctx context.Context, p string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanPath(p)
	if err != nil {
		return err
	}
	osPath := filepath.Join(v.root, filepath.FromSlash(clean))

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if v.overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(osPath, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", p, fs.ErrExist)
		}
		return fmt.Errorf("creating %s: %w", p, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", p, err)
	}

	ref := types.NewFileRef(clean)
	v.mu.Lock()
	v.files[ref.Path] = ref
	v.mu.Unlock()
	return nil
}

// osPath converts a vault path to an OS path under the root.
func (v *Vault) osPath(p string) (string, error) {
	clean, err := cleanPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(v.root, filepath.FromSlash(clean)), nil
}

// cleanPath normalizes a vault path and rejects paths outside the vault.
func cleanPath(p string) (string, error) {
	clean := path.Clean(strings.TrimLeft(strings.ReplaceAll(p, `\`, "/"), "/"))
	if clean == "." {
		return "", fmt.Errorf("empty path %q: %w", p, ErrOutsideVault)
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%s: %w", p, ErrOutsideVault)
	}
	return clean, nil
}
