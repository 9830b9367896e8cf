// Package assets loads files relative to the configured asset root.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Store resolves asset-relative paths against a file system.
type Store struct {
	fsys fs.FS
}

// New opens the directory root (Config.AssetRoot).
func New(root string) *Store { return &Store{fsys: os.DirFS(root)} }

// FromFS wraps an arbitrary file system, e.g. an embed.FS or fstest.MapFS.
func FromFS(fsys fs.FS) *Store { return &Store{fsys: fsys} }

// Read returns the contents of rel. Missing files wrap fs.ErrNotExist.
func (s *Store) Read(rel string) ([]byte, error) {
	b, err := fs.ReadFile(s.fsys, path.Clean(rel))
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", rel, err)
	}
	return b, nil
}

// LoadShader reads a GLSL file into a null-terminated string for OpenGL.
func (s *Store) LoadShader(name string) (string, error) {
	b, err := s.Read(path.Join("shaders", name))
	if err != nil {
		return "", err
	}
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
