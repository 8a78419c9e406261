// Package loader resolves script names to script source text.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Extension is the file extension of VulnScript sources.
const Extension = ".vts"

// Loader supplies script source text by name. Script inclusion and the
// interpreter both go through this interface.
type Loader interface {
	Load(name string) (string, error)
}

// NoOpLoader never finds anything. Used by tests and embedded runs that
// have no script tree.
type NoOpLoader struct{}

func (NoOpLoader) Load(name string) (string, error) {
	return "", errors.Errorf("script not found: %s", name)
}

// DirLoader loads scripts from a directory tree.
type DirLoader struct {
	root string
}

// NewDirLoader creates a loader rooted at the given directory.
func NewDirLoader(root string) *DirLoader {
	return &DirLoader{root: root}
}

func (l *DirLoader) Load(name string) (string, error) {
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	path := filepath.Join(l.root, filepath.FromSlash(name))
	source, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to load script %s", name)
	}
	return string(source), nil
}
