// Package pathresolve translates include paths referenced by a BIND
// configuration or zone file between the real filesystem and a "fake root"
// used to reinterpret absolute paths captured from another machine's
// configuration.
package pathresolve

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Resolver remaps include paths using a three-case rule: an absolute
// reference is rebased under root relative to fakeRoot; a reference that
// exists directly under root wins as-is; otherwise the reference is taken
// relative to the directory of the previously opened file.
type Resolver struct {
	// Root is the directory of the top-level configuration file.
	Root string
	// FakeRoot is the directory prefix that operator configurations treat
	// as their real root (commonly /etc/bind).
	FakeRoot string
}

// New builds a Resolver rooted at root, remapping absolute paths that were
// authored as if they lived under fakeRoot.
func New(root, fakeRoot string) *Resolver {
	return &Resolver{Root: root, FakeRoot: fakeRoot}
}

// Resolve returns the on-disk path that path (referenced from the file at
// last) should be read from.
func (r *Resolver) Resolve(path, last string) (string, error) {
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(r.FakeRoot, path)
		if err != nil {
			return "", errors.Wrapf(err, "rebasing absolute path %q under fake root %q", path, r.FakeRoot)
		}
		return filepath.Join(r.Root, rel), nil
	}

	fromRoot := filepath.Join(r.Root, path)
	if info, err := os.Stat(fromRoot); err == nil && info.Mode().IsRegular() {
		return fromRoot, nil
	}

	return filepath.Join(filepath.Dir(last), path), nil
}
