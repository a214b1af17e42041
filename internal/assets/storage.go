// Package assets generates collision-free file names for product icons
// and images and persists the bytes under typed sub-paths.
package assets

import (
	"os"
	"path/filepath"

	"github.com/labstack/gommon/random"
	"github.com/pkg/errors"

	"github.com/brightline/catalogd/internal/domain"
)

// Asset kinds; each maps to a sub-path under the storage base directory.
const (
	KindIcons  = "icons"
	KindImages = "images"
)

const tokenLength = 16

type Storage struct {
	basedir string
}

func NewStorage(basedir string) *Storage {
	return &Storage{basedir: basedir}
}

func validKind(kind string) bool {
	return kind == KindIcons || kind == KindImages
}

func (s *Storage) path(kind, name string) string {
	return filepath.Join(s.basedir, kind, name)
}

// Exists reports whether a file with that name is already present under
// the kind's sub-path.
func (s *Storage) Exists(kind, name string) bool {
	_, err := os.Stat(s.path(kind, name))
	return err == nil
}

// GenerateName returns a file name that does not collide with any existing
// file under the kind's sub-path. The original extension is preserved; the
// base is a random 16-character token. The loop guarantees the invariant,
// a first-try hit is the overwhelmingly common case.
func (s *Storage) GenerateName(kind, originalName string) (string, error) {
	if !validKind(kind) {
		return "", errors.Wrapf(domain.ErrInvalidAssetKind, "kind %q", kind)
	}
	ext := filepath.Ext(originalName)
	for {
		name := random.String(tokenLength) + ext
		if !s.Exists(kind, name) {
			return name, nil
		}
	}
}

// CreateResource writes content under the kind's sub-path, creating the
// directory when absent. An existing file with the same name is a
// conflict; the naming guarantee makes that unreachable in practice but it
// is still checked.
func (s *Storage) CreateResource(kind, name string, content []byte) error {
	if !validKind(kind) {
		return errors.Wrapf(domain.ErrInvalidAssetKind, "kind %q", kind)
	}
	if err := os.MkdirAll(filepath.Join(s.basedir, kind), 0755); err != nil {
		return errors.Wrapf(domain.ErrPersistence, "create asset dir: %v", err)
	}
	if s.Exists(kind, name) {
		return errors.Wrapf(domain.ErrConflict, "asset %s/%s already exists", kind, name)
	}
	if err := os.WriteFile(s.path(kind, name), content, 0644); err != nil {
		return errors.Wrapf(domain.ErrPersistence, "write asset %s/%s: %v", kind, name, err)
	}
	return nil
}

// DeleteResource removes the file when present. Deletion is idempotent: a
// missing file is a no-op, not an error.
func (s *Storage) DeleteResource(kind, name string) error {
	if !validKind(kind) {
		return errors.Wrapf(domain.ErrInvalidAssetKind, "kind %q", kind)
	}
	err := os.Remove(s.path(kind, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(domain.ErrPersistence, "delete asset %s/%s: %v", kind, name, err)
	}
	return nil
}

// ListResources returns the file names currently stored under the kind's
// sub-path. Used by the orphan reconciliation sweep.
func (s *Storage) ListResources(kind string) ([]string, error) {
	if !validKind(kind) {
		return nil, errors.Wrapf(domain.ErrInvalidAssetKind, "kind %q", kind)
	}
	entries, err := os.ReadDir(filepath.Join(s.basedir, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(domain.ErrPersistence, "list assets %s: %v", kind, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
