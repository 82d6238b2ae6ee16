// Package store implements module build persistence in a flat JSON file.
package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gofrs/flock"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ModuleStore using a flat JSON file. Every Commit
// rewrites the file atomically, so a crash never leaves a partial module on disk.
//
// Several processes may share one file. Every operation takes an advisory lock
// on a sibling ".lock" file and rereads the file, and Commit replaces only its
// own module build, so concurrent writers never drop each other's modules.
type Store struct {
	path    string
	lock    *flock.Flock
	mu      sync.Mutex
	modules map[domain.ModuleID]*domain.ModuleBuild
}

// NewStore creates a new Store backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create directory for module store"), "path", path)
	}
	s := &Store{
		path:    path,
		lock:    flock.New(path + ".lock"),
		modules: make(map[domain.ModuleID]*domain.ModuleBuild),
	}
	if err := s.locked(false, func() error { return nil }); err != nil {
		return nil, err
	}
	return s, nil
}

// locked runs fn against a fresh view of the file while holding the file lock,
// shared for readers and exclusive for writers.
func (s *Store) locked(exclusive bool, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock := s.lock.RLock
	if exclusive {
		lock = s.lock.Lock
	}
	if err := lock(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to lock module store"), "path", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := s.load(); err != nil {
		return err
	}
	return fn()
}

// load replaces the in-memory view with the file contents.
// The caller must hold the lock.
func (s *Store) load() error {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.modules = make(map[domain.ModuleID]*domain.ModuleBuild)
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read module store"), "path", s.path)
	}

	modules := make(map[domain.ModuleID]*domain.ModuleBuild)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &modules); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to unmarshal module store"), "path", s.path)
		}
	}
	s.modules = modules
	return nil
}

// save writes all modules to a temporary file and renames it over the store.
// The caller must hold the exclusive lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.modules, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal module store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for module store")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temporary module store")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write module store")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to sync module store")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to close module store")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace module store"), "path", s.path)
	}
	return nil
}

// Commit persists a snapshot of the module build and all of its components.
// On failure the previously committed snapshot stays in effect.
func (s *Store) Commit(_ context.Context, module *domain.ModuleBuild) error {
	snapshot, err := clone(module)
	if err != nil {
		return zerr.With(err, "module", module.ID.String())
	}

	err = s.locked(true, func() error {
		previous, existed := s.modules[module.ID]
		s.modules[module.ID] = snapshot
		if err := s.save(); err != nil {
			if existed {
				s.modules[module.ID] = previous
			} else {
				delete(s.modules, module.ID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return zerr.With(err, "module", module.ID.String())
	}
	return nil
}

// Get returns a copy of the stored module build.
func (s *Store) Get(_ context.Context, id domain.ModuleID) (*domain.ModuleBuild, error) {
	var out *domain.ModuleBuild
	err := s.locked(false, func() error {
		module, ok := s.modules[id]
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrModuleNotFound, "failed to get module build"), "module", id.String())
		}
		var err error
		out, err = clone(module)
		return err
	})
	return out, err
}

// List returns copies of all stored module builds, oldest first.
func (s *Store) List(_ context.Context) ([]*domain.ModuleBuild, error) {
	var out []*domain.ModuleBuild
	err := s.locked(false, func() error {
		out = make([]*domain.ModuleBuild, 0, len(s.modules))
		for _, module := range s.modules {
			c, err := clone(module)
			if err != nil {
				return err
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b *domain.ModuleBuild) int {
		if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}

// CountBuilding counts building components without a reuse reference in every
// stored module build except exclude.
func (s *Store) CountBuilding(_ context.Context, exclude domain.ModuleID) (int, error) {
	n := 0
	err := s.locked(false, func() error {
		for id, module := range s.modules {
			if id == exclude {
				continue
			}
			n += module.CountBuilding()
		}
		return nil
	})
	return n, err
}

// Component resolves a component build by identifier across all module builds.
func (s *Store) Component(_ context.Context, id domain.ComponentID) (*domain.ComponentBuild, error) {
	var out *domain.ComponentBuild
	err := s.locked(false, func() error {
		for _, module := range s.modules {
			for _, c := range module.Components {
				if c.ID == id {
					copied := *c
					out = &copied
					return nil
				}
			}
		}
		return zerr.With(zerr.Wrap(domain.ErrComponentNotFound, "failed to resolve component"), "component", id.String())
	})
	return out, err
}

func clone(module *domain.ModuleBuild) (*domain.ModuleBuild, error) {
	data, err := json.Marshal(module)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal module build")
	}
	var out domain.ModuleBuild
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal module build")
	}
	return &out, nil
}
