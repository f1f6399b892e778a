// Package state persists application state as a single JSON document with
// optional cross-process advisory locking and dirty-write detection.
//
// Writers acquire a scoped Guard, mutate its Document, and Release it; the
// file is rewritten only when the document actually changed. Readers skip
// the lock entirely — the store's consistency model is last-writer-wins.
package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xoseperez/platformio/internal/fsutil"
	"github.com/xoseperez/platformio/internal/logging"
	"github.com/xoseperez/platformio/internal/version"
)

// StateFileName is the state document's file name inside the home directory.
const StateFileName = "appstate.json"

// Document is the parsed state file: one JSON object with arbitrary nested
// values. Mutate it inside a Guard scope; never retain it past Release.
type Document map[string]any

// Store describes one on-disk state document.
type Store struct {
	path string
	lock bool
}

// Option configures a Store.
type Option func(*Store)

// WithLock makes Acquire take the cross-process advisory lock. Write paths
// must use this; read-only paths deliberately do not.
func WithLock() Option {
	return func(s *Store) { s.lock = true }
}

// New creates a Store backed by the given file path. An empty path resolves
// to <home>/appstate.json.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		home, err := fsutil.HomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, StateFileName)
	}

	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Guard is a held state scope. Doc is the mutable document; Release writes
// it back when it differs from the snapshot taken at acquisition.
type Guard struct {
	store    *Store
	Doc      Document
	snapshot []byte
	lock     *lockFile
	released bool
}

// Acquire opens a scope on the state file. When the store was created with
// WithLock, the advisory lock is taken first; a lock abandoned for more
// than ten seconds is force-broken. A malformed state file is treated as an
// empty document — higher layers depend on the store never failing the
// process over bad persisted data.
func (s *Store) Acquire(ctx context.Context) (*Guard, error) {
	var lock *lockFile
	if s.lock {
		var err error
		lock, err = acquireLock(ctx, s.path+".lock")
		if err != nil {
			return nil, fmt.Errorf("locking state file: %w", err)
		}
	}

	doc := s.load(ctx)

	snapshot, err := json.Marshal(doc)
	if err != nil {
		if lock != nil {
			_ = lock.release()
		}
		return nil, fmt.Errorf("snapshotting state: %w", err)
	}

	return &Guard{store: s, Doc: doc, snapshot: snapshot, lock: lock}, nil
}

// load reads and parses the state file. Missing or malformed files yield an
// empty document; genuine read errors are also absorbed here because the
// write path recreates the file.
func (s *Store) load(ctx context.Context) Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger := logging.FromContext(ctx)
		logger.Debug().
			Str("component", "state").
			Str("path", s.path).
			Err(err).
			Msg("state file unparseable, starting empty")
		return Document{}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc
}

// Release writes the document back when it changed and always drops the
// lock. Safe to call more than once; later calls are no-ops.
func (g *Guard) Release() error {
	if g.released {
		return nil
	}
	g.released = true

	writeErr := g.writeIfDirty()

	if g.lock != nil {
		if err := g.lock.release(); err != nil && writeErr == nil {
			writeErr = err
		}
	}
	return writeErr
}

// writeIfDirty compares the document's canonical encoding against the
// acquisition snapshot and rewrites the file only on change. Dev builds
// pretty-print so the file stays hand-inspectable.
func (g *Guard) writeIfDirty() error {
	current, err := json.Marshal(g.Doc)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if bytes.Equal(current, g.snapshot) {
		return nil
	}

	out := current
	if version.IsDevRelease() {
		out, err = json.MarshalIndent(g.Doc, "", "    ")
		if err != nil {
			return fmt.Errorf("encoding state: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(g.store.path), 0o750); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	// Write atomically via temp file so readers never see a torn document.
	tmpPath := g.store.path + ".tmp"
	if err := os.WriteFile(tmpPath, out, 0o600); err != nil {
		return fmt.Errorf("writing state temp file: %w", err)
	}
	if err := os.Rename(tmpPath, g.store.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming state temp file: %w", err)
	}
	return nil
}

// With runs fn inside a scope and releases on all exit paths. Write-back
// still happens when fn returns an error, matching Release semantics.
func (s *Store) With(ctx context.Context, fn func(Document) error) error {
	guard, err := s.Acquire(ctx)
	if err != nil {
		return err
	}

	fnErr := fn(guard.Doc)
	relErr := guard.Release()
	if fnErr != nil {
		return fnErr
	}
	return relErr
}

// GetItem reads one top-level key from the default state file without
// locking, returning def when absent.
func GetItem(ctx context.Context, name string, def any) (any, error) {
	store, err := New("")
	if err != nil {
		return nil, err
	}

	var value any = def
	err = store.With(ctx, func(doc Document) error {
		if v, ok := doc[name]; ok {
			value = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// SetItem writes one top-level key in the default state file under lock.
func SetItem(ctx context.Context, name string, value any) error {
	store, err := New("", WithLock())
	if err != nil {
		return err
	}
	return store.With(ctx, func(doc Document) error {
		doc[name] = value
		return nil
	})
}

// DeleteItem removes one top-level key from the default state file under
// lock. Removing an absent key is a no-op.
func DeleteItem(ctx context.Context, name string) error {
	store, err := New("", WithLock())
	if err != nil {
		return err
	}
	return store.With(ctx, func(doc Document) error {
		delete(doc, name)
		return nil
	})
}
