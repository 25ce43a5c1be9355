// Package jsonfile implements the document store: the single on-disk JSON
// dataset holding all users and events, exposed to the repositories through
// a serialized read-modify-write primitive.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/gatherly/event-registration/internal/core/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Dataset is the entire persisted document. Repositories receive a mutable
// view of it inside Update/View sections and must not retain references
// past the callback.
type Dataset struct {
	Users  []userRecord  `json:"users"`
	Events []eventRecord `json:"events"`
}

// Store owns the backing file. All access goes through Update and View,
// which hold one mutex: at most one section executes at a time, and each
// section observes the result of all previously completed ones. Two
// concurrent read-modify-write calls can therefore never overwrite each
// other's writes.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open returns a Store for the given backing file path. The file is not
// touched until Init or the first section runs.
func Open(path string) *Store {
	return &Store{path: path}
}

// Init makes sure the backing file exists and holds a valid dataset,
// rewriting the empty default when it is missing or corrupt. A write
// failure here wraps domain.ErrStorage and must abort bootstrap.
func (s *Store) Init(ctx context.Context) error {
	return s.Update(ctx, func(*Dataset) error { return nil })
}

// Update acquires exclusive access, loads the persisted dataset, invokes fn
// with a mutable view, and persists the result if fn returns nil. When fn
// returns an error the persisted state is left untouched and the error is
// propagated. This is the sole write path for the dataset.
func (s *Store) Update(ctx context.Context, fn func(*Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	ds := s.load()
	if err := fn(ds); err != nil {
		return err
	}
	return s.persist(ds)
}

// View is Update without the write-back. Reads go through the same mutex
// and reload the file, so they always observe the last completed write.
func (s *Store) View(ctx context.Context, fn func(*Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	return fn(s.load())
}

// load reads the persisted dataset. A missing or unreadable file, malformed
// JSON, or absent collections all degrade to the empty default rather than
// failing the caller; the next write-back repairs the file.
func (s *Store) load() *Dataset {
	ds := &Dataset{Users: []userRecord{}, Events: []eventRecord{}}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return ds
	}
	if err := json.Unmarshal(raw, ds); err != nil {
		return &Dataset{Users: []userRecord{}, Events: []eventRecord{}}
	}
	if ds.Users == nil {
		ds.Users = []userRecord{}
	}
	if ds.Events == nil {
		ds.Events = []eventRecord{}
	}
	return ds
}

// persist writes the dataset atomically: encode, write to a sibling temp
// file, then rename over the target so readers never see a torn file.
func (s *Store) persist(ds *Dataset) error {
	raw, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode dataset: %v", domain.ErrStorage, err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create data dir: %v", domain.ErrStorage, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write dataset: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: replace dataset: %v", domain.ErrStorage, err)
	}
	return nil
}
