package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gatherly/event-registration/internal/core/domain"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "db.json"))
}

func TestStore_Init_CreatesDefaultFile(t *testing.T) {
	s := tempStore(t)

	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("backing file not created: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("backing file is not valid json: %v", err)
	}
	if _, ok := doc["users"]; !ok {
		t.Fatalf("expected users collection in default dataset")
	}
	if _, ok := doc["events"]; !ok {
		t.Fatalf("expected events collection in default dataset")
	}
}

func TestStore_MissingFile_ReadsAsEmpty(t *testing.T) {
	s := tempStore(t)

	err := s.View(context.Background(), func(ds *Dataset) error {
		if len(ds.Users) != 0 || len(ds.Events) != 0 {
			t.Fatalf("expected empty dataset, got %d users %d events", len(ds.Users), len(ds.Events))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
}

func TestStore_CorruptFile_ReadsAsEmpty(t *testing.T) {
	s := tempStore(t)
	if err := os.WriteFile(s.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	err := s.View(context.Background(), func(ds *Dataset) error {
		if len(ds.Users) != 0 || len(ds.Events) != 0 {
			t.Fatalf("expected empty dataset from corrupt file")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}

	// Init repairs the file in place.
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init over corrupt file failed: %v", err)
	}
	err = s.View(context.Background(), func(ds *Dataset) error { return nil })
	if err != nil {
		t.Fatalf("view after repair failed: %v", err)
	}
}

func TestStore_Update_PersistsAcrossReopen(t *testing.T) {
	s := tempStore(t)

	err := s.Update(context.Background(), func(ds *Dataset) error {
		ds.Users = append(ds.Users, userRecord{ID: "u1", Username: "alice", Role: "user"})
		return nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// A fresh store against the same file must reproduce the dataset.
	reopened := Open(s.path)
	err = reopened.View(context.Background(), func(ds *Dataset) error {
		if len(ds.Users) != 1 || ds.Users[0].Username != "alice" {
			t.Fatalf("unexpected dataset after reopen: %+v", ds.Users)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
}

func TestStore_Update_FailedFnLeavesStateUntouched(t *testing.T) {
	s := tempStore(t)

	if err := s.Update(context.Background(), func(ds *Dataset) error {
		ds.Users = append(ds.Users, userRecord{ID: "u1", Username: "alice"})
		return nil
	}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	boom := errors.New("boom")
	err := s.Update(context.Background(), func(ds *Dataset) error {
		ds.Users = nil // mutate, then fail
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	err = s.View(context.Background(), func(ds *Dataset) error {
		if len(ds.Users) != 1 {
			t.Fatalf("failed section leaked into persisted state: %+v", ds.Users)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
}

func TestStore_Update_SerializesConcurrentSections(t *testing.T) {
	s := tempStore(t)
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(context.Background(), func(ds *Dataset) error {
				ds.Users = append(ds.Users, userRecord{ID: domain.NewID(), Username: domain.NewID()})
				return nil
			})
			if err != nil {
				t.Errorf("concurrent update failed: %v", err)
			}
		}()
	}
	wg.Wait()

	// Lost updates would leave fewer than n records.
	err := s.View(context.Background(), func(ds *Dataset) error {
		if len(ds.Users) != n {
			t.Fatalf("expected %d users after concurrent updates, got %d", n, len(ds.Users))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
}

func TestStore_Update_CancelledContext(t *testing.T) {
	s := tempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Update(ctx, func(ds *Dataset) error {
		t.Fatalf("fn should not run with cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
