package favorites

import (
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/pkg/sb"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "favorites.json")
	store, err := NewStore(zap.NewNop(), path)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return store
}

func sound(id int64, name string) sb.SoundSummary {
	return sb.SoundSummary{ID: id, Name: name}
}

func ids(entries []sb.SoundSummary) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestToggleRoundTrip(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(sound(1, "rain")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(sound(2, "wind")); err != nil {
		t.Fatalf("add: %v", err)
	}

	res, err := store.Toggle(sound(3, "thunder"))
	if err != nil || res != Added {
		t.Fatalf("expected added, got %v err=%v", res, err)
	}
	res, err = store.Toggle(sound(3, "thunder"))
	if err != nil || res != Removed {
		t.Fatalf("expected removed, got %v err=%v", res, err)
	}

	got := ids(store.All())
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected collection restored, got %v", got)
	}
}

func TestAddIsIdempotentByID(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(sound(1, "rain")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(sound(1, "rain again")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", store.Len())
	}
	if store.All()[0].Name != "rain" {
		t.Fatalf("expected first-seen entry kept")
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store := newTestStore(t)
	if err := store.Remove(99); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestImportDeduplicates(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(sound(1, "rain")); err != nil {
		t.Fatalf("add: %v", err)
	}

	payload := []byte(`[{"id":1,"name":"dupe"},{"id":2,"name":"wind"},{"id":3,"name":"thunder"}]`)
	added, err := store.Import(payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}

	got := ids(store.All())
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected order %v", got)
	}
	if store.All()[0].Name != "rain" {
		t.Fatalf("expected existing entry kept over duplicate")
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	store := newTestStore(t)
	if err := store.Add(sound(1, "rain")); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := store.Import([]byte(`{"not":"an array"}`))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("store changed on failed import")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	for i := int64(1); i <= 3; i++ {
		if err := store.Add(sound(i, "s")); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	data, err := store.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	fresh := newTestStore(t)
	added, err := fresh.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if added != 3 {
		t.Fatalf("expected 3 added, got %d", added)
	}
	want := ids(store.All())
	got := ids(fresh.All())
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order not preserved: want %v got %v", want, got)
		}
	}
}

func TestExportEmpty(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Export(); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected nothing-to-export, got %v", err)
	}
}

func TestPersistenceAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	store, err := NewStore(zap.NewNop(), path)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.Add(sound(7, "creak")); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened, err := NewStore(zap.NewNop(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Contains(7) {
		t.Fatalf("expected persisted entry")
	}
}
