package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/internal/adapters/state"
	"github.com/mikey-austin/sound_board/internal/catalog"
	"github.com/mikey-austin/sound_board/internal/credential"
	"github.com/mikey-austin/sound_board/internal/favorites"
	"github.com/mikey-austin/sound_board/internal/notify"
	"github.com/mikey-austin/sound_board/internal/player"
	"github.com/mikey-austin/sound_board/internal/session"
	"github.com/mikey-austin/sound_board/internal/settings"
	"github.com/mikey-austin/sound_board/pkg/sb"
)

type idleDriver struct{}

func (idleDriver) Play(url string) error          { return nil }
func (idleDriver) Stop() error                    { return nil }
func (idleDriver) Seek(positionMS int64) error    { return nil }
func (idleDriver) SetVolume(volume float64) error { return nil }
func (idleDriver) Position() (int64, int64, bool) { return 0, 0, false }

func searchHandler(t *testing.T, count int, names ...string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/text/" {
			http.NotFound(w, r)
			return
		}
		results := make([]map[string]any, 0, len(names))
		for i, name := range names {
			results = append(results, map[string]any{
				"id":       100 + i,
				"name":     name,
				"duration": 3.5,
				"previews": map[string]string{
					"preview-hq-mp3": "https://cdn.example/previews/1.mp3",
				},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"count":   count,
			"results": results,
		})
	})
}

func newTestService(t *testing.T, handler http.Handler) Service {
	t.Helper()
	dir := t.TempDir()
	log := zap.NewNop()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	settingsStore, err := settings.NewStore(log, filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("settings store: %v", err)
	}
	if err := settingsStore.SetAPIKey("test-key"); err != nil {
		t.Fatalf("set key: %v", err)
	}
	favoritesStore, err := favorites.NewStore(log, filepath.Join(dir, "favorites.json"))
	if err != nil {
		t.Fatalf("favorites store: %v", err)
	}
	resolver := credential.Resolver{Settings: settingsStore}
	client, err := catalog.NewClient(log, resolver, catalog.Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("catalog client: %v", err)
	}
	controller, err := player.New(log, idleDriver{}, settingsStore, player.Config{TickInterval: time.Millisecond})
	if err != nil {
		t.Fatalf("player: %v", err)
	}

	return Service{
		Log:       log,
		Catalog:   client,
		Session:   session.New(log, client),
		Snapshots: state.NewStore(filepath.Join(dir, "session.json")),
		Favorites: favoritesStore,
		Settings:  settingsStore,
		Resolver:  resolver,
		Player:    controller,
		Notifier:  &notify.Notifier{},
		Backend:   "vlc",
	}
}

func TestSearchPersistsSnapshot(t *testing.T) {
	service := newTestService(t, searchHandler(t, 2, "Thunder Clap", "Rain Loop"))

	view, err := service.Search(context.Background(), "thunder", sb.SearchFilters{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(view.Sounds) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(view.Sounds))
	}
	if view.Sounds[0].Index != 1 || view.Sounds[0].Name != "Thunder Clap" {
		t.Fatalf("unexpected first row: %+v", view.Sounds[0])
	}

	snapshot, ok, err := service.Snapshots.Load()
	if err != nil || !ok {
		t.Fatalf("expected a persisted snapshot, ok=%v err=%v", ok, err)
	}
	if snapshot.State.Query != "thunder" || len(snapshot.Sounds) != 2 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
}

func TestPageWithoutSearch(t *testing.T) {
	service := newTestService(t, searchHandler(t, 0))

	_, err := service.Page(context.Background(), 1)
	if ExitCode(err) != ExitUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestResolveSoundFromSnapshotRow(t *testing.T) {
	service := newTestService(t, searchHandler(t, 2, "Thunder Clap", "Rain Loop"))

	if _, err := service.Search(context.Background(), "thunder", sb.SearchFilters{}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	sound, err := service.resolveSound(context.Background(), "2")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if sound.Name != "Rain Loop" {
		t.Fatalf("unexpected sound: %+v", sound)
	}
	if _, err := service.resolveSound(context.Background(), "9"); ExitCode(err) != ExitNotFound {
		t.Fatalf("expected not found for absent row, got %v", err)
	}
}

func TestToggleFavoriteFromRow(t *testing.T) {
	service := newTestService(t, searchHandler(t, 1, "Thunder Clap"))

	if _, err := service.Search(context.Background(), "thunder", sb.SearchFilters{}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	result, name, err := service.ToggleFavorite(context.Background(), "1")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !result.Added || name != "Thunder Clap" {
		t.Fatalf("expected an add of Thunder Clap, got %+v %q", result, name)
	}
	if service.Favorites.Len() != 1 {
		t.Fatalf("expected one favorite, got %d", service.Favorites.Len())
	}

	result, _, err = service.ToggleFavorite(context.Background(), "1")
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !result.Removed || service.Favorites.Len() != 0 {
		t.Fatalf("expected the favorite to be removed, got %+v", result)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	service := newTestService(t, searchHandler(t, 1, "Thunder Clap"))

	if _, err := service.Search(context.Background(), "thunder", sb.SearchFilters{}); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if _, _, err := service.ToggleFavorite(context.Background(), "1"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.json")
	count, err := service.ExportFavorites(path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 exported sound, got %d", count)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected export file: %v", err)
	}

	if err := service.ClearFavorites(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	added, err := service.ImportFavorites(path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if added != 1 || service.Favorites.Len() != 1 {
		t.Fatalf("expected the favorite back, added=%d len=%d", added, service.Favorites.Len())
	}
}

func TestConfigViewMasksKey(t *testing.T) {
	service := newTestService(t, searchHandler(t, 0))

	view := service.ConfigView()
	if view.KeySource != "user" {
		t.Fatalf("expected a user key, got %q", view.KeySource)
	}
	if view.KeyHint != "…-key" {
		t.Fatalf("expected a masked hint, got %q", view.KeyHint)
	}
	if view.Volume != settings.DefaultVolume || !view.AutoStop {
		t.Fatalf("unexpected defaults: %+v", view)
	}
}

func TestParseSelector(t *testing.T) {
	if _, err := parseSelector("abc"); ExitCode(err) != ExitUsage {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := parseSelector("0"); ExitCode(err) != ExitUsage {
		t.Fatalf("expected usage error for zero, got %v", err)
	}
	n, err := parseSelector("#3")
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d err=%v", n, err)
	}
}
