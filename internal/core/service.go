package core

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/internal/adapters/output"
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

// Service orchestrates sb CLI use cases.
type Service struct {
	Log       *zap.Logger
	Catalog   *catalog.Client
	Session   *session.Session
	Snapshots *state.Store
	Favorites *favorites.Store
	Settings  *settings.Store
	Resolver  credential.Resolver
	Player    *player.Controller
	Notifier  *notify.Notifier
	Backend   string
}

// Search runs a fresh query and persists the resulting page.
func (s Service) Search(ctx context.Context, query string, filters sb.SearchFilters) (output.ResultsView, error) {
	page, err := s.Session.Submit(ctx, query, filters)
	if err != nil {
		return output.ResultsView{}, err
	}
	if err := s.Snapshots.Save(s.Session.State(), page.Sounds); err != nil {
		s.Log.Warn("failed to persist search state", zap.Error(err))
	}
	return s.resultsView(page), nil
}

// Page moves forward or back through the last search.
func (s Service) Page(ctx context.Context, delta int) (output.ResultsView, error) {
	snapshot, ok, err := s.Snapshots.Load()
	if err != nil {
		return output.ResultsView{}, err
	}
	if !ok {
		return output.ResultsView{}, Usage("no search to page through, run 'sb search' first")
	}
	s.Session.Restore(snapshot.State)

	page, err := s.Session.GoToPage(ctx, delta)
	if err != nil {
		return output.ResultsView{}, err
	}
	// A boundary no-op renders the current page without refetching; keep the
	// stored rows instead of overwriting them with nothing.
	if len(page.Sounds) == 0 && page.Page == snapshot.State.Page {
		page.Sounds = snapshot.Sounds
	}
	if err := s.Snapshots.Save(s.Session.State(), page.Sounds); err != nil {
		s.Log.Warn("failed to persist search state", zap.Error(err))
	}
	return s.resultsView(page), nil
}

// Show fetches a sound's full attributes.
func (s Service) Show(ctx context.Context, selector string) (output.DetailView, error) {
	id, err := s.resolveID(selector)
	if err != nil {
		return output.DetailView{}, err
	}
	detail, err := s.Catalog.FetchDetail(ctx, id)
	if err != nil {
		return output.DetailView{}, err
	}
	return output.DetailView{
		Sound:    detail,
		Favorite: s.Favorites.Contains(detail.ID),
		PageURL:  detail.PageURL(),
	}, nil
}

// Play starts the selected sound's preview.
func (s Service) Play(ctx context.Context, selector string) (string, error) {
	sound, err := s.resolveSound(ctx, selector)
	if err != nil {
		return "", err
	}
	if err := s.Player.Play(sound.PreviewURL(), sound.Name); err != nil {
		s.Notifier.Error("Playback Error", fmt.Sprintf("could not play %q", sound.Name))
		return "", err
	}
	return sound.Name, nil
}

// Stop halts playback.
func (s Service) Stop() {
	s.Player.Stop()
}

// PlaybackStatus reports the player state and the credential source.
func (s Service) PlaybackStatus() output.PlaybackView {
	name, url := s.Player.Current()
	keySource := "none"
	if _, ok := s.Resolver.Resolve(); ok {
		keySource = "user"
		if s.Resolver.IsBuiltIn() {
			keySource = "built-in"
		}
	}
	return output.PlaybackView{
		Status:    string(s.Player.Status()),
		Name:      name,
		URL:       url,
		KeySource: keySource,
	}
}

// SetVolume applies and persists a volume percentage.
func (s Service) SetVolume(percent int) error {
	return s.Player.SetVolume(percent)
}

// ToggleFavorite flips a sound's favorite membership.
func (s Service) ToggleFavorite(ctx context.Context, selector string) (favorites.ToggleResult, string, error) {
	sound, err := s.resolveSound(ctx, selector)
	if err != nil {
		return favorites.ToggleResult{}, "", err
	}
	result, err := s.Favorites.Toggle(sound)
	if err != nil {
		return favorites.ToggleResult{}, "", err
	}
	if result.Added {
		s.Notifier.Success("Added to Favorites", sound.Name)
	} else {
		s.Notifier.Info("Removed from Favorites", sound.Name)
	}
	return result, sound.Name, nil
}

// ListFavorites renders the saved sounds.
func (s Service) ListFavorites() output.ResultsView {
	saved := s.Favorites.All()
	summary := fmt.Sprintf("%d favorites", len(saved))
	if len(saved) == 1 {
		summary = "1 favorite"
	}
	view := output.ResultsView{Summary: summary}
	for i, sound := range saved {
		view.Sounds = append(view.Sounds, soundRow(i+1, sound, true))
	}
	return view
}

// RemoveFavorite drops a sound by catalog ID.
func (s Service) RemoveFavorite(selector string) error {
	id, err := s.resolveID(selector)
	if err != nil {
		return err
	}
	if !s.Favorites.Contains(id) {
		return &CLIError{Code: ExitNotFound, Msg: fmt.Sprintf("sound %d is not a favorite", id)}
	}
	return s.Favorites.Remove(id)
}

// ClearFavorites removes every favorite.
func (s Service) ClearFavorites() error {
	count := s.Favorites.Len()
	if err := s.Favorites.Clear(); err != nil {
		return err
	}
	s.Notifier.Info("Favorites Cleared", fmt.Sprintf("removed %d sounds", count))
	return nil
}

// ExportFavorites writes the favorites to a JSON file.
func (s Service) ExportFavorites(path string) (int, error) {
	payload, err := s.Favorites.Export()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return 0, WrapError(ExitRuntime, "could not write export file", err)
	}
	count := s.Favorites.Len()
	s.Notifier.Success("Favorites Exported", fmt.Sprintf("%d sounds saved to %s", count, path))
	return count, nil
}

// ImportFavorites merges a previously exported file, returning how many
// sounds were new.
func (s Service) ImportFavorites(path string) (int, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return 0, WrapError(ExitUsage, "could not read import file", err)
	}
	added, err := s.Favorites.Import(payload)
	if err != nil {
		return 0, err
	}
	s.Notifier.Success("Favorites Imported", fmt.Sprintf("added %d new sounds", added))
	return added, nil
}

// ConfigView summarizes the effective configuration.
func (s Service) ConfigView() output.ConfigView {
	view := output.ConfigView{
		KeySource: "none",
		Volume:    s.Settings.Volume(),
		AutoStop:  s.Settings.AutoStop(),
		Theme:     s.Settings.Theme(),
		Backend:   s.Backend,
	}
	key, ok := s.Resolver.Resolve()
	if !ok {
		return view
	}
	if s.Resolver.IsBuiltIn() {
		view.KeySource = "built-in"
	} else {
		view.KeySource = "user"
	}
	view.KeyHint = keyHint(key)
	return view
}

// SetAPIKey stores a user-supplied key.
func (s Service) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return Usage("API key must not be empty")
	}
	if err := s.Settings.SetAPIKey(key); err != nil {
		return err
	}
	s.Notifier.Success("API Key Saved", "you can now search the catalog")
	return nil
}

func (s Service) resultsView(page session.RenderedPage) output.ResultsView {
	view := output.ResultsView{
		Summary:  page.Summary,
		PageInfo: page.PageInfo,
	}
	for i, sound := range page.Sounds {
		view.Sounds = append(view.Sounds, soundRow(i+1, sound, s.Favorites.Contains(sound.ID)))
	}
	if page.TotalPages > 0 {
		view.Pagination = &output.PaginationView{
			Page:       page.Page,
			TotalPages: page.TotalPages,
			HasPrev:    page.HasPrev,
			HasNext:    page.HasNext,
		}
	}
	return view
}

// resolveSound turns a selector into a sound. Row numbers resolve against the
// last rendered page, then favorites; larger numbers are catalog IDs.
func (s Service) resolveSound(ctx context.Context, selector string) (sb.SoundSummary, error) {
	n, err := parseSelector(selector)
	if err != nil {
		return sb.SoundSummary{}, err
	}

	if n <= int64(catalog.PageSize) {
		snapshot, ok, err := s.Snapshots.Load()
		if err != nil {
			return sb.SoundSummary{}, err
		}
		if ok && n >= 1 && int(n) <= len(snapshot.Sounds) {
			return snapshot.Sounds[n-1], nil
		}
		saved := s.Favorites.All()
		if n >= 1 && int(n) <= len(saved) {
			return saved[n-1], nil
		}
		return sb.SoundSummary{}, &CLIError{
			Code: ExitNotFound,
			Msg:  fmt.Sprintf("no row %d on the current page", n),
		}
	}

	detail, err := s.Catalog.FetchDetail(ctx, n)
	if err != nil {
		return sb.SoundSummary{}, err
	}
	return detail.SoundSummary, nil
}

func (s Service) resolveID(selector string) (int64, error) {
	n, err := parseSelector(selector)
	if err != nil {
		return 0, err
	}
	if n > int64(catalog.PageSize) {
		return n, nil
	}
	snapshot, ok, loadErr := s.Snapshots.Load()
	if loadErr != nil {
		return 0, loadErr
	}
	if ok && n >= 1 && int(n) <= len(snapshot.Sounds) {
		return snapshot.Sounds[n-1].ID, nil
	}
	saved := s.Favorites.All()
	if n >= 1 && int(n) <= len(saved) {
		return saved[n-1].ID, nil
	}
	return 0, &CLIError{Code: ExitNotFound, Msg: fmt.Sprintf("no row %d on the current page", n)}
}

func parseSelector(selector string) (int64, error) {
	selector = strings.TrimSpace(strings.TrimPrefix(selector, "#"))
	n, err := strconv.ParseInt(selector, 10, 64)
	if err != nil || n < 1 {
		return 0, Usage(fmt.Sprintf("expected a row number or sound id, got %q", selector))
	}
	return n, nil
}

func soundRow(index int, sound sb.SoundSummary, favorite bool) output.SoundRow {
	row := output.SoundRow{
		Index:     index,
		ID:        sound.ID,
		Name:      sound.Name,
		Duration:  sound.Duration,
		Downloads: sound.NumDownloads,
		License:   sound.License,
		Favorite:  favorite,
	}
	if sound.AvgRating != nil {
		row.AvgRating = *sound.AvgRating
	}
	return row
}

func keyHint(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "…" + key[len(key)-4:]
}
