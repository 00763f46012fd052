// Package session tracks the current search and turns catalog pages into
// render-ready results.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/internal/catalog"
	"github.com/mikey-austin/sound_board/pkg/sb"
)

// ErrEmptyQuery is reported for empty or whitespace-only queries before any
// network call.
var ErrEmptyQuery = errors.New("please enter a search term")

// ErrStaleResponse marks a search whose response arrived after a newer search
// had already been submitted. The caller discards the result; session state is
// untouched.
var ErrStaleResponse = errors.New("stale search response discarded")

// Searcher is the catalog surface the session needs.
type Searcher interface {
	Search(ctx context.Context, query string, page int, filters sb.SearchFilters) (catalog.ResultPage, error)
}

// Status is the session lifecycle state.
type Status string

// Session states.
const (
	StatusIdle      Status = "idle"
	StatusSearching Status = "searching"
	StatusRendered  Status = "rendered"
)

// State is the persistable search position.
type State struct {
	Query      string           `json:"query"`
	Filters    sb.SearchFilters `json:"filters"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	TotalCount int              `json:"totalCount"`
}

// RenderedPage is a render-ready result set.
type RenderedPage struct {
	Query      string
	Sounds     []sb.SoundSummary
	Page       int
	TotalPages int
	TotalCount int
	Summary    string
	PageInfo   string
	HasPrev    bool
	HasNext    bool
}

// Session orchestrates catalog searches. On any failure the last rendered
// state survives; only a successful page commits new state.
type Session struct {
	log      *zap.Logger
	searcher Searcher

	mu     sync.Mutex
	state  State
	status Status
	gen    uint64
}

// New creates a session.
func New(log *zap.Logger, searcher Searcher) *Session {
	return &Session{log: log, searcher: searcher, status: StatusIdle}
}

// Restore replaces the session state, e.g. from a persisted snapshot.
func (s *Session) Restore(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if state.Query != "" {
		s.status = StatusRendered
	}
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit runs a fresh search at page 1.
func (s *Session) Submit(ctx context.Context, query string, filters sb.SearchFilters) (RenderedPage, error) {
	return s.search(ctx, query, 1, filters)
}

// GoToPage moves one page forward or back, re-issuing the current query. A
// delta that would land outside [1, totalPages] is a no-op returning the
// current state.
func (s *Session) GoToPage(ctx context.Context, delta int) (RenderedPage, error) {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	if state.Query == "" {
		return RenderedPage{}, ErrEmptyQuery
	}
	target := state.Page + delta
	if target < 1 || target > state.TotalPages {
		return s.renderCurrent(state), nil
	}
	return s.search(ctx, state.Query, target, state.Filters)
}

// ChangeFilters updates the active filters. With a query active it re-runs
// the search from page 1; otherwise it is a pure state update.
func (s *Session) ChangeFilters(ctx context.Context, filters sb.SearchFilters) (RenderedPage, error) {
	s.mu.Lock()
	query := s.state.Query
	if query == "" {
		s.state.Filters = filters
		s.mu.Unlock()
		return RenderedPage{}, nil
	}
	s.mu.Unlock()
	return s.search(ctx, query, 1, filters)
}

func (s *Session) search(ctx context.Context, query string, page int, filters sb.SearchFilters) (RenderedPage, error) {
	if strings.TrimSpace(query) == "" {
		return RenderedPage{}, ErrEmptyQuery
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.status = StatusSearching
	s.mu.Unlock()

	result, err := s.searcher.Search(ctx, query, page, filters)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		// A newer search landed while this one was in flight.
		s.log.Debug("discarding stale search response", zap.String("query", query), zap.Int("page", page))
		return RenderedPage{}, ErrStaleResponse
	}
	if err != nil {
		// Last rendered page stays visible to the caller.
		if s.state.Query != "" {
			s.status = StatusRendered
		} else {
			s.status = StatusIdle
		}
		return RenderedPage{}, err
	}

	s.state = State{
		Query:      query,
		Filters:    filters,
		Page:       page,
		TotalPages: totalPages(result.Count),
		TotalCount: result.Count,
	}
	s.status = StatusRendered

	rendered := s.renderCurrent(s.state)
	rendered.Sounds = result.Results
	if len(result.Results) == 0 {
		rendered.Summary = "No sounds found"
	}
	return rendered, nil
}

func (s *Session) renderCurrent(state State) RenderedPage {
	return RenderedPage{
		Query:      state.Query,
		Page:       state.Page,
		TotalPages: state.TotalPages,
		TotalCount: state.TotalCount,
		Summary:    fmt.Sprintf("Found %s sounds", humanize.Comma(int64(state.TotalCount))),
		PageInfo:   fmt.Sprintf("Page %d of %d", state.Page, state.TotalPages),
		HasPrev:    state.Page > 1,
		HasNext:    state.Page < state.TotalPages,
	}
}

func totalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + catalog.PageSize - 1) / catalog.PageSize
}
