// Package player owns preview playback: one active stream, progress events,
// and the auto-stop policy.
package player

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoPreview is reported when a sound has no preview stream to play.
var ErrNoPreview = errors.New("no preview available for this sound")

// Driver executes playback actions against a media backend.
type Driver interface {
	Play(url string) error
	Stop() error
	Seek(positionMS int64) error
	SetVolume(volume float64) error
	Position() (positionMS int64, durationMS int64, ok bool)
}

// Settings supplies the persisted playback preferences.
type Settings interface {
	Volume() int
	SetVolume(percent int) error
	AutoStop() bool
}

// Status is the playback lifecycle state.
type Status string

// Playback states.
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
	StatusErrored Status = "errored"
)

// EventKind tags a playback event.
type EventKind string

// Playback event kinds.
const (
	EventLoaded   EventKind = "loaded"
	EventProgress EventKind = "progress"
	EventEnded    EventKind = "ended"
	EventErrored  EventKind = "errored"
)

// Event is an asynchronous playback notification.
type Event struct {
	Kind       EventKind
	Name       string
	PositionMS int64
	DurationMS int64
	Ratio      float64
	Err        error
}

// Config tunes the controller.
type Config struct {
	// TickInterval is the progress sampling period. Defaults to 500ms.
	TickInterval time.Duration
}

// Controller models at most one active stream. When the auto-stop policy is
// enabled, starting a new stream terminates the prior one first; when
// disabled, prior streams are abandoned to the driver and only the most
// recently started stream drives progress events.
type Controller struct {
	log      *zap.Logger
	driver   Driver
	settings Settings
	interval time.Duration

	mu         sync.Mutex
	status     Status
	name       string
	sourceURL  string
	durationMS int64
	gen        uint64
	subs       []chan Event
}

// New creates a playback controller.
func New(log *zap.Logger, driver Driver, settings Settings, cfg Config) (*Controller, error) {
	if driver == nil {
		return nil, errors.New("driver required")
	}
	if settings == nil {
		return nil, errors.New("settings required")
	}
	interval := cfg.TickInterval
	if interval == 0 {
		interval = 500 * time.Millisecond
	}
	return &Controller{
		log:      log,
		driver:   driver,
		settings: settings,
		interval: interval,
		status:   StatusIdle,
	}, nil
}

// Subscribe returns a channel of future playback events. Delivery is
// best-effort; a subscriber that stops draining loses events.
func (c *Controller) Subscribe() <-chan Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Event, 32)
	c.subs = append(c.subs, ch)
	return ch
}

// Status returns the playback lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Current returns the active stream's display name and source URL.
func (c *Controller) Current() (name string, sourceURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name, c.sourceURL
}

// Play starts a new stream. Under the auto-stop policy any active stream is
// terminated first.
func (c *Controller) Play(sourceURL string, name string) error {
	if strings.TrimSpace(sourceURL) == "" {
		return ErrNoPreview
	}

	c.mu.Lock()
	if c.settings.AutoStop() && (c.status == StatusPlaying || c.status == StatusLoading) {
		_ = c.driver.Stop()
	}
	c.gen++
	gen := c.gen
	volume := clampVolume(c.settings.Volume())
	_ = c.driver.SetVolume(float64(volume) / 100)

	if err := c.driver.Play(sourceURL); err != nil {
		c.status = StatusErrored
		c.name = ""
		c.sourceURL = ""
		c.mu.Unlock()
		c.emit(Event{Kind: EventErrored, Name: name, Err: err})
		return fmt.Errorf("failed to play this sound: %w", err)
	}
	c.status = StatusLoading
	c.name = name
	c.sourceURL = sourceURL
	c.durationMS = 0
	c.mu.Unlock()

	go c.watch(gen, name)
	return nil
}

// Stop halts and rewinds the active stream. No-op when idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.status != StatusPlaying && c.status != StatusLoading {
		c.mu.Unlock()
		return
	}
	c.gen++
	_ = c.driver.Stop()
	_ = c.driver.Seek(0)
	c.status = StatusIdle
	c.name = ""
	c.sourceURL = ""
	c.durationMS = 0
	c.mu.Unlock()
}

// SetVolume clamps to 0-100, applies immediately, and persists for future
// sessions.
func (c *Controller) SetVolume(percent int) error {
	clamped := clampVolume(percent)
	c.mu.Lock()
	_ = c.driver.SetVolume(float64(clamped) / 100)
	c.mu.Unlock()
	return c.settings.SetVolume(clamped)
}

// Seek maps a 0..1 ratio onto the active stream's duration. No-op without an
// active stream or before its duration is known.
func (c *Controller) Seek(ratio float64) error {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status != StatusPlaying && c.status != StatusLoading {
		return nil
	}
	if c.durationMS <= 0 {
		return nil
	}
	return c.driver.Seek(int64(ratio * float64(c.durationMS)))
}

func (c *Controller) watch(gen uint64, name string) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	sawPlayback := false
	for range ticker.C {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		posMS, durMS, ok := c.driver.Position()
		if !ok {
			if !sawPlayback {
				// Still buffering; keep waiting.
				c.mu.Unlock()
				continue
			}
			c.finishLocked()
			c.mu.Unlock()
			c.emit(Event{Kind: EventEnded, Name: name})
			return
		}

		if c.status == StatusLoading && durMS > 0 {
			c.status = StatusPlaying
			c.durationMS = durMS
			c.mu.Unlock()
			c.emit(Event{Kind: EventLoaded, Name: name, DurationMS: durMS})
			sawPlayback = true
			continue
		}
		if durMS > 0 {
			c.durationMS = durMS
		}
		if durMS > 0 && posMS >= durMS {
			c.finishLocked()
			c.mu.Unlock()
			c.emit(Event{Kind: EventEnded, Name: name})
			return
		}
		ratio := 0.0
		if durMS > 0 {
			ratio = float64(posMS) / float64(durMS)
			sawPlayback = true
		}
		c.mu.Unlock()
		c.emit(Event{Kind: EventProgress, Name: name, PositionMS: posMS, DurationMS: durMS, Ratio: ratio})
	}
}

func (c *Controller) finishLocked() {
	c.gen++
	c.status = StatusEnded
	c.name = ""
	c.sourceURL = ""
	c.durationMS = 0
}

func (c *Controller) emit(event Event) {
	c.mu.Lock()
	subs := c.subs
	c.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func clampVolume(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
