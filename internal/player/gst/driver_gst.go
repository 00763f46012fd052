//go:build gstreamer

// Package gst drives preview playback through GStreamer via Go bindings.
// Build with the gstreamer tag to enable it.
package gst

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-gst/go-gst/gst"
)

// Driver implements player.Driver on a GStreamer pipeline built from a
// template. The template may reference {url} and {volume}.
type Driver struct {
	mu       sync.Mutex
	template string
	volume   float64
	current  *gst.Element
}

var gstInitOnce sync.Once

// NewDriver creates a GStreamer driver from a pipeline template.
func NewDriver(template string) (*Driver, error) {
	if strings.TrimSpace(template) == "" {
		return nil, errors.New("pipeline template required")
	}
	gstInitOnce.Do(func() {
		gst.Init(nil)
	})
	return &Driver{template: template, volume: 1.0}, nil
}

// Play tears down any current pipeline and starts a new one for the URL.
func (d *Driver) Play(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopCurrentLocked()

	pipeline := d.template
	pipeline = strings.ReplaceAll(pipeline, "{url}", url)
	pipeline = strings.ReplaceAll(pipeline, "{volume}", fmt.Sprintf("%0.2f", d.volume))
	el, err := gst.ParseLaunch(pipeline)
	if err != nil {
		return err
	}
	if err := el.SetState(gst.StatePlaying); err != nil {
		return err
	}
	d.current = el
	return nil
}

func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopCurrentLocked()
	return nil
}

func (d *Driver) Seek(positionMS int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return errors.New("not playing")
	}
	positionNS := positionMS * int64(time.Millisecond)
	return d.current.SeekSimple(gst.FormatTime, gst.SeekFlagFlush|gst.SeekFlagKeyUnit, positionNS)
}

func (d *Driver) SetVolume(volume float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.volume = volume
	if d.current != nil {
		_ = d.current.SetProperty("volume", volume)
	}
	return nil
}

func (d *Driver) Position() (int64, int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.current == nil {
		return 0, 0, false
	}
	okPos, posNS := d.current.QueryPosition(gst.FormatTime)
	okDur, durNS := d.current.QueryDuration(gst.FormatTime)
	if !okPos || !okDur {
		return 0, 0, false
	}
	return posNS / int64(time.Millisecond), durNS / int64(time.Millisecond), true
}

func (d *Driver) stopCurrentLocked() {
	if d.current == nil {
		return
	}
	_ = d.current.SetState(gst.StateNull)
	d.current = nil
}
