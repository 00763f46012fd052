//go:build !gstreamer

package gst

import "errors"

// Driver is a stub when the gstreamer tag is not enabled.
type Driver struct{}

// NewDriver returns an error when the gstreamer build tag is missing.
func NewDriver(template string) (*Driver, error) {
	return nil, errors.New("gstreamer build tag not enabled")
}

func (d *Driver) Play(url string) error          { return errors.New("gstreamer build tag not enabled") }
func (d *Driver) Stop() error                    { return errors.New("gstreamer build tag not enabled") }
func (d *Driver) Seek(positionMS int64) error    { return errors.New("gstreamer build tag not enabled") }
func (d *Driver) SetVolume(volume float64) error { return errors.New("gstreamer build tag not enabled") }
func (d *Driver) Position() (int64, int64, bool) { return 0, 0, false }
