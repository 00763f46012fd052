// Package vlc drives preview playback through a VLC instance's HTTP RC
// interface. It is the default backend because it needs no cgo.
package vlc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Driver implements player.Driver against VLC's status.json endpoint.
type Driver struct {
	baseURL  string
	http     *http.Client
	username string
	password string
}

// NewDriver creates a VLC HTTP RC driver.
func NewDriver(baseURL string, username string, password string, timeout time.Duration) (*Driver, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("base_url required")
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Driver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		username: username,
		password: password,
	}, nil
}

// Play clears the VLC playlist and starts the given stream.
func (d *Driver) Play(streamURL string) error {
	if streamURL == "" {
		return errors.New("url required")
	}
	_, _ = d.request(url.Values{"command": []string{"pl_stop"}})
	_, _ = d.request(url.Values{"command": []string{"pl_empty"}})
	if _, err := d.request(url.Values{
		"command": []string{"in_play"},
		"input":   []string{streamURL},
	}); err != nil {
		return err
	}
	_, _ = d.request(url.Values{"command": []string{"pl_play"}})
	return nil
}

func (d *Driver) Stop() error {
	_, err := d.request(url.Values{"command": []string{"pl_stop"}})
	return err
}

func (d *Driver) Seek(positionMS int64) error {
	seconds := int64(0)
	if positionMS > 0 {
		seconds = positionMS / 1000
	}
	_, err := d.request(url.Values{
		"command": []string{"seek"},
		"val":     []string{strconv.FormatInt(seconds, 10)},
	})
	return err
}

func (d *Driver) SetVolume(volume float64) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	// VLC's RC scale treats 256 as 100%.
	level := int(volume*256 + 0.5)
	_, err := d.request(url.Values{
		"command": []string{"volume"},
		"val":     []string{strconv.Itoa(level)},
	})
	return err
}

// Position reports the current playback offset. A stopped transport reads as
// no active stream.
func (d *Driver) Position() (int64, int64, bool) {
	payload, err := d.request(nil)
	if err != nil {
		return 0, 0, false
	}
	var status vlcStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return 0, 0, false
	}
	if status.State == "stopped" {
		return 0, 0, false
	}
	pos := int64(status.Time) * 1000
	dur := int64(status.Length) * 1000
	return pos, dur, true
}

type vlcStatus struct {
	State  string `json:"state"`
	Time   int64  `json:"time"`
	Length int64  `json:"length"`
}

func (d *Driver) request(values url.Values) ([]byte, error) {
	endpoint := d.baseURL + "/requests/status.json"
	if len(values) > 0 {
		endpoint = endpoint + "?" + values.Encode()
	}
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if d.username != "" || d.password != "" {
		req.SetBasicAuth(d.username, d.password)
	}
	resp, err := d.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("vlc error: %s", msg)
	}
	return body, nil
}
