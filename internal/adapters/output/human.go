package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/mikey-austin/sound_board/pkg/sb"
)

// HumanPrinter prints human-readable output.
type HumanPrinter struct{}

// DetailView carries a sound's full attributes for display.
type DetailView struct {
	Sound    sb.SoundDetail `json:"sound"`
	Favorite bool           `json:"favorite"`
	PageURL  string         `json:"page_url,omitempty"`
}

// ConfigView summarizes the effective configuration without leaking the key.
type ConfigView struct {
	KeySource string `json:"key_source"`
	KeyHint   string `json:"key_hint,omitempty"`
	Volume    int    `json:"volume"`
	AutoStop  bool   `json:"auto_stop"`
	Theme     string `json:"theme"`
	Backend   string `json:"backend"`
}

// PlaybackView reports the player state and the active credential source.
type PlaybackView struct {
	Status    string `json:"status"`
	Name      string `json:"name,omitempty"`
	URL       string `json:"url,omitempty"`
	KeySource string `json:"key_source,omitempty"`
}

// Print renders human output.
func (HumanPrinter) Print(v any) error {
	switch data := v.(type) {
	case ResultsView:
		return printResults(data)
	case DetailView:
		return printDetail(data)
	case ConfigView:
		return printConfig(data)
	case PlaybackView:
		return printPlayback(data)
	default:
		_, err := fmt.Fprintln(os.Stdout, "ok")
		return err
	}
}

func printResults(view ResultsView) error {
	if _, err := fmt.Fprintln(os.Stdout, view.Summary); err != nil {
		return err
	}
	if len(view.Sounds) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "#\tID\tNAME\tLEN\tRATING\tDOWNLOADS\tLICENSE"); err != nil {
		return err
	}
	for _, row := range view.Sounds {
		name := row.Name
		if row.Favorite {
			name = "* " + name
		}
		rating := ""
		if row.AvgRating > 0 {
			rating = fmt.Sprintf("%.1f", row.AvgRating)
		}
		downloads := ""
		if row.Downloads > 0 {
			downloads = humanize.Comma(row.Downloads)
		}
		_, err := fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Index, row.ID, name, formatSeconds(row.Duration), rating, downloads, shortLicense(row.License))
		if err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if view.Pagination != nil && view.PageInfo != "" {
		nav := view.PageInfo
		hints := navHints(*view.Pagination)
		if hints != "" {
			nav = nav + "  " + hints
		}
		if _, err := fmt.Fprintln(os.Stdout, nav); err != nil {
			return err
		}
	}
	return nil
}

func printDetail(view DetailView) error {
	sound := view.Sound
	name := sound.Name
	if view.Favorite {
		name = "* " + name
	}
	if _, err := fmt.Fprintf(os.Stdout, "%s (#%d)\n", name, sound.ID); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(tw, "%s\t%s\n", label, value)
		}
	}
	writeField("length", formatSeconds(sound.Duration))
	if sound.AvgRating != nil && *sound.AvgRating > 0 {
		label := fmt.Sprintf("%.1f", *sound.AvgRating)
		if sound.NumRatings > 0 {
			label = fmt.Sprintf("%s (%s ratings)", label, humanize.Comma(sound.NumRatings))
		}
		writeField("rating", label)
	}
	if sound.NumDownloads > 0 {
		writeField("downloads", humanize.Comma(sound.NumDownloads))
	}
	writeField("type", sound.Type)
	if sound.Channels > 0 {
		writeField("channels", fmt.Sprintf("%d", sound.Channels))
	}
	if sound.SampleRate > 0 {
		writeField("sample rate", fmt.Sprintf("%g Hz", sound.SampleRate))
	}
	if sound.BitDepth > 0 {
		writeField("bit depth", fmt.Sprintf("%d", sound.BitDepth))
	}
	if sound.FileSize > 0 {
		writeField("size", humanize.Bytes(uint64(sound.FileSize)))
	}
	writeField("license", sound.License)
	writeField("created", sound.Created)
	if len(sound.Tags) > 0 {
		writeField("tags", strings.Join(sound.Tags, ", "))
	}
	writeField("preview", sound.PreviewURL())
	writeField("waveform", sound.WaveformURL())
	writeField("page", view.PageURL)
	if err := tw.Flush(); err != nil {
		return err
	}

	if sound.Description != "" {
		_, err := fmt.Fprintf(os.Stdout, "\n%s\n", strings.TrimSpace(sound.Description))
		return err
	}
	return nil
}

func printConfig(view ConfigView) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	key := view.KeySource
	if view.KeyHint != "" {
		key = fmt.Sprintf("%s (%s)", view.KeySource, view.KeyHint)
	}
	fmt.Fprintf(tw, "api key\t%s\n", key)
	fmt.Fprintf(tw, "volume\t%d%%\n", view.Volume)
	fmt.Fprintf(tw, "auto stop\t%t\n", view.AutoStop)
	fmt.Fprintf(tw, "theme\t%s\n", view.Theme)
	fmt.Fprintf(tw, "backend\t%s\n", view.Backend)
	return tw.Flush()
}

func printPlayback(view PlaybackView) error {
	line := fmt.Sprintf("[%s]", view.Status)
	if view.Name != "" {
		line = fmt.Sprintf("[%s] %s", view.Status, view.Name)
	}
	if _, err := fmt.Fprintln(os.Stdout, line); err != nil {
		return err
	}
	if view.KeySource != "" {
		_, err := fmt.Fprintf(os.Stdout, "api key: %s\n", view.KeySource)
		return err
	}
	return nil
}

func navHints(p PaginationView) string {
	var hints []string
	if p.HasPrev {
		hints = append(hints, "'sb prev'")
	}
	if p.HasNext {
		hints = append(hints, "'sb next'")
	}
	if len(hints) == 0 {
		return ""
	}
	return strings.Join(hints, " / ")
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "0:00"
	}
	total := int(seconds + 0.5)
	minutes := total / 60
	secs := total % 60
	if minutes >= 60 {
		return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// shortLicense compresses Creative Commons URLs into their familiar names.
func shortLicense(license string) string {
	if !strings.Contains(license, "creativecommons.org") {
		return license
	}
	switch {
	case strings.Contains(license, "/zero/"), strings.Contains(license, "publicdomain"):
		return "CC0"
	case strings.Contains(license, "/by-nc/"):
		return "CC BY-NC"
	case strings.Contains(license, "/by/"):
		return "CC BY"
	case strings.Contains(license, "/sampling+/"):
		return "Sampling+"
	default:
		return "CC"
	}
}
