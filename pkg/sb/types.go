// Package sb defines the shared catalog data model for sound_board.
package sb

import "fmt"

// FreesoundBase is the canonical public site URL for catalog items.
const FreesoundBase = "https://freesound.org"

// SoundSummary is a catalog entry as returned by text search. It is never
// mutated after it is fetched; favorites persist it verbatim.
type SoundSummary struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Duration     float64           `json:"duration"`
	AvgRating    *float64          `json:"avg_rating,omitempty"`
	NumDownloads int64             `json:"num_downloads,omitempty"`
	Created      string            `json:"created,omitempty"`
	License      string            `json:"license,omitempty"`
	Previews     map[string]string `json:"previews,omitempty"`
	Images       map[string]string `json:"images,omitempty"`
}

// SoundDetail extends SoundSummary with the technical attributes the detail
// endpoint adds. Fetched lazily per item.
type SoundDetail struct {
	SoundSummary
	NumRatings int64   `json:"num_ratings,omitempty"`
	Type       string  `json:"type,omitempty"`
	Channels   int     `json:"channels,omitempty"`
	SampleRate float64 `json:"samplerate,omitempty"`
	BitDepth   int     `json:"bitdepth,omitempty"`
	FileSize   int64   `json:"filesize,omitempty"`
}

// Preview quality variants, best first.
var previewOrder = []string{
	"preview-hq-mp3",
	"preview-lq-mp3",
	"preview-hq-ogg",
	"preview-lq-ogg",
}

// PreviewURL returns the best available preview stream URL, or "" when the
// sound has no previews.
func (s SoundSummary) PreviewURL() string {
	if s.Previews == nil {
		return ""
	}
	for _, key := range previewOrder {
		if url := s.Previews[key]; url != "" {
			return url
		}
	}
	return ""
}

// WaveformURL returns the medium waveform image URL, or "" when absent.
func (s SoundSummary) WaveformURL() string {
	if s.Images == nil {
		return ""
	}
	return s.Images["waveform_m"]
}

// PageURL returns the canonical catalog page for the sound.
func (s SoundSummary) PageURL() string {
	return fmt.Sprintf("%s/sounds/%d/", FreesoundBase, s.ID)
}

// SortKey is a catalog sort parameter, passed through to the remote API
// verbatim.
type SortKey string

// Sort keys understood by the remote API.
const (
	SortScore         SortKey = "score"
	SortRatingDesc    SortKey = "rating_desc"
	SortDownloadsDesc SortKey = "downloads_desc"
	SortDurationDesc  SortKey = "duration_desc"
	SortCreatedDesc   SortKey = "created_desc"
)

// DurationRange bounds the duration filter in seconds, inclusive on both ends.
type DurationRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchFilters carries the optional search refinements. A nil Duration means
// no duration filter. Malformed ranges (min > max) are passed through; the
// remote API governs the result.
type SearchFilters struct {
	Duration *DurationRange `json:"duration,omitempty"`
	Sort     SortKey        `json:"sort,omitempty"`
}

// FilterExpr renders the duration filter in the remote API's range syntax.
// Empty when either bound is absent.
func (f SearchFilters) FilterExpr() string {
	if f.Duration == nil {
		return ""
	}
	return fmt.Sprintf("duration:[%g TO %g]", f.Duration.Min, f.Duration.Max)
}

// SortValue returns the sort parameter, defaulting to relevance.
func (f SearchFilters) SortValue() string {
	if f.Sort == "" {
		return string(SortScore)
	}
	return string(f.Sort)
}
