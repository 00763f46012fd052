package output

// Printer renders command results to stdout.
type Printer interface {
	Print(v any) error
}

// ResultsView is a rendered search page ready for display.
type ResultsView struct {
	Summary    string          `json:"summary"`
	PageInfo   string          `json:"page_info,omitempty"`
	Sounds     []SoundRow      `json:"sounds"`
	Pagination *PaginationView `json:"pagination,omitempty"`
}

// SoundRow is one search result line.
type SoundRow struct {
	Index     int     `json:"index"`
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Duration  float64 `json:"duration"`
	AvgRating float64 `json:"avg_rating,omitempty"`
	Downloads int64   `json:"downloads,omitempty"`
	License   string  `json:"license,omitempty"`
	Favorite  bool    `json:"favorite,omitempty"`
}

// PaginationView reports cursor position within the result set.
type PaginationView struct {
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}
