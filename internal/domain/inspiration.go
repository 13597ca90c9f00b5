package domain

import "time"

// Known platform names as stored on Inspiration.Platform.
const (
	PlatformDribbble = "Dribbble"
	PlatformBehance  = "Behance"
	PlatformAwwwards = "Awwwards"
	PlatformCore77   = "Core77"
	PlatformMedium   = "Medium"
)

// EngagementMetrics carries the raw counters reported by a platform.
// Unknown counters stay at zero.
type EngagementMetrics struct {
	Likes    int
	Views    int
	Comments int
	Saves    int
}

// Inspiration is a normalized unit of scraped design content. ContentURL is
// the natural key: ingesting the same URL twice stores a single row.
type Inspiration struct {
	ID           string
	Title        string
	Description  string
	ContentURL   string
	ThumbnailURL string
	Platform     string
	AuthorName   string
	AuthorURL    string
	Tags         []string
	Metrics      EngagementMetrics
	Score        float64
	PublishedAt  time.Time
	ScrapedAt    time.Time
	Archived     bool
}

// CandidateSummary is the projection the curation funnel works with.
// AuthorName may be empty, which exempts the item from author caps.
type CandidateSummary struct {
	ID          string
	Score       float64
	Platform    string
	AuthorName  string
	PublishedAt time.Time
}

/// Selection is the outcome of a curation pass: one award pick plus up to
// ten runners-up ordered by final score.
type Selection struct {
	AwardPickID string
	Top10IDs    []string
}

// DailyCuration is the persisted record for a calendar date. Exactly one
// exists per date; re-runs overwrite it.
type DailyCuration struct {
	Date        time.Time
	AwardPickID string
	Top10IDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CorpusStats summarizes the stored corpus for post-run reporting.
type CorpusStats struct {
	TotalInspirations  int
	ActiveInspirations int
	AverageScore       float64
	Platforms          int
	Authors            int
}
