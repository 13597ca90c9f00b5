package scoring

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"designdaily/internal/domain"
)

// NeutralScore is returned whenever scoring cannot complete; a missing
// score must never block ingestion.
const NeutralScore = 50.0

// Composite weights, summing to 1.0.
const (
	engagementWeight  = 0.45
	imageWeight       = 0.15
	recencyWeight     = 0.10
	tagWeight         = 0.10
	credibilityWeight = 0.20
)

// Per-metric log-normalization multipliers and combination weights.
const (
	likesFactor    = 20
	viewsFactor    = 15
	commentsFactor = 25
	savesFactor    = 30

	likesShare    = 0.3
	viewsShare    = 0.2
	commentsShare = 0.3
	savesShare    = 0.2
)

var hiResTokens = []string{"1200", "hd", "high", "2x"}

var qualityTags = []string{"high-quality", "premium", "professional", "4k", "retina"}

var highQualityPlatforms = map[string]struct{}{
	"behance":  {},
	"dribbble": {},
	"awwwards": {},
}

var platformCredibility = map[string]float64{
	domain.PlatformAwwwards: 95,
	domain.PlatformBehance:  85,
	domain.PlatformDribbble: 80,
	domain.PlatformCore77:   75,
	domain.PlatformMedium:   65,
	"DeviantArt":            60,
	"Pinterest":             45,
}

var tier1Tags = map[string]float64{
	"ui design":      20,
	"ux design":      20,
	"web design":     18,
	"mobile design":  18,
	"product design": 18,
	"branding":       16,
	"typography":     16,
}

var tier2Tags = map[string]float64{
	"interface design":   14,
	"interaction design": 14,
	"graphic design":     12,
	"logo design":        12,
	"illustration":       12,
	"visual design":      12,
}

var tier3Tags = map[string]float64{
	"design":    8,
	"digital":   8,
	"creative":  6,
	"art":       6,
	"concept":   6,
	"portfolio": 4,
	"modern":    4,
}

// Engine computes heuristic quality scores for scraped inspirations.
// It is pure: no I/O, deterministic for a fixed clock.
type Engine struct {
	logger *slog.Logger
	clock  func() time.Time
}

// NewEngine builds an engine using the wall clock as "now" reference.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger, clock: time.Now}
}

// Score returns a value in [0,100]. Malformed inputs never propagate: the
// engine falls back to NeutralScore and logs a warning.
func (e *Engine) Score(item domain.Inspiration) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Warn("scoring failed, using neutral score",
					"content_url", item.ContentURL, "cause", r)
			}
			score = NeutralScore
		}
	}()

	now := e.clock()

	score = engagementScore(item.Metrics)*engagementWeight +
		imageQualityScore(item)*imageWeight +
		recencyScore(item.PublishedAt, now)*recencyWeight +
		tagRelevanceScore(item.Tags)*tagWeight +
		credibilityScore(item.Platform)*credibilityWeight

	return clamp(score)
}

func engagementScore(m domain.EngagementMetrics) float64 {
	total := metricScore(m.Likes, likesFactor)*likesShare +
		metricScore(m.Views, viewsFactor)*viewsShare +
		metricScore(m.Comments, commentsFactor)*commentsShare +
		metricScore(m.Saves, savesFactor)*savesShare
	return math.Min(total, 100)
}

// metricScore log-normalizes a counter; zero or negative counts contribute
// nothing.
func metricScore(count int, factor float64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(math.Log10(float64(count)+1)*factor, 100)
}

func imageQualityScore(item domain.Inspiration) float64 {
	score := 30.0

	if item.ThumbnailURL != "" {
		score += 25
	}

	thumb := strings.ToLower(item.ThumbnailURL)
	for _, token := range hiResTokens {
		if strings.Contains(thumb, token) {
			score += 15
			break
		}
	}

	if _, ok := highQualityPlatforms[strings.ToLower(item.Platform)]; ok {
		score += 10
	}

	joined := strings.ToLower(strings.Join(item.Tags, " "))
	for _, tag := range qualityTags {
		if strings.Contains(joined, tag) {
			score += 10
			break
		}
	}

	return math.Min(score, 100)
}

func recencyScore(publishedAt, now time.Time) float64 {
	if publishedAt.IsZero() {
		return 30
	}

	hours := now.Sub(publishedAt).Hours()
	switch {
	case hours <= 24:
		return 100
	case hours <= 48:
		return 90
	case hours <= 168:
		return 80
	case hours <= 720:
		return 60
	case hours <= 2160:
		return 40
	default:
		return 20
	}
}

// tagRelevanceScore does lexical substring matching against three fixed
// tiers of design phrases. Matches accumulate without de-duplication.
func tagRelevanceScore(tags []string) float64 {
	if len(tags) == 0 {
		return 30
	}

	score := 30.0
	joined := strings.ToLower(strings.Join(tags, " "))

	for _, tier := range []map[string]float64{tier1Tags, tier2Tags, tier3Tags} {
		for phrase, points := range tier {
			if strings.Contains(joined, phrase) {
				score += points
			}
		}
	}

	return math.Min(score, 100)
}

func credibilityScore(platform string) float64 {
	if v, ok := platformCredibility[platform]; ok {
		return v
	}
	return 50
}

func clamp(v float64) float64 {
	return math.Min(math.Max(v, 0), 100)
}
