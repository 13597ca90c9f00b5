package curation

import (
	"errors"
	"sort"
	"time"

	"designdaily/internal/domain"
)

// ErrEmptyPool reports that a selection was attempted over no candidates.
// Callers must treat this as "nothing to curate", not as data corruption.
var ErrEmptyPool = errors.New("curation: empty candidate pool")

const maxPlatformPenalty = 20

// Selector turns a pre-filtered candidate pool into the final ordered
// selection. The pool arrives score-descending from the repository funnel;
// the selector applies its own running platform penalty on top of that
// pre-filtering so clustering is discouraged twice: once cheaply in the
// funnel, once principled here.
type Selector struct {
	topListSize int
	clock       func() time.Time
}

// NewSelector builds a selector producing topListSize runners-up after the
// award pick; non-positive values fall back to 10.
func NewSelector(topListSize int) *Selector {
	if topListSize <= 0 {
		topListSize = 10
	}
	return &Selector{topListSize: topListSize, clock: time.Now}
}

// Select returns the award pick and up to topListSize runners-up. It is
// deterministic: the same pool in the same order always yields the same
// selection, with ties keeping their arrival order.
func (s *Selector) Select(pool []domain.CandidateSummary) (domain.Selection, error) {
	if len(pool) == 0 {
		return domain.Selection{}, ErrEmptyPool
	}

	now := s.clock()

	type ranked struct {
		id    string
		score float64
	}

	platformCounts := make(map[string]int, len(pool))
	order := make([]ranked, 0, len(pool))

	for idx, c := range pool {
		boost := recencyBoost(c.PublishedAt, now)
		platformPenalty := float64(min(platformCounts[c.Platform]*5, maxPlatformPenalty))
		positionPenalty := float64(idx) * 0.5

		order = append(order, ranked{
			id:    c.ID,
			score: c.Score + boost - platformPenalty - positionPenalty,
		})
		platformCounts[c.Platform]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].score > order[j].score
	})

	sel := domain.Selection{AwardPickID: order[0].id}
	for _, r := range order[1:] {
		if len(sel.Top10IDs) == s.topListSize {
			break
		}
		sel.Top10IDs = append(sel.Top10IDs, r.id)
	}

	return sel, nil
}

// recencyBoost rewards fresh candidates; an unknown publish time gets no
// boost.
func recencyBoost(publishedAt, now time.Time) float64 {
	if publishedAt.IsZero() {
		return 0
	}

	days := int(now.Sub(publishedAt).Hours() / 24)
	switch {
	case days <= 1:
		return 5.0
	case days <= 7:
		return 3.0
	case days <= 30:
		return 1.0
	default:
		return 0
	}
}
