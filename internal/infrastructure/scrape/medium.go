package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"designdaily/internal/config"
	"designdaily/internal/domain"
	"designdaily/internal/scraper"
)

const mediumMaxItems = 20

var mediumFallbackTags = []string{"Design", "Article"}

// Medium reads design articles from Medium's design-tag RSS feed.
type Medium struct {
	feedURL string
	client  *http.Client
	parser  *gofeed.Parser
}

var _ scraper.Scraper = (*Medium)(nil)

// NewMedium wires the feed source; a nil client gets a sane default.
func NewMedium(cfg config.MediumConfig, client *http.Client) *Medium {
	if client == nil {
		client = defaultClient()
	}
	return &Medium{
		feedURL: cfg.FeedURL,
		client:  client,
		parser:  gofeed.NewParser(),
	}
}

// Name identifies the strategy inside the registry.
func (m *Medium) Name() string {
	return domain.PlatformMedium
}

// Scrape parses the RSS feed and keeps the latest articles. RSS exposes no
// engagement counters, so those stay zero.
func (m *Medium) Scrape(ctx context.Context) ([]domain.Inspiration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch medium feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("medium returned %s", resp.Status)
	}

	feed, err := m.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse medium feed: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.Inspiration, 0, mediumMaxItems)
	for _, entry := range feed.Items {
		if len(items) == mediumMaxItems {
			break
		}
		if entry.Link == "" {
			continue
		}

		publishedAt := now
		if entry.PublishedParsed != nil {
			publishedAt = entry.PublishedParsed.UTC()
		}

		tags := entry.Categories
		if len(tags) == 0 {
			tags = mediumFallbackTags
		}

		author := "Medium Author"
		if len(entry.Authors) > 0 && entry.Authors[0].Name != "" {
			author = entry.Authors[0].Name
		}

		items = append(items, domain.Inspiration{
			Title:       orDefault(entry.Title, "Untitled"),
			Description: truncate(entry.Description, 500),
			ContentURL:  entry.Link,
			Platform:    domain.PlatformMedium,
			AuthorName:  author,
			Tags:        tags,
			PublishedAt: publishedAt,
			ScrapedAt:   now,
		})
	}

	return items, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
