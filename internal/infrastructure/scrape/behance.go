package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"designdaily/internal/config"
	"designdaily/internal/domain"
	"designdaily/internal/scraper"
)

const behancePerPage = 50

// Behance pulls today's most appreciated projects from the Behance v2 API.
type Behance struct {
	apiURL string
	apiKey string
	client *http.Client
}

var _ scraper.Scraper = (*Behance)(nil)

// NewBehance wires the API settings; a nil client gets a sane default.
func NewBehance(cfg config.BehanceConfig, client *http.Client) *Behance {
	if client == nil {
		client = defaultClient()
	}
	return &Behance{
		apiURL: cfg.APIURL,
		apiKey: cfg.APIKey,
		client: client,
	}
}

// Name identifies the strategy inside the registry.
func (b *Behance) Name() string {
	return domain.PlatformBehance
}

type behanceResponse struct {
	Projects []behanceProject `json:"projects"`
}

type behanceProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Covers      struct {
		Original string `json:"original"`
	} `json:"covers"`
	Owners []struct {
		DisplayName string `json:"display_name"`
		URL         string `json:"url"`
	} `json:"owners"`
	Fields []struct {
		Name string `json:"name"`
	} `json:"fields"`
	PublishedOn int64 `json:"published_on"`
	Stats       struct {
		Appreciations int `json:"appreciations"`
		Views         int `json:"views"`
		Comments      int `json:"comments"`
	} `json:"stats"`
}

// Scrape fetches the appreciation-sorted project listing and normalizes it.
func (b *Behance) Scrape(ctx context.Context) ([]domain.Inspiration, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("behance api key is not configured")
	}

	endpoint, err := url.Parse(b.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid behance api url: %w", err)
	}
	query := endpoint.Query()
	query.Set("api_key", b.apiKey)
	query.Set("sort", "appreciations")
	query.Set("time", "today")
	query.Set("per_page", fmt.Sprintf("%d", behancePerPage))
	endpoint.RawQuery = query.Encode()

	var resp behanceResponse
	if err := getJSON(ctx, b.client, endpoint.String(), &resp); err != nil {
		return nil, fmt.Errorf("fetch behance projects: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.Inspiration, 0, len(resp.Projects))
	for _, project := range resp.Projects {
		if project.URL == "" {
			continue
		}

		publishedAt := now
		if project.PublishedOn > 0 {
			publishedAt = time.Unix(project.PublishedOn, 0).UTC()
		}

		tags := make([]string, 0, len(project.Fields))
		for _, field := range project.Fields {
			if field.Name != "" {
				tags = append(tags, field.Name)
			}
		}

		item := domain.Inspiration{
			Title:        orDefault(project.Name, "Untitled"),
			Description:  project.Description,
			ContentURL:   project.URL,
			ThumbnailURL: project.Covers.Original,
			Platform:     domain.PlatformBehance,
			Tags:         tags,
			Metrics: domain.EngagementMetrics{
				Likes:    project.Stats.Appreciations,
				Views:    project.Stats.Views,
				Comments: project.Stats.Comments,
			},
			PublishedAt: publishedAt,
			ScrapedAt:   now,
		}
		if len(project.Owners) > 0 {
			item.AuthorName = project.Owners[0].DisplayName
			item.AuthorURL = project.Owners[0].URL
		}

		items = append(items, item)
	}

	return items, nil
}
