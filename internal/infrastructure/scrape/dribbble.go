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

const dribbblePerPage = 50

// Dribbble pulls the day's popular shots from the Dribbble v2 API.
type Dribbble struct {
	apiURL      string
	accessToken string
	client      *http.Client
}

var _ scraper.Scraper = (*Dribbble)(nil)

// NewDribbble wires the API settings; a nil client gets a sane default.
func NewDribbble(cfg config.DribbbleConfig, client *http.Client) *Dribbble {
	if client == nil {
		client = defaultClient()
	}
	return &Dribbble{
		apiURL:      cfg.APIURL,
		accessToken: cfg.AccessToken,
		client:      client,
	}
}

// Name identifies the strategy inside the registry.
func (d *Dribbble) Name() string {
	return domain.PlatformDribbble
}

type dribbbleShot struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Images      struct {
		Normal string `json:"normal"`
	} `json:"images"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"published_at"`
	User        struct {
		Name    string `json:"name"`
		HTMLURL string `json:"html_url"`
	} `json:"user"`
	LikesCount    int `json:"likes_count"`
	ViewsCount    int `json:"views_count"`
	CommentsCount int `json:"comments_count"`
	SavesCount    int `json:"saves_count"`
}

// Scrape fetches the popular-today shot listing and normalizes it.
func (d *Dribbble) Scrape(ctx context.Context) ([]domain.Inspiration, error) {
	if d.accessToken == "" {
		return nil, fmt.Errorf("dribbble access token is not configured")
	}

	endpoint, err := url.Parse(d.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dribbble api url: %w", err)
	}
	query := endpoint.Query()
	query.Set("access_token", d.accessToken)
	query.Set("sort", "popular")
	query.Set("timeframe", "day")
	query.Set("per_page", fmt.Sprintf("%d", dribbblePerPage))
	endpoint.RawQuery = query.Encode()

	var shots []dribbbleShot
	if err := getJSON(ctx, d.client, endpoint.String(), &shots); err != nil {
		return nil, fmt.Errorf("fetch dribbble shots: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.Inspiration, 0, len(shots))
	for _, shot := range shots {
		if shot.HTMLURL == "" {
			continue
		}

		publishedAt := now
		if parsed, err := time.Parse(time.RFC3339, shot.PublishedAt); err == nil {
			publishedAt = parsed
		}

		items = append(items, domain.Inspiration{
			Title:        orDefault(shot.Title, "Untitled"),
			Description:  shot.Description,
			ContentURL:   shot.HTMLURL,
			ThumbnailURL: shot.Images.Normal,
			Platform:     domain.PlatformDribbble,
			AuthorName:   shot.User.Name,
			AuthorURL:    shot.User.HTMLURL,
			Tags:         shot.Tags,
			Metrics: domain.EngagementMetrics{
				Likes:    shot.LikesCount,
				Views:    shot.ViewsCount,
				Comments: shot.CommentsCount,
				Saves:    shot.SavesCount,
			},
			PublishedAt: publishedAt,
			ScrapedAt:   now,
		})
	}

	return items, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
