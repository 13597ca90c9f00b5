package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"designdaily/internal/config"
	"designdaily/internal/domain"
	"designdaily/internal/scraper"
)

const awwwardsMaxItems = 15

var awwwardsTags = []string{"Web Design", "Award Winner", "UI/UX"}

// Awwwards scrapes the award-winning website listing.
type Awwwards struct {
	listURL string
	client  *http.Client
}

var _ scraper.Scraper = (*Awwwards)(nil)

// NewAwwwards wires the listing URL; a nil client gets a sane default.
func NewAwwwards(cfg config.SiteConfig, client *http.Client) *Awwwards {
	if client == nil {
		client = defaultClient()
	}
	return &Awwwards{listURL: cfg.ListURL, client: client}
}

// Name identifies the strategy inside the registry.
func (a *Awwwards) Name() string {
	return domain.PlatformAwwwards
}

// Scrape walks the listing page items. The site publishes no timestamps or
// counters, so publishedAt falls to scrape time.
func (a *Awwwards) Scrape(ctx context.Context) ([]domain.Inspiration, error) {
	doc, err := fetchDocument(ctx, a.client, a.listURL)
	if err != nil {
		return nil, fmt.Errorf("awwwards listing: %w", err)
	}

	base, err := url.Parse(a.listURL)
	if err != nil {
		return nil, fmt.Errorf("invalid awwwards url: %w", err)
	}

	now := time.Now().UTC()
	var items []domain.Inspiration

	doc.Find("div.item").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(items) == awwwardsMaxItems {
			return false
		}

		title := strings.TrimSpace(sel.Find("h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(sel.Find("h2").First().Text())
		}

		href, _ := sel.Find("a").First().Attr("href")
		link := absoluteURL(base, href)
		if link == "" {
			return true
		}

		thumb, _ := sel.Find("img").First().Attr("src")
		thumb = absoluteURL(base, thumb)

		agency := strings.TrimSpace(sel.Find("span.agency").First().Text())
		if agency == "" {
			agency = strings.TrimSpace(sel.Find("div.agency").First().Text())
		}
		if agency == "" {
			agency = "Unknown Agency"
		}

		items = append(items, domain.Inspiration{
			Title:        orDefault(title, "Untitled Website"),
			Description:  fmt.Sprintf("Award-winning website design by %s", agency),
			ContentURL:   link,
			ThumbnailURL: thumb,
			Platform:     domain.PlatformAwwwards,
			AuthorName:   agency,
			Tags:         awwwardsTags,
			PublishedAt:  now,
			ScrapedAt:    now,
		})

		return true
	})

	return items, nil
}

// absoluteURL resolves site-relative hrefs against the listing page host.
func absoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
