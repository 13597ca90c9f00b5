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

const core77MaxItems = 15

var core77Tags = []string{"Product Design", "Industrial Design"}

// Core77 scrapes the industrial-design post listing.
type Core77 struct {
	listURL string
	client  *http.Client
}

var _ scraper.Scraper = (*Core77)(nil)

// NewCore77 wires the listing URL; a nil client gets a sane default.
func NewCore77(cfg config.SiteConfig, client *http.Client) *Core77 {
	if client == nil {
		client = defaultClient()
	}
	return &Core77{listURL: cfg.ListURL, client: client}
}

// Name identifies the strategy inside the registry.
func (c *Core77) Name() string {
	return domain.PlatformCore77
}

// Scrape walks the post listing. No timestamps or counters are exposed, so
// publishedAt falls to scrape time.
func (c *Core77) Scrape(ctx context.Context) ([]domain.Inspiration, error) {
	doc, err := fetchDocument(ctx, c.client, c.listURL)
	if err != nil {
		return nil, fmt.Errorf("core77 listing: %w", err)
	}

	base, err := url.Parse(c.listURL)
	if err != nil {
		return nil, fmt.Errorf("invalid core77 url: %w", err)
	}

	now := time.Now().UTC()
	var items []domain.Inspiration

	doc.Find("article.post-item").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(items) == core77MaxItems {
			return false
		}

		heading := sel.Find("h2").First()
		if heading.Length() == 0 {
			heading = sel.Find("h3").First()
		}
		title := strings.TrimSpace(heading.Text())

		href, _ := heading.Find("a").First().Attr("href")
		link := absoluteURL(base, href)
		if link == "" {
			return true
		}

		excerpt := strings.TrimSpace(sel.Find("p.excerpt").First().Text())
		if excerpt == "" {
			excerpt = strings.TrimSpace(sel.Find("div.excerpt").First().Text())
		}

		author := strings.TrimSpace(sel.Find("span.author").First().Text())
		if author == "" {
			author = strings.TrimSpace(sel.Find("a.author").First().Text())
		}
		if author == "" {
			author = "Core77"
		}

		items = append(items, domain.Inspiration{
			Title:       orDefault(title, "Untitled"),
			Description: excerpt,
			ContentURL:  link,
			Platform:    domain.PlatformCore77,
			AuthorName:  author,
			Tags:        core77Tags,
			PublishedAt: now,
			ScrapedAt:   now,
		})

		return true
	})

	return items, nil
}
