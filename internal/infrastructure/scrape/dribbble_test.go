package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"designdaily/internal/config"
	"designdaily/internal/domain"
)

func TestDribbbleScrape(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("access_token"); got != "secret" {
			t.Errorf("missing access token, got %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "popular" {
			t.Errorf("expected sort=popular, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
		  {
		    "title": "Neon Dashboard",
		    "description": "A dark dashboard concept",
		    "html_url": "https://dribbble.com/shots/1",
		    "images": {"normal": "https://cdn.dribbble.com/1_normal.png"},
		    "tags": ["ui design", "dashboard"],
		    "published_at": "2026-03-09T10:00:00Z",
		    "user": {"name": "Ann Artist", "html_url": "https://dribbble.com/ann"},
		    "likes_count": 320,
		    "views_count": 9000,
		    "comments_count": 14,
		    "saves_count": 88
		  },
		  {"title": "No URL shot", "html_url": ""}
		]`))
	}))
	defer server.Close()

	d := NewDribbble(config.DribbbleConfig{
		AccessToken: "secret",
		APIURL:      server.URL,
	}, server.Client())

	items, err := d.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Platform != domain.PlatformDribbble {
		t.Fatalf("unexpected platform %s", item.Platform)
	}
	if item.ContentURL != "https://dribbble.com/shots/1" {
		t.Fatalf("unexpected content url %s", item.ContentURL)
	}
	if item.AuthorName != "Ann Artist" {
		t.Fatalf("unexpected author %s", item.AuthorName)
	}
	if item.Metrics.Likes != 320 || item.Metrics.Saves != 88 {
		t.Fatalf("unexpected metrics %+v", item.Metrics)
	}

	want := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	if !item.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published time %v", item.PublishedAt)
	}
}

func TestDribbbleScrapeWithoutToken(t *testing.T) {
	t.Parallel()

	d := NewDribbble(config.DribbbleConfig{APIURL: "https://api.dribbble.com/v2/shots"}, nil)
	if _, err := d.Scrape(context.Background()); err == nil {
		t.Fatalf("expected error when token is missing")
	}
}
