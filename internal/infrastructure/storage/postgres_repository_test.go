package storage

import (
	"fmt"
	"testing"

	"designdaily/internal/domain"
)

func scoredPool(n int, platform, author string) []domain.CandidateSummary {
	pool := make([]domain.CandidateSummary, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, domain.CandidateSummary{
			ID:         fmt.Sprintf("%s-%d", platform, i),
			Score:      float64(100 - i),
			Platform:   platform,
			AuthorName: author,
		})
	}
	return pool
}

func TestCapPerPlatform(t *testing.T) {
	t.Parallel()

	// 15 candidates from one platform, cap 5: only the 5 highest survive.
	pool := scoredPool(15, "Dribbble", "")
	kept := capPerPlatform(pool, 5)

	if len(kept) != 5 {
		t.Fatalf("expected 5 kept, got %d", len(kept))
	}
	for i, c := range kept {
		if c.ID != fmt.Sprintf("Dribbble-%d", i) {
			t.Fatalf("expected highest-score-first retention, got %s at %d", c.ID, i)
		}
	}
}

func TestCapPerPlatformMixed(t *testing.T) {
	t.Parallel()

	pool := append(scoredPool(7, "Dribbble", ""), scoredPool(3, "Behance", "")...)
	kept := capPerPlatform(pool, 5)

	counts := map[string]int{}
	for _, c := range kept {
		counts[c.Platform]++
	}
	if counts["Dribbble"] != 5 || counts["Behance"] != 3 {
		t.Fatalf("unexpected platform counts: %v", counts)
	}
}

func TestCapPerAuthor(t *testing.T) {
	t.Parallel()

	pool := []domain.CandidateSummary{
		{ID: "a", Score: 99, Platform: "Dribbble", AuthorName: "ann"},
		{ID: "b", Score: 95, Platform: "Behance", AuthorName: "ann"},
		{ID: "c", Score: 90, Platform: "Awwwards", AuthorName: "ann"},
		{ID: "d", Score: 88, Platform: "Medium", AuthorName: ""},
		{ID: "e", Score: 85, Platform: "Medium", AuthorName: ""},
		{ID: "f", Score: 80, Platform: "Core77", AuthorName: "bob"},
	}

	kept := capPerAuthor(pool, 2)

	want := []string{"a", "b", "d", "e", "f"}
	if len(kept) != len(want) {
		t.Fatalf("expected %d kept, got %v", len(want), kept)
	}
	for i, id := range want {
		if kept[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, kept[i].ID)
		}
	}
}

func TestCapsDisabledWhenNonPositive(t *testing.T) {
	t.Parallel()

	pool := scoredPool(4, "Dribbble", "ann")
	if got := capPerPlatform(pool, 0); len(got) != 4 {
		t.Fatalf("zero platform cap should be a no-op, got %d", len(got))
	}
	if got := capPerAuthor(pool, 0); len(got) != 4 {
		t.Fatalf("zero author cap should be a no-op, got %d", len(got))
	}
}

func TestStringSliceScan(t *testing.T) {
	t.Parallel()

	var s StringSlice
	if err := s.Scan([]byte(`["ui design","branding"]`)); err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(s) != 2 || s[0] != "ui design" || s[1] != "branding" {
		t.Fatalf("unexpected slice: %v", s)
	}

	if err := s.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if len(s) != 0 {
		t.Fatalf("nil source should yield empty slice, got %v", s)
	}

	if err := s.Scan(42); err == nil {
		t.Fatalf("expected error for unsupported source type")
	}
}

func TestStringSliceValue(t *testing.T) {
	t.Parallel()

	v, err := StringSlice(nil).Value()
	if err != nil {
		t.Fatalf("value error: %v", err)
	}
	if v != "[]" {
		t.Fatalf("nil slice should serialize as [], got %v", v)
	}

	v, err = StringSlice{"4k"}.Value()
	if err != nil {
		t.Fatalf("value error: %v", err)
	}
	if v != `["4k"]` {
		t.Fatalf("unexpected value: %v", v)
	}
}
