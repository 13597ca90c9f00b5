package scraper

import (
	"context"
	"fmt"

	"designdaily/internal/domain"
)

// Scraper captures a single platform strategy (Dribbble, Awwwards, etc.).
// Implementations return normalized inspirations; scoring and persistence
// happen downstream.
type Scraper interface {
	Name() string
	Scrape(ctx context.Context) ([]domain.Inspiration, error)
}

// Registry keeps a mapping from platform names to their scrapers,
// preserving registration order so runs are reproducible.
type Registry struct {
	order    []string
	scrapers map[string]Scraper
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scrapers: map[string]Scraper{}}
}

// Register adds or replaces a scraper implementation.
func (r *Registry) Register(s Scraper) {
	if r.scrapers == nil {
		r.scrapers = map[string]Scraper{}
	}
	if _, exists := r.scrapers[s.Name()]; !exists {
		r.order = append(r.order, s.Name())
	}
	r.scrapers[s.Name()] = s
}

// Resolve returns a scraper by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scraper, error) {
	if s, ok := r.scrapers[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("scraper %s is not registered", name)
}

// All returns the registered scrapers in registration order.
func (r *Registry) All() []Scraper {
	out := make([]Scraper, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.scrapers[name])
	}
	return out
}
