package feed

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// RSS serves extra config-declared topics from an RSS/Atom feed URL.
type RSS struct {
	name string
	url  string
	fp   *gofeed.Parser
}

func NewRSS(name, url string) *RSS {
	fp := gofeed.NewParser()
	fp.Client = newClient()
	return &RSS{name: name, url: url, fp: fp}
}

func (s *RSS) Name() string { return s.name }

func (s *RSS) Candidates(ctx context.Context) ([]Article, error) {
	f, err := s.fp.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss %s: %w", s.name, err)
	}

	out := make([]Article, 0, len(f.Items))
	for _, it := range f.Items {
		if it == nil || strings.TrimSpace(it.Title) == "" {
			continue
		}
		a := Article{
			Title:       it.Title,
			Description: it.Description,
			URL:         it.Link,
		}
		if it.Image != nil {
			a.ImageURL = it.Image.URL
		}
		if it.PublishedParsed != nil {
			a.PublishedAt = it.PublishedParsed.UTC()
		}
		out = append(out, a)
		if len(out) >= maxCandidates {
			break
		}
	}
	return out, nil
}
