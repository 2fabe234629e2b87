package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultNewsAPIURL is the sports top-headlines endpoint (key appended as a
// query parameter).
const DefaultNewsAPIURL = "https://newsapi.org/v2/top-headlines?category=sports&language=en"

// NewsAPI fetches sports headlines. An API key is mandatory; without one the
// source reports no content rather than failing the cycle.
type NewsAPI struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewNewsAPI(baseURL, apiKey string) *NewsAPI {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultNewsAPIURL
	}
	return &NewsAPI{url: baseURL, apiKey: strings.TrimSpace(apiKey), http: newClient()}
}

func (s *NewsAPI) Name() string { return "newsapi" }

func (s *NewsAPI) Candidates(ctx context.Context) ([]Article, error) {
	if s.apiKey == "" {
		// Keyless deployments simply never post fresh sports news.
		return nil, nil
	}

	u, err := url.Parse(s.url)
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	q := u.Query()
	q.Set("apiKey", s.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("newsapi: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			URLToImage  string `json:"urlToImage"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("newsapi: decode: %w", err)
	}

	out := make([]Article, 0, len(payload.Articles))
	for _, it := range payload.Articles {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		a := Article{
			Title:       it.Title,
			Description: it.Description,
			URL:         it.URL,
			ImageURL:    it.URLToImage,
		}
		if ts, err := time.Parse(time.RFC3339, it.PublishedAt); err == nil {
			a.PublishedAt = ts.UTC()
		}
		out = append(out, a)
		if len(out) >= maxCandidates {
			break
		}
	}
	return out, nil
}
