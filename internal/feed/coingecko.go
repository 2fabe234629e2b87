package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultCoinGeckoURL is the keyless crypto news endpoint.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3/news"

// CoinGecko fetches crypto headlines. No credential required.
type CoinGecko struct {
	url  string
	http *http.Client
}

func NewCoinGecko(url string) *CoinGecko {
	if strings.TrimSpace(url) == "" {
		url = DefaultCoinGeckoURL
	}
	return &CoinGecko{url: url, http: newClient()}
}

func (s *CoinGecko) Name() string { return "coingecko" }

func (s *CoinGecko) Candidates(ctx context.Context) ([]Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("coingecko: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Data []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Thumb       string `json:"thumb_2x"`
			UpdatedAt   int64  `json:"updated_at"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("coingecko: decode: %w", err)
	}

	out := make([]Article, 0, len(payload.Data))
	for _, it := range payload.Data {
		if strings.TrimSpace(it.Title) == "" {
			continue
		}
		a := Article{
			Title:       it.Title,
			Description: it.Description,
			URL:         it.URL,
			ImageURL:    it.Thumb,
		}
		if it.UpdatedAt > 0 {
			a.PublishedAt = time.Unix(it.UpdatedAt, 0).UTC()
		}
		out = append(out, a)
		if len(out) >= maxCandidates {
			break
		}
	}
	return out, nil
}
