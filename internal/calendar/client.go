package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"songcalendar/internal/lib/logger/utils"
	"songcalendar/internal/models"

	"go.uber.org/zap"
)

// HTTPFetcher reads the public catalog from a running server.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  client,
	}
}

func (f *HTTPFetcher) FetchCatalog(ctx context.Context) (models.Catalog, error) {
	if f.baseURL == "" {
		return nil, fmt.Errorf("server URL not configured")
	}

	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server URL: %w", err)
	}
	u = u.JoinPath("api", "musicas")

	utils.Logger.Debug("Fetching catalog", zap.String("url", u.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call catalog API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog API returned error: %s", resp.Status)
	}

	var catalog models.Catalog
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	utils.Logger.Debug("Catalog fetched", zap.Int("dates", len(catalog)))
	return catalog, nil
}
