package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"mesero/internal/config"
	"mesero/internal/domain"
	"mesero/internal/errors"
)

// CatalogClient fetches the menu catalog in a single GET round trip. It does
// not retry; a failed fetch is reported once and the caller decides.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewCatalogClient(cfg config.CatalogConfig) *CatalogClient {
	return &CatalogClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type menuEntryPayload struct {
	ID             string  `json:"id"`
	NameKey        string  `json:"nameKey"`
	DescriptionKey string  `json:"descriptionKey"`
	Price          string  `json:"price"`
	Category       string  `json:"category"`
	ImageURL       *string `json:"imageUrl"`
}

// FetchMenu returns the full catalog or a RemoteError whose reason
// distinguishes transport failure, a rejecting server and a malformed body.
func (c *CatalogClient) FetchMenu(ctx context.Context) ([]domain.MenuEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, errors.NewRemoteError(errors.ReasonRemoteUnavailable, "building catalog request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewRemoteError(errors.ReasonRemoteUnavailable, "catalog endpoint unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.NewRemoteError(
			errors.ReasonRemoteRejected,
			fmt.Sprintf("catalog endpoint returned status %d: %s", resp.StatusCode, string(body)),
			nil,
		)
	}

	var payload []menuEntryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewRemoteError(errors.ReasonRemoteMalformed, "decoding catalog body", err)
	}

	entries := make([]domain.MenuEntry, 0, len(payload))
	for _, p := range payload {
		entries = append(entries, domain.MenuEntry{
			ID:             p.ID,
			NameKey:        p.NameKey,
			DescriptionKey: p.DescriptionKey,
			Price:          p.Price,
			Category:       p.Category,
			ImageURL:       p.ImageURL,
		})
	}

	return entries, nil
}
