package ozon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

type Interaction struct {
	logger *slog.Logger
	client *http.Client
}

// NewInteraction creates a new instance of Interaction with the Ozon storefront.
func NewInteraction(logger *slog.Logger, client *http.Client) *Interaction {
	return &Interaction{
		logger: logger.With("component", "ozon"),
		client: client,
	}
}

// GetOffer returns the current price and name from a product page. The
// considerBonuses flag selects the loyalty-card price variant instead of the
// list price.
func (that *Interaction) GetOffer(ctx context.Context, url string, considerBonuses bool) (Offer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Offer{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return Offer{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Offer{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Offer{}, fmt.Errorf("read response body: %w", err)
	}

	return ParseOffer(string(body), considerBonuses)
}
