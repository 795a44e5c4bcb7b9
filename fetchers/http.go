package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/malusev998/currency-swap"
)

type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

func (h HTTPFetcher) Fetch(ctx context.Context) ([]currency.Price, error) {
	url := h.URL

	if url == "" {
		url = SwitcheoPricesURL
	}

	client := h.Client

	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")

	res, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		return nil, fmt.Errorf("price feed returned status %d: %w", res.StatusCode, err)
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return nil, err
	}

	var prices []currency.Price

	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, fmt.Errorf("decoding price feed: %w", err)
	}

	return prices, nil
}
