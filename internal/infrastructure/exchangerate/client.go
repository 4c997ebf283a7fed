// Package exchangerate fetches the live JPY/USD rate from a public endpoint.
package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

var ErrRateUnavailable = errors.New("JPY rate unavailable")

type latestResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

// Client reads USD-based latest rates and returns the JPY entry.
type Client struct {
	url  string
	http *http.Client
	log  zerolog.Logger
}

func NewClient(url string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// JPYPerUSD returns how many yen one US dollar buys.
func (c *Client) JPYPerUSD(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("get exchange rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("get exchange rate: status %d: %w", resp.StatusCode, ErrRateUnavailable)
	}

	var body latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode exchange rate: %w", err)
	}
	if body.Result != "" && body.Result != "success" {
		return 0, fmt.Errorf("exchange rate result %q: %w", body.Result, ErrRateUnavailable)
	}

	jpy, ok := body.Rates["JPY"]
	if !ok || jpy <= 0 || math.IsInf(jpy, 0) {
		return 0, ErrRateUnavailable
	}

	c.log.Debug().Float64("jpy_per_usd", jpy).Msg("exchange rate fetched")
	return jpy, nil
}

var _ ports.ExchangeRateProvider = (*Client)(nil)
