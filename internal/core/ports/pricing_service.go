package ports

import (
	"context"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

// ExchangeRateProvider returns how many JPY one USD buys.
type ExchangeRateProvider interface {
	JPYPerUSD(ctx context.Context) (float64, error)
}

// ExchangeRate is the rate actually used for a conversion.
type ExchangeRate struct {
	JPYPerUSD float64
	Source    string // domain.ExchangeRateLive or domain.ExchangeRateFallback
}

// PriceQuote is the full result of a pricing calculation.
type PriceQuote struct {
	SellPriceJPY    float64
	FeeAmountJPY    float64
	ProfitAmountJPY float64
	SellPriceUSD    float64
	ExchangeRate    ExchangeRate
}

// PricingService computes sell prices and the exchange rate behind them.
type PricingService interface {
	Quote(ctx context.Context, input domain.PriceInput) (*PriceQuote, error)
	CurrentRate(ctx context.Context) ExchangeRate
}
