package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
	"github.com/99minutos/crossborder-pricing/internal/pkg/metrics"
)

// DefaultFallbackRate only guards against a non-positive configured fallback.
// The configured value (EXCHANGE_RATE_FALLBACK) is authoritative otherwise.
const DefaultFallbackRate = 145.0

type PricingService struct {
	rates    ports.ExchangeRateProvider
	fallback float64
	log      zerolog.Logger
}

func NewPricingService(rates ports.ExchangeRateProvider, fallback float64, log zerolog.Logger) *PricingService {
	if fallback <= 0 {
		fallback = DefaultFallbackRate
	}
	return &PricingService{rates: rates, fallback: fallback, log: log}
}

// CurrentRate returns the live JPY/USD rate, or the fallback on any failure.
func (s *PricingService) CurrentRate(ctx context.Context) ports.ExchangeRate {
	rate, err := s.rates.JPYPerUSD(ctx)
	if err != nil || rate <= 0 {
		metrics.ExchangeRateFallbackTotal.Inc()
		s.log.Warn().Err(err).Float64("fallback", s.fallback).Msg("exchange rate unavailable, using fallback")
		return ports.ExchangeRate{JPYPerUSD: s.fallback, Source: domain.ExchangeRateFallback}
	}
	return ports.ExchangeRate{JPYPerUSD: rate, Source: domain.ExchangeRateLive}
}

// Quote computes the JPY sell price and its USD equivalent.
func (s *PricingService) Quote(ctx context.Context, in domain.PriceInput) (*ports.PriceQuote, error) {
	breakdown, err := domain.CalculatePrice(in)
	if err != nil {
		return nil, err
	}

	rate := s.CurrentRate(ctx)
	return &ports.PriceQuote{
		SellPriceJPY:    breakdown.SellPrice,
		FeeAmountJPY:    breakdown.FeeAmount,
		ProfitAmountJPY: breakdown.ProfitAmount,
		SellPriceUSD:    domain.ConvertFromJPY(breakdown.SellPrice, rate.JPYPerUSD),
		ExchangeRate:    rate,
	}, nil
}

var _ ports.PricingService = (*PricingService)(nil)
