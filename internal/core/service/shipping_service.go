package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/core/ports"
)

type shippingService struct {
	fetcher ports.RateFetcher
	log     zerolog.Logger
}

// NewShippingService returns a ShippingService that queries the US and GB
// destinations concurrently.
func NewShippingService(fetcher ports.RateFetcher, log zerolog.Logger) ports.ShippingService {
	return &shippingService{fetcher: fetcher, log: log}
}

// GetRates fans out to both destinations and waits for both. Each lookup
// reports its own failures, so one destination never cancels the other.
func (s *shippingService) GetRates(ctx context.Context, in ports.ShippingRatesInput) ports.ShippingRatesResult {
	us := domain.RateQuoteRequest{
		Country:    domain.CountryUS,
		PostalCode: postalOrDefault(in.USZip, domain.DefaultUSZip),
		WeightG:    in.WeightG,
		WidthCm:    in.WidthCm,
		HeightCm:   in.HeightCm,
		DepthCm:    in.DepthCm,
	}
	gb := us
	gb.Country = domain.CountryGB
	gb.PostalCode = postalOrDefault(in.UKPostcode, domain.DefaultUKPostcode)

	var out ports.ShippingRatesResult
	var g errgroup.Group
	g.Go(func() error {
		out.US = s.fetcher.FetchRates(ctx, us)
		return nil
	})
	g.Go(func() error {
		out.UK = s.fetcher.FetchRates(ctx, gb)
		return nil
	})
	_ = g.Wait()

	s.log.Debug().
		Int("us_rates", len(out.US.Rates)).
		Int("uk_rates", len(out.UK.Rates)).
		Msg("shipping rates resolved")

	return out
}

func postalOrDefault(code, fallback string) string {
	if trimmed := strings.TrimSpace(code); trimmed != "" {
		return trimmed
	}
	return fallback
}
