package ports

import (
	"context"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

// ShippingRatesInput carries the package and the optional postal codes.
// Blank postal codes fall back to the service defaults.
type ShippingRatesInput struct {
	WeightG    float64
	WidthCm    float64
	HeightCm   float64
	DepthCm    float64
	USZip      string
	UKPostcode string
}

// ShippingRatesResult holds one result per fixed destination.
type ShippingRatesResult struct {
	US domain.RatesResult `json:"US"`
	UK domain.RatesResult `json:"UK"`
}

// ShippingService looks up rates for every supported destination.
type ShippingService interface {
	GetRates(ctx context.Context, input ShippingRatesInput) ShippingRatesResult
}
