package domain

import "errors"

var ErrRatesExceed100 = errors.New("rates exceed 100%")

// Exchange rate sources reported alongside a price quote.
const (
	ExchangeRateLive     = "live"
	ExchangeRateFallback = "fallback"
)

// PriceInput holds the seller's costs and margins. Percent fields are whole
// percentages (21 means 21%).
type PriceInput struct {
	CostPrice        float64
	ShippingFee      float64
	FeePercent       float64
	TargetProfitRate float64
}

// PriceBreakdown is the JPY side of a price calculation.
type PriceBreakdown struct {
	SellPrice    float64
	FeeAmount    float64
	ProfitAmount float64
}

// CalculatePrice derives the sell price that leaves TargetProfitRate percent
// after FeePercent is deducted:
//
//	sell = (cost + shipping) / (1 - fee/100 - profit/100)
func CalculatePrice(in PriceInput) (PriceBreakdown, error) {
	if in.FeePercent+in.TargetProfitRate >= 100 {
		return PriceBreakdown{}, ErrRatesExceed100
	}

	denominator := 1 - in.FeePercent/100 - in.TargetProfitRate/100
	sell := (in.CostPrice + in.ShippingFee) / denominator

	return PriceBreakdown{
		SellPrice:    sell,
		FeeAmount:    sell * in.FeePercent / 100,
		ProfitAmount: sell * in.TargetProfitRate / 100,
	}, nil
}

// ConvertFromJPY converts a JPY amount using a JPY-per-unit rate.
// A non-positive rate yields 0.
func ConvertFromJPY(amount, jpyPerUnit float64) float64 {
	if jpyPerUnit <= 0 {
		return 0
	}
	return amount / jpyPerUnit
}
