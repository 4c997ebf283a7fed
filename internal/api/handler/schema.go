package handler

import "github.com/99minutos/crossborder-pricing/internal/core/ports"

// Numeric inputs are pointers so that a missing field fails "required"
// instead of silently becoming 0.

type shippingRatesRequest struct {
	Weight     *float64 `json:"weight"     validate:"required,finite"`
	Width      *float64 `json:"width"      validate:"required,finite"`
	Height     *float64 `json:"height"     validate:"required,finite"`
	Depth      *float64 `json:"depth"      validate:"required,finite"`
	USZip      string   `json:"usZip"      validate:"max=32"`
	UKPostcode string   `json:"ukPostcode" validate:"max=32"`
}

type priceRequest struct {
	CostPrice        *float64 `json:"costPrice"        validate:"required,finite"`
	ShippingFee      *float64 `json:"shippingFee"      validate:"required,finite"`
	FeePercent       *float64 `json:"feePercent"       validate:"required,finite"`
	TargetProfitRate *float64 `json:"targetProfitRate" validate:"required,finite"`
}

type exchangeRateResponse struct {
	Rate   float64 `json:"rate"`
	Source string  `json:"source"`
}

type priceQuoteResponse struct {
	SellPriceJPY       float64 `json:"sellPriceJpy"`
	FeeAmountJPY       float64 `json:"feeAmountJpy"`
	ProfitAmountJPY    float64 `json:"profitAmountJpy"`
	SellPriceUSD       float64 `json:"sellPriceUsd"`
	ExchangeRate       float64 `json:"exchangeRate"`
	ExchangeRateSource string  `json:"exchangeRateSource"`
}

func toPriceQuoteResponse(q *ports.PriceQuote) priceQuoteResponse {
	return priceQuoteResponse{
		SellPriceJPY:       q.SellPriceJPY,
		FeeAmountJPY:       q.FeeAmountJPY,
		ProfitAmountJPY:    q.ProfitAmountJPY,
		SellPriceUSD:       q.SellPriceUSD,
		ExchangeRate:       q.ExchangeRate.JPYPerUSD,
		ExchangeRateSource: q.ExchangeRate.Source,
	}
}
