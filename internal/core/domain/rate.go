package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RatesCacheTTL is how long a destination's rate lookup stays cached.
const RatesCacheTTL = 60 * time.Second

// Destination country codes sent to the rates API.
const (
	CountryUS = "US"
	CountryGB = "GB"
)

// Default postal codes used when the caller leaves them blank.
const (
	DefaultUSZip      = "10001"
	DefaultUKPostcode = "SW1A 1AA"
)

// Japan Post service codes that must always be represented in a result,
// either as a quote or as an explanatory error.
const (
	ServiceJapanPostEMS            = "japanpost_ems"
	ServiceJapanPostEPacketLight   = "japanpost_epacket_light"
	ServiceJapanPostSmallPacketAir = "japanpost_small_packet_air"
)

// RequiredJapanPostServices is ordered; gap-fill messages follow this order.
var RequiredJapanPostServices = []string{
	ServiceJapanPostEMS,
	ServiceJapanPostEPacketLight,
	ServiceJapanPostSmallPacketAir,
}

// japanPostLabels are the user-facing names shown in gap-fill messages.
var japanPostLabels = map[string]string{
	ServiceJapanPostEMS:            "EMS（国際スピード郵便）",
	ServiceJapanPostEPacketLight:   "国際eパケットライト",
	ServiceJapanPostSmallPacketAir: "小形包装物（航空便）",
}

var (
	ErrMissingAccessToken  = errors.New("shipping API access token is not configured")
	ErrRatesAPIUnavailable = errors.New("shipping rates API temporarily unavailable")
)

// RatesAPIError is a non-success answer from the rates API. StatusCode is the
// HTTP status; Message is whatever the API reported, possibly empty.
type RatesAPIError struct {
	StatusCode int
	Message    string
}

func (e *RatesAPIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "failed to fetch shipping rates"
	}
	return fmt.Sprintf("rates API status %d: %s", e.StatusCode, msg)
}

// JapanPostLabel returns the display label for a Japan Post service code.
func JapanPostLabel(code string) string {
	if label, ok := japanPostLabels[code]; ok {
		return label
	}
	return code
}

// IsAllowedJapanPostService reports whether code is one of the Japan Post
// services we display.
func IsAllowedJapanPostService(code string) bool {
	_, ok := japanPostLabels[strings.ToLower(strings.TrimSpace(code))]
	return ok
}

// RateQuoteRequest describes one package going to one destination.
type RateQuoteRequest struct {
	Country    string
	PostalCode string
	WeightG    float64
	WidthCm    float64
	HeightCm   float64
	DepthCm    float64
}

// Fingerprint is the cache key for the request. Postal codes are compared
// without case or whitespace; every other field is significant.
func (r RateQuoteRequest) Fingerprint() string {
	parts := []string{
		strings.ToUpper(strings.TrimSpace(r.Country)),
		formatDimension(r.WeightG),
		formatDimension(r.WidthCm),
		formatDimension(r.HeightCm),
		formatDimension(r.DepthCm),
		NormalizePostalCode(r.PostalCode),
	}
	return "rates:" + strings.Join(parts, "|")
}

// NormalizePostalCode upper-cases a postal code and strips all whitespace.
func NormalizePostalCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), ""))
}

func formatDimension(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RawRateQuote is a quote as returned by the rates API after defensive
// coercion. Optional fields are nil when the API omitted them or sent a
// value of the wrong shape.
type RawRateQuote struct {
	Carrier      string
	Service      string
	Price        float64
	Currency     string
	DeliveryDate *string
	CarrierID    *string
	Errors       []string
}

// RateSummary is a quote that passed the allow-list.
type RateSummary struct {
	Carrier      string  `json:"carrier"`
	Service      string  `json:"service"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DeliveryDate *string `json:"deliveryDate,omitempty"`
	CarrierID    *string `json:"carrierId,omitempty"`
}

// RatesResult is the outcome of one destination lookup. Errors carries both
// API-reported problems and synthesized missing-service messages.
type RatesResult struct {
	Rates  []RateSummary `json:"rates"`
	Errors []string      `json:"errors"`
}

// NewRatesResult returns a result with non-nil, empty slices.
func NewRatesResult() RatesResult {
	return RatesResult{Rates: []RateSummary{}, Errors: []string{}}
}

// FailedRatesResult is an empty quote list carrying a single error.
func FailedRatesResult(msg string) RatesResult {
	return RatesResult{Rates: []RateSummary{}, Errors: []string{msg}}
}

// Clone returns a deep copy so cached results cannot be mutated by callers.
func (r RatesResult) Clone() RatesResult {
	out := RatesResult{
		Rates:  make([]RateSummary, len(r.Rates)),
		Errors: make([]string, len(r.Errors)),
	}
	copy(out.Errors, r.Errors)
	for i, s := range r.Rates {
		out.Rates[i] = s
		out.Rates[i].DeliveryDate = cloneString(s.DeliveryDate)
		out.Rates[i].CarrierID = cloneString(s.CarrierID)
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
