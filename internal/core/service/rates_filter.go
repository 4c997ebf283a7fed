package service

import (
	"fmt"
	"strings"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
	"github.com/99minutos/crossborder-pricing/internal/pkg/metrics"
)

// FilterAndAnnotate applies the carrier allow-list to raw quotes and
// collects their errors. Required Japan Post services missing from the
// accepted quotes are reported as additional errors after the API ones.
//
// Carriers outside DHL, FedEx and Japan Post are dropped without a message.
func FilterAndAnnotate(raw []domain.RawRateQuote) domain.RatesResult {
	result := domain.NewRatesResult()
	present := make(map[string]bool, len(domain.RequiredJapanPostServices))

	for _, q := range raw {
		result.Errors = append(result.Errors, q.Errors...)

		if !isAllowed(q) {
			continue
		}
		result.Rates = append(result.Rates, toSummary(q))
		if isJapanPost(q.Carrier) {
			present[normalizeService(q.Service)] = true
		}
	}

	for _, code := range domain.RequiredJapanPostServices {
		if present[code] {
			continue
		}
		metrics.RatesMissingServiceTotal.WithLabelValues(code).Inc()
		result.Errors = append(result.Errors, missingServiceMessage(code))
	}

	return result
}

func isAllowed(q domain.RawRateQuote) bool {
	carrier := strings.ToLower(q.Carrier)
	switch {
	case strings.Contains(carrier, "dhl"):
		return true
	case strings.Contains(carrier, "fedex"):
		return true
	case isJapanPost(carrier):
		return domain.IsAllowedJapanPostService(q.Service)
	default:
		return false
	}
}

func isJapanPost(carrier string) bool {
	carrier = strings.ToLower(carrier)
	return strings.Contains(carrier, "japan post") || strings.Contains(carrier, "japanpost")
}

func toSummary(q domain.RawRateQuote) domain.RateSummary {
	return domain.RateSummary{
		Carrier:      q.Carrier,
		Service:      q.Service,
		Price:        q.Price,
		Currency:     q.Currency,
		DeliveryDate: q.DeliveryDate,
		CarrierID:    q.CarrierID,
	}
}

func normalizeService(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func missingServiceMessage(code string) string {
	return fmt.Sprintf("%s の料金を取得できませんでした（この宛先では利用できない可能性があります）", domain.JapanPostLabel(code))
}
