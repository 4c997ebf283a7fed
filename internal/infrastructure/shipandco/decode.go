package shipandco

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

// The rates API is loosely typed. Everything below works on decoded `any`
// values and never trusts a field to have the documented shape.

// extractRates accepts either a bare array of quotes or an object wrapping
// one under "rates". Anything else yields no quotes.
func extractRates(body any) []domain.RawRateQuote {
	var items []any
	switch v := body.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["rates"].([]any)
	}

	quotes := make([]domain.RawRateQuote, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		quotes = append(quotes, coerceQuote(obj))
	}
	return quotes
}

func coerceQuote(obj map[string]any) domain.RawRateQuote {
	return domain.RawRateQuote{
		Carrier:      asString(obj["carrier"]),
		Service:      asString(obj["service"]),
		Price:        asFloat(obj["price"]),
		Currency:     asString(obj["currency"]),
		DeliveryDate: optionalString(obj["delivery_date"]),
		CarrierID:    optionalString(obj["carrier_id"]),
		Errors:       errorMessages(obj["errors"]),
	}
}

// errorMessages flattens an embedded error list. Entries without a string
// "message" are stringified as-is.
func errorMessages(v any) []string {
	entries, ok := v.([]any)
	if !ok {
		return nil
	}
	msgs := make([]string, 0, len(entries))
	for _, e := range entries {
		if obj, ok := e.(map[string]any); ok {
			if msg, ok := obj["message"].(string); ok && msg != "" {
				msgs = append(msgs, msg)
				continue
			}
		}
		msgs = append(msgs, stringify(e))
	}
	return msgs
}

// apiMessage digs the human-readable message out of an error body.
func apiMessage(body any) string {
	obj, ok := body.(map[string]any)
	if !ok {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if errs := errorMessages(obj["errors"]); len(errs) > 0 {
		return errs[0]
	}
	return ""
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// asFloat accepts JSON numbers and numeric strings; anything else, including
// NaN and infinities, is 0.
func asFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func optionalString(v any) *string {
	var s string
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return nil
	}
	return &s
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
