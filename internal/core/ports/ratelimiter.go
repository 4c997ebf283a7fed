package ports

import (
	"context"

	"github.com/99minutos/crossborder-pricing/internal/core/domain"
)

// RateLimiter decides whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (domain.RateLimitDecision, error)
}
