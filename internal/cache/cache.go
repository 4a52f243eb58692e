package cache

import (
	"context"
	"errors"

	"github.com/vrushil-parikh/quickpic/internal/domain"
)

// CategoryCache holds per-category product lists so the recommendation
// selector doesn't hit the catalog store on every page view.
type CategoryCache interface {
	Get(ctx context.Context, categoryID string) ([]domain.Product, error)
	Set(ctx context.Context, categoryID string, products []domain.Product) error
	Delete(ctx context.Context, categoryID string) error
}

var ErrCacheMiss = errors.New("cache miss")
