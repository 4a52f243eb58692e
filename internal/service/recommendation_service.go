package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/vrushil-parikh/quickpic/internal/cache"
	"github.com/vrushil-parikh/quickpic/internal/domain"
	"github.com/vrushil-parikh/quickpic/internal/repository"
)

const (
	// recentOrderWindow limits how far back recommendations look.
	recentOrderWindow  = 2
	maxRecommendations = 12
)

// RecommendationService suggests products from the categories of a user's
// recent orders.
type RecommendationService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    cache.CategoryCache
	sfg      singleflight.Group // Prevents cache stampede per category
	logger   *zap.Logger
}

func NewRecommendationService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	categoryCache cache.CategoryCache,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		orders:   orders,
		products: products,
		cache:    categoryCache,
		logger:   logger,
	}
}

// ForUser builds the recommendation list: categories of the two most recent
// orders, each category's products fetched exactly once and concurrently,
// merged, deduplicated by product id and capped. A user with no order
// history gets an empty list.
func (s *RecommendationService) ForUser(ctx context.Context, userID string) ([]domain.Product, error) {
	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []domain.Product{}, nil
	}

	recent := orders[:min(recentOrderWindow, len(orders))]
	categoryIDs := s.collectCategoryIDs(ctx, recent)
	if len(categoryIDs) == 0 {
		return []domain.Product{}, nil
	}

	// One fetch per unique category; failures skip that category rather
	// than failing the whole request. Results keep the category order so
	// the merge below is deterministic.
	results := make([][]domain.Product, len(categoryIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, categoryID := range categoryIDs {
		i, categoryID := i, categoryID
		g.Go(func() error {
			products, err := s.productsForCategory(gctx, categoryID)
			if err != nil {
				s.logger.Warn("category fetch failed during recommendation",
					zap.String("category_id", categoryID),
					zap.Error(err))
				return nil
			}
			results[i] = products
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	merged := make([]domain.Product, 0, maxRecommendations)
	for _, products := range results {
		for _, product := range products {
			if seen[product.ID] {
				continue
			}
			seen[product.ID] = true
			merged = append(merged, product)
			if len(merged) == maxRecommendations {
				return merged, nil
			}
		}
	}

	return merged, nil
}

// collectCategoryIDs gathers unique category ids from the order lines. The
// snapshot carries categories for orders placed by this backend; older or
// reconciled lines fall back to a live catalog lookup by product id.
func (s *RecommendationService) collectCategoryIDs(ctx context.Context, orders []*domain.Order) []string {
	var categoryIDs []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			categoryIDs = append(categoryIDs, id)
		}
	}

	var missing []string
	for _, order := range orders {
		for _, item := range order.Items {
			if len(item.CategoryIDs) > 0 {
				for _, id := range item.CategoryIDs {
					add(id)
				}
				continue
			}
			if item.ProductID != "" {
				missing = append(missing, item.ProductID)
			}
		}
	}

	if len(missing) > 0 {
		products, err := s.products.GetByIDs(ctx, missing)
		if err != nil {
			s.logger.Warn("failed to resolve categories for order lines", zap.Error(err))
			return categoryIDs
		}
		for _, productID := range missing {
			if product, ok := products[productID]; ok {
				for _, id := range product.CategoryIDs {
					add(id)
				}
			}
		}
	}

	return categoryIDs
}

func (s *RecommendationService) productsForCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(categoryID, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, categoryID)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("category cache get error",
				zap.String("category_id", categoryID),
				zap.Error(err))
		}

		products, err = s.products.ListByCategory(ctx, categoryID)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), categoryID, products); err != nil {
				s.logger.Warn("category cache set error",
					zap.String("category_id", categoryID),
					zap.Error(err))
			}
		}()

		return products, nil
	})

	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}
