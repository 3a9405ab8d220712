// ClassyCouture - Storefront Catalog and Recommendation Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/classycouture

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tomtom215/classycouture/internal/models"
)

// Catalog is the read side of the catalog store the engine ranks from.
// Lookups of missing rows return nil (or an empty slice) without error.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	FindProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error)

	// CoPurchaseCounts counts distinct shared orders per other product,
	// ordered by count descending then product id.
	CoPurchaseCounts(ctx context.Context, productID int64) ([]models.ProductCount, error)

	// SalesCounts counts order items per product for orders in statuses,
	// created at or after since when since is non-nil.
	SalesCounts(ctx context.Context, since *time.Time, statuses []models.OrderStatus) ([]models.ProductCount, error)

	UserExists(ctx context.Context, userID int64) (bool, error)
	PurchasedProductIDs(ctx context.Context, userID int64) ([]int64, error)
	PurchaseCategoryCounts(ctx context.Context, userID int64) ([]models.CategoryCount, error)
}

// Engine ranks products for the storefront's recommendation surfaces.
// It is stateless and safe for concurrent use.
type Engine struct {
	catalog Catalog
	config  *Config
	logger  zerolog.Logger
	now     func() time.Time
}

// NewEngine creates an engine over catalog. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(catalog Catalog, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		catalog: catalog,
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		now:     time.Now,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// SimilarProducts returns in-stock products from the same category whose
// price lies within the configured band around the product's price.
func (e *Engine) SimilarProducts(ctx context.Context, productID int64, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}

	product, err := e.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("similar products: %w", err)
	}
	if product == nil || product.CategoryID == 0 {
		return []models.Product{}, nil
	}

	band := decimal.NewFromFloat(e.config.PriceBand)
	minPrice := product.Price.Mul(decimal.NewFromInt(1).Sub(band))
	maxPrice := product.Price.Mul(decimal.NewFromInt(1).Add(band))

	similar, err := e.catalog.FindProducts(ctx, models.ProductFilter{
		CategoryIDs: []int64{product.CategoryID},
		ExcludeIDs:  []int64{productID},
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		InStockOnly: true,
		Order:       models.OrderRecommended,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("similar products: %w", err)
	}
	return similar, nil
}

// FrequentlyBoughtTogether returns in-stock products that share orders with
// the product, most shared orders first.
func (e *Engine) FrequentlyBoughtTogether(ctx context.Context, productID int64, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}

	product, err := e.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("frequently bought together: %w", err)
	}
	if product == nil {
		return []models.Product{}, nil
	}

	counts, err := e.catalog.CoPurchaseCounts(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("frequently bought together: %w", err)
	}
	if len(counts) == 0 {
		e.logger.Debug().Int64("product_id", productID).Msg("No co-purchase history, falling back to similar products")
		return e.SimilarProducts(ctx, productID, limit)
	}

	ranked, err := e.rankInStock(ctx, counts, limit)
	if err != nil {
		return nil, fmt.Errorf("frequently bought together: %w", err)
	}
	return ranked, nil
}

// PersonalizedRecommendations returns unpurchased in-stock products from the
// user's favorite categories, padded with trending products. Users without
// purchases get TrendingProducts.
func (e *Engine) PersonalizedRecommendations(ctx context.Context, userID int64, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}

	exists, err := e.catalog.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalized recommendations: %w", err)
	}
	if !exists {
		e.logger.Debug().Int64("user_id", userID).Msg("Unknown user, using trending products")
		return e.TrendingProducts(ctx, limit)
	}

	purchased, err := e.catalog.PurchasedProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalized recommendations: %w", err)
	}
	if len(purchased) == 0 {
		return e.TrendingProducts(ctx, limit)
	}

	categoryCounts, err := e.catalog.PurchaseCategoryCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("personalized recommendations: %w", err)
	}
	favorites := make([]int64, 0, e.config.FavoriteCategories)
	for _, c := range categoryCounts {
		if len(favorites) == e.config.FavoriteCategories {
			break
		}
		favorites = append(favorites, c.CategoryID)
	}

	recs := make([]models.Product, 0, limit)
	if len(favorites) > 0 {
		recs, err = e.catalog.FindProducts(ctx, models.ProductFilter{
			CategoryIDs: favorites,
			ExcludeIDs:  purchased,
			InStockOnly: true,
			Order:       models.OrderRecommended,
			Limit:       limit,
		})
		if err != nil {
			return nil, fmt.Errorf("personalized recommendations: %w", err)
		}
	}
	if len(recs) >= limit {
		return recs, nil
	}

	trending, err := e.TrendingProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("personalized recommendations: %w", err)
	}

	seen := idSet(purchased)
	for i := range recs {
		seen[recs[i].ID] = struct{}{}
	}
	for i := range trending {
		if len(recs) == limit {
			break
		}
		if _, dup := seen[trending[i].ID]; dup {
			continue
		}
		seen[trending[i].ID] = struct{}{}
		recs = append(recs, trending[i])
	}
	return recs, nil
}

// TrendingProducts ranks in-stock products by completed-order sales within
// the trending window and pads with featured products.
func (e *Engine) TrendingProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}

	since := e.now().Add(-e.config.TrendingWindow)
	counts, err := e.catalog.SalesCounts(ctx, &since, models.CompletedStatuses())
	if err != nil {
		return nil, fmt.Errorf("trending products: %w", err)
	}

	trending, err := e.rankInStock(ctx, counts, limit)
	if err != nil {
		return nil, fmt.Errorf("trending products: %w", err)
	}
	if len(trending) >= limit {
		return trending, nil
	}

	exclude := make([]int64, 0, len(counts))
	for _, c := range counts {
		exclude = append(exclude, c.ProductID)
	}
	featured, err := e.catalog.FindProducts(ctx, models.ProductFilter{
		Featured:    models.Bool(true),
		ExcludeIDs:  exclude,
		InStockOnly: true,
		Order:       models.OrderTopRated,
		Limit:       limit - len(trending),
	})
	if err != nil {
		return nil, fmt.Errorf("trending products: %w", err)
	}
	return append(trending, featured...), nil
}

// YouMayAlsoLike interleaves SimilarProducts and PersonalizedRecommendations,
// each asked for half the limit, skipping products already emitted. The
// viewed product is never returned.
func (e *Engine) YouMayAlsoLike(ctx context.Context, userID, productID int64, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}
	half := limit / 2

	similar, err := e.SimilarProducts(ctx, productID, half)
	if err != nil {
		return nil, fmt.Errorf("you may also like: %w", err)
	}
	// One extra so dropping the viewed product still leaves half.
	personalized, err := e.PersonalizedRecommendations(ctx, userID, half+1)
	if err != nil {
		return nil, fmt.Errorf("you may also like: %w", err)
	}
	personalized = without(personalized, productID)
	if len(personalized) > half {
		personalized = personalized[:half]
	}

	return interleave(limit, similar, personalized), nil
}

// BundleSuggestions pairs the product with each frequently bought companion
// and applies the bundle discount to the combined price.
func (e *Engine) BundleSuggestions(ctx context.Context, productID int64, limit int) ([]models.Bundle, error) {
	if limit <= 0 {
		return []models.Bundle{}, nil
	}

	mainProduct, err := e.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("bundle suggestions: %w", err)
	}
	if mainProduct == nil {
		return []models.Bundle{}, nil
	}

	companions, err := e.FrequentlyBoughtTogether(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("bundle suggestions: %w", err)
	}

	bundles := make([]models.Bundle, 0, len(companions))
	for i := range companions {
		bundles = append(bundles, e.makeBundle(mainProduct, &companions[i]))
	}
	return bundles, nil
}

func (e *Engine) makeBundle(mainProduct, companion *models.Product) models.Bundle {
	total := mainProduct.Price.Add(companion.Price)
	keep := decimal.NewFromInt(int64(100 - e.config.BundleDiscountPercent)).Div(decimal.NewFromInt(100))
	discounted := total.Mul(keep).Round(2)

	return models.Bundle{
		Main:            *mainProduct,
		Companion:       *companion,
		BundlePrice:     total,
		DiscountedPrice: discounted,
		Savings:         total.Sub(discounted).Round(2),
		DiscountPercent: e.config.BundleDiscountPercent,
	}
}

// NewArrivals returns in-stock products, newest first.
func (e *Engine) NewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}
	products, err := e.catalog.FindProducts(ctx, models.ProductFilter{
		InStockOnly: true,
		Order:       models.OrderNewest,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("new arrivals: %w", err)
	}
	return products, nil
}

// BestSellers ranks in-stock products by all-time completed-order sales.
func (e *Engine) BestSellers(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		return []models.Product{}, nil
	}
	counts, err := e.catalog.SalesCounts(ctx, nil, models.CompletedStatuses())
	if err != nil {
		return nil, fmt.Errorf("best sellers: %w", err)
	}
	ranked, err := e.rankInStock(ctx, counts, limit)
	if err != nil {
		return nil, fmt.Errorf("best sellers: %w", err)
	}
	return ranked, nil
}

// rankInStock loads the counted products, drops those out of stock and
// returns up to limit of them in count order.
func (e *Engine) rankInStock(ctx context.Context, counts []models.ProductCount, limit int) ([]models.Product, error) {
	if len(counts) == 0 {
		return []models.Product{}, nil
	}

	ids := make([]int64, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.ProductID)
	}
	products, err := e.catalog.FindProducts(ctx, models.ProductFilter{
		IDs:         ids,
		InStockOnly: true,
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = products[i]
	}

	ranked := make([]models.Product, 0, limit)
	for _, id := range ids {
		if len(ranked) == limit {
			break
		}
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}
	return ranked, nil
}

// interleave alternates items from a and b, skipping ids already taken.
func interleave(limit int, a, b []models.Product) []models.Product {
	out := make([]models.Product, 0, limit)
	seen := make(map[int64]struct{}, len(a)+len(b))

	take := func(p models.Product) {
		if len(out) == limit {
			return
		}
		if _, dup := seen[p.ID]; dup {
			return
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}

	n := max(len(a), len(b))
	for i := 0; i < n && len(out) < limit; i++ {
		if i < len(a) {
			take(a[i])
		}
		if i < len(b) {
			take(b[i])
		}
	}
	return out
}

// without returns products minus the one with id, reusing the backing array.
func without(products []models.Product, id int64) []models.Product {
	out := products[:0]
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
