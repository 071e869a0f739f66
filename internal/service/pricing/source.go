package pricing

import (
	"context"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/metrics"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
)

// ConfigSource supplies the pricing table and season rules. The engine
// fetches fresh on each request and never caches.
type ConfigSource interface {
	Pricing(ctx context.Context) (*models.PropertyPricing, error)
	SeasonRules(ctx context.Context) ([]models.SeasonRule, error)
}

// StoreSource reads configuration from the database.
type StoreSource struct {
	repo *repository.PricingRepository
}

// NewStoreSource creates a database-backed source.
func NewStoreSource(repo *repository.PricingRepository) *StoreSource {
	return &StoreSource{repo: repo}
}

// Pricing fetches the pricing row.
func (s *StoreSource) Pricing(ctx context.Context) (*models.PropertyPricing, error) {
	return s.repo.GetPricing(ctx)
}

// SeasonRules fetches the ordered season table.
func (s *StoreSource) SeasonRules(ctx context.Context) ([]models.SeasonRule, error) {
	return s.repo.ListSeasonRules(ctx)
}

// StaticSource serves the hardcoded default tables.
type StaticSource struct{}

// NewStaticSource creates a static source.
func NewStaticSource() *StaticSource {
	return &StaticSource{}
}

// Pricing returns the default pricing table.
func (s *StaticSource) Pricing(ctx context.Context) (*models.PropertyPricing, error) {
	return DefaultPricing(), nil
}

// SeasonRules returns the default season table.
func (s *StaticSource) SeasonRules(ctx context.Context) ([]models.SeasonRule, error) {
	return DefaultSeasonRules(), nil
}

// FallbackSource tries a primary source and substitutes the fallback on
// failure. Availability wins over consistency here: a fetch failure is
// logged and counted, never surfaced to the guest.
type FallbackSource struct {
	primary  ConfigSource
	fallback ConfigSource
}

// NewFallbackSource decorates primary with fallback.
func NewFallbackSource(primary, fallback ConfigSource) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback}
}

// Pricing returns the primary pricing table, or the fallback on error.
func (s *FallbackSource) Pricing(ctx context.Context) (*models.PropertyPricing, error) {
	pricing, err := s.primary.Pricing(ctx)
	if err != nil {
		logger.Warn("pricing store unavailable, using fallback table",
			logger.Module("pricing"),
			logger.Err(err),
		)
		metrics.Get().RecordPricingFallback()
		return s.fallback.Pricing(ctx)
	}
	return pricing, nil
}

// SeasonRules returns the primary season table, or the fallback on error.
func (s *FallbackSource) SeasonRules(ctx context.Context) ([]models.SeasonRule, error) {
	rules, err := s.primary.SeasonRules(ctx)
	if err != nil {
		logger.Warn("season store unavailable, using fallback table",
			logger.Module("pricing"),
			logger.Err(err),
		)
		metrics.Get().RecordPricingFallback()
		return s.fallback.SeasonRules(ctx)
	}
	return rules, nil
}
