package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// PricingRepository reads the pricing configuration and season table.
type PricingRepository struct {
	db *gorm.DB
}

// NewPricingRepository creates a pricing repository.
func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// GetPricing returns the single pricing row.
func (r *PricingRepository) GetPricing(ctx context.Context) (*models.PropertyPricing, error) {
	var pricing models.PropertyPricing
	err := r.db.WithContext(ctx).
		Order("id ASC").
		First(&pricing).Error
	if err != nil {
		return nil, err
	}
	return &pricing, nil
}

// ListSeasonRules returns all season rules, holiday periods first.
func (r *PricingRepository) ListSeasonRules(ctx context.Context) ([]models.SeasonRule, error) {
	var rules []models.SeasonRule
	err := r.db.WithContext(ctx).
		Order("priority DESC, id ASC").
		Find(&rules).Error
	return rules, err
}

// SavePricing upserts the pricing row.
func (r *PricingRepository) SavePricing(ctx context.Context, pricing *models.PropertyPricing) error {
	return r.db.WithContext(ctx).Save(pricing).Error
}

// CreateSeasonRule inserts a season rule.
func (r *PricingRepository) CreateSeasonRule(ctx context.Context, rule *models.SeasonRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

// DeleteSeasonRule removes a season rule.
func (r *PricingRepository) DeleteSeasonRule(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.SeasonRule{}, id).Error
}
