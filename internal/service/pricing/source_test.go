package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
)

type failingSource struct{}

func (failingSource) Pricing(ctx context.Context) (*models.PropertyPricing, error) {
	return nil, errors.New("store down")
}

func (failingSource) SeasonRules(ctx context.Context) ([]models.SeasonRule, error) {
	return nil, errors.New("store down")
}

func TestFallbackSourceSubstitutesDefaults(t *testing.T) {
	source := NewFallbackSource(failingSource{}, NewStaticSource())

	pricing, err := source.Pricing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 85.0, pricing.BasePricePerNight)

	rules, err := source.SeasonRules(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, rules)
}

func TestFallbackSourcePrefersPrimary(t *testing.T) {
	primary := NewStaticSource()
	source := NewFallbackSource(primary, failingSource{})

	pricing, err := source.Pricing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 85.0, pricing.BasePricePerNight)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PropertyPricing{}, &models.SeasonRule{}))
	return db
}

func TestStoreSourceReadsDatabase(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPricingRepository(db)
	source := NewStoreSource(repo)
	ctx := context.Background()

	seeded := DefaultPricing()
	seeded.BasePricePerNight = 95
	require.NoError(t, repo.SavePricing(ctx, seeded))
	for _, rule := range DefaultSeasonRules() {
		r := rule
		require.NoError(t, repo.CreateSeasonRule(ctx, &r))
	}

	pricing, err := source.Pricing(ctx)
	require.NoError(t, err)
	assert.Equal(t, 95.0, pricing.BasePricePerNight)
	assert.Equal(t, 0.706, pricing.SeasonalRates[models.SeasonLow])

	rules, err := source.SeasonRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	// Holiday overrides come back first.
	assert.True(t, rules[0].IsHolidayPeriod)
}

func TestStoreSourceEmptyStoreErrors(t *testing.T) {
	db := newTestDB(t)
	source := NewStoreSource(repository.NewPricingRepository(db))

	_, err := source.Pricing(context.Background())
	assert.Error(t, err)
}
