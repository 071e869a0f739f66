package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

func TestCalculateLowSeasonScenario(t *testing.T) {
	pricing := DefaultPricing()
	rules := DefaultSeasonRules()

	// Jan 10-13 sits entirely in the recurring low-season window.
	breakdown, err := Calculate(date(2026, time.January, 10), date(2026, time.January, 13), pricing, rules)
	require.NoError(t, err)

	assert.Equal(t, 3, breakdown.Nights)
	require.Len(t, breakdown.DailyRates, 3)
	for _, dr := range breakdown.DailyRates {
		assert.Equal(t, models.SeasonLow, dr.Season)
		assert.Equal(t, 60.01, dr.Rate)
	}
	assert.Equal(t, 180.03, breakdown.BaseTotal)
	assert.Equal(t, 90.0, breakdown.CleaningFee)
	assert.False(t, breakdown.HasLongStayDiscount)
	assert.Equal(t, 0.0, breakdown.LongStayDiscount)
	assert.Equal(t, 270.03, breakdown.TotalAmount)
	assert.Equal(t, 2, breakdown.MinimumNights)
}

func TestCalculateInvalidRange(t *testing.T) {
	pricing := DefaultPricing()
	rules := DefaultSeasonRules()

	_, err := Calculate(date(2026, time.May, 10), date(2026, time.May, 10), pricing, rules)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	_, err = Calculate(date(2026, time.May, 10), date(2026, time.May, 9), pricing, rules)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}

func TestCalculateCheckoutNotBilled(t *testing.T) {
	breakdown, err := Calculate(date(2026, time.April, 1), date(2026, time.April, 2), DefaultPricing(), DefaultSeasonRules())
	require.NoError(t, err)

	assert.Equal(t, 1, breakdown.Nights)
	require.Len(t, breakdown.DailyRates, 1)
	assert.Equal(t, date(2026, time.April, 1), breakdown.DailyRates[0].Date)
}

func TestCalculateTotalIdentity(t *testing.T) {
	pricing := DefaultPricing()
	rules := DefaultSeasonRules()

	ranges := [][2]time.Time{
		{date(2026, time.January, 10), date(2026, time.January, 13)},
		{date(2026, time.April, 1), date(2026, time.April, 29)},
		{date(2026, time.July, 1), date(2026, time.July, 31)},
		{date(2026, time.August, 25), date(2026, time.September, 20)},
	}
	for _, r := range ranges {
		breakdown, err := Calculate(r[0], r[1], pricing, rules)
		require.NoError(t, err)
		assert.InDelta(t,
			breakdown.BaseTotal-breakdown.LongStayDiscount+breakdown.CleaningFee,
			breakdown.TotalAmount,
			0.005,
		)
	}
}

func TestCalculateLongStayDiscountMiddleSeason(t *testing.T) {
	pricing := DefaultPricing()
	rules := DefaultSeasonRules()

	// 28 nights entirely in middle season (April), at the threshold.
	breakdown, err := Calculate(date(2026, time.April, 1), date(2026, time.April, 29), pricing, rules)
	require.NoError(t, err)

	assert.Equal(t, 28, breakdown.Nights)
	assert.True(t, breakdown.HasLongStayDiscount)
	assert.InDelta(t, breakdown.BaseTotal*0.2, breakdown.LongStayDiscount, 0.01)
	assert.Equal(t, 4, breakdown.MinimumNights)
}

func TestCalculateNoDiscountWhenHighSeasonDominates(t *testing.T) {
	pricing := DefaultPricing()
	rules := DefaultSeasonRules()

	// 30 nights fully inside June-September high season: never discounted.
	breakdown, err := Calculate(date(2026, time.July, 1), date(2026, time.July, 31), pricing, rules)
	require.NoError(t, err)

	assert.Equal(t, 30, breakdown.Nights)
	assert.False(t, breakdown.HasLongStayDiscount)
	assert.Equal(t, 0.0, breakdown.LongStayDiscount)
	assert.Equal(t, 7, breakdown.MinimumNights)
}

func TestCalculateTieBreakAsymmetry(t *testing.T) {
	// Custom threshold so a short tied stay can qualify for the discount.
	pricing := DefaultPricing()
	pricing.LongStayDiscountNights = 4

	rules := []models.SeasonRule{
		{SeasonType: models.SeasonHigh, StartMonth: 6, StartDay: 1, EndMonth: 6, EndDay: 30},
		{SeasonType: models.SeasonLow, StartMonth: 7, StartDay: 1, EndMonth: 7, EndDay: 31},
	}

	// Jun 29 - Jul 3: two high nights, two low nights, no strict majority.
	breakdown, err := Calculate(date(2026, time.June, 29), date(2026, time.July, 3), pricing, rules)
	require.NoError(t, err)

	assert.Equal(t, 4, breakdown.Nights)

	// Discount eligibility only asks whether high season strictly dominates;
	// a tie therefore still earns the discount.
	assert.True(t, breakdown.HasLongStayDiscount)

	// Minimum nights falls back to the middle-season value on a tie, even
	// though no night is actually middle season.
	assert.Equal(t, 4, breakdown.MinimumNights)
}

func TestCalculateHighDominantTieElsewhere(t *testing.T) {
	pricing := DefaultPricing()
	pricing.LongStayDiscountNights = 3

	rules := []models.SeasonRule{
		{SeasonType: models.SeasonHigh, StartMonth: 6, StartDay: 1, EndMonth: 6, EndDay: 30},
	}

	// Three high nights: high strictly dominates, no discount.
	breakdown, err := Calculate(date(2026, time.June, 10), date(2026, time.June, 13), pricing, rules)
	require.NoError(t, err)
	assert.False(t, breakdown.HasLongStayDiscount)
	assert.Equal(t, 7, breakdown.MinimumNights)
}

func TestAveragePricePerNight(t *testing.T) {
	breakdown, err := Calculate(date(2026, time.January, 10), date(2026, time.January, 13), DefaultPricing(), DefaultSeasonRules())
	require.NoError(t, err)
	assert.Equal(t, 60.01, breakdown.AveragePricePerNight())
}
