package pricing

import (
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// DefaultPricing returns the hardcoded pricing table used when the live
// store is unreachable.
func DefaultPricing() *models.PropertyPricing {
	return &models.PropertyPricing{
		BasePricePerNight:       85,
		UtilitiesAndCleaningFee: 90,
		SeasonalRates: models.RateMap{
			models.SeasonHigh:   1.0,
			models.SeasonMiddle: 0.941,
			models.SeasonLow:    0.706,
		},
		MinimumNightsBySeason: models.NightsMap{
			models.SeasonHigh:   7,
			models.SeasonMiddle: 4,
			models.SeasonLow:    2,
		},
		LongStayDiscountNights:  28,
		LongStayDiscountPercent: 20,
		Currency:                "EUR",
	}
}

func intPtr(v int) *int { return &v }

// DefaultSeasonRules returns the hardcoded season table used when the live
// store is unreachable. Holiday overrides come first; the low-season window
// wraps the year boundary; everything uncovered is middle season.
func DefaultSeasonRules() []models.SeasonRule {
	return []models.SeasonRule{
		{
			SeasonType:      models.SeasonHigh,
			StartMonth:      12,
			StartDay:        20,
			EndMonth:        1,
			EndDay:          6,
			IsHolidayPeriod: true,
			StartYear:       intPtr(2025),
			EndYear:         intPtr(2026),
			Priority:        100,
		},
		{
			SeasonType: models.SeasonHigh,
			StartMonth: 6,
			StartDay:   1,
			EndMonth:   9,
			EndDay:     15,
			Priority:   10,
		},
		{
			SeasonType: models.SeasonLow,
			StartMonth: 11,
			StartDay:   1,
			EndMonth:   2,
			EndDay:     28,
			Priority:   10,
		},
	}
}
