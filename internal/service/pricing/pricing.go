package pricing

import (
	"time"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/utils"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// DailyRate is the resolved nightly price for one date of a stay.
type DailyRate struct {
	Date   time.Time `json:"date"`
	Rate   float64   `json:"rate"`
	Season string    `json:"season"`
}

// PricingBreakdown is the full cost breakdown for a date range.
type PricingBreakdown struct {
	Nights              int         `json:"nights"`
	DailyRates          []DailyRate `json:"daily_rates"`
	BaseTotal           float64     `json:"base_total"`
	HasLongStayDiscount bool        `json:"has_long_stay_discount"`
	LongStayDiscount    float64     `json:"long_stay_discount"`
	CleaningFee         float64     `json:"cleaning_fee"`
	TotalAmount         float64     `json:"total_amount"`
	MinimumNights       int         `json:"minimum_nights"`
	Currency            string      `json:"currency"`
}

// AveragePricePerNight returns the mean nightly rate.
func (b *PricingBreakdown) AveragePricePerNight() float64 {
	if b.Nights == 0 {
		return 0
	}
	return utils.Round2(b.BaseTotal / float64(b.Nights))
}

// Calculate produces a breakdown for [checkin, checkout). The checkout date
// is never billed as a night. Each nightly rate is rounded to 2 decimals,
// and the summed base total is rounded again to avoid cent drift.
func Calculate(checkin, checkout time.Time, pricing *models.PropertyPricing, rules []models.SeasonRule) (*PricingBreakdown, error) {
	if !checkout.After(checkin) {
		return nil, apperrors.ErrInvalidDateRange
	}

	var (
		dailyRates   []DailyRate
		sum          float64
		seasonNights = map[string]int{}
	)

	for d := checkin; d.Before(checkout); d = d.AddDate(0, 0, 1) {
		season := ResolveSeason(d, rules)
		multiplier, ok := pricing.SeasonalRates[season]
		if !ok {
			multiplier = 1
		}
		rate := utils.Round2(pricing.BasePricePerNight * multiplier)
		dailyRates = append(dailyRates, DailyRate{Date: d, Rate: rate, Season: season})
		sum += rate
		seasonNights[season]++
	}

	nights := len(dailyRates)
	baseTotal := utils.Round2(sum)

	predominant, hasPredominant := predominantSeason(seasonNights)

	// The two tie-break rules are deliberately asymmetric: the discount
	// eligibility check asks only whether high season strictly dominates,
	// while the minimum-nights lookup falls back to the middle season when
	// no season strictly dominates.
	highDominant := hasPredominant && predominant == models.SeasonHigh

	minSeason := models.SeasonMiddle
	if hasPredominant {
		minSeason = predominant
	}
	minimumNights, ok := pricing.MinimumNightsBySeason[minSeason]
	if !ok {
		minimumNights = pricing.MinimumNightsBySeason[models.SeasonMiddle]
	}

	hasDiscount := nights >= pricing.LongStayDiscountNights && !highDominant
	var discount float64
	if hasDiscount {
		discount = utils.Round2(baseTotal * pricing.LongStayDiscountPercent / 100)
	}

	total := utils.Round2(baseTotal - discount + pricing.UtilitiesAndCleaningFee)

	return &PricingBreakdown{
		Nights:              nights,
		DailyRates:          dailyRates,
		BaseTotal:           baseTotal,
		HasLongStayDiscount: hasDiscount,
		LongStayDiscount:    discount,
		CleaningFee:         pricing.UtilitiesAndCleaningFee,
		TotalAmount:         total,
		MinimumNights:       minimumNights,
		Currency:            pricing.Currency,
	}, nil
}

// predominantSeason returns the season whose night count strictly exceeds
// every other season's, if one exists.
func predominantSeason(counts map[string]int) (string, bool) {
	var best string
	bestCount := -1
	tied := false

	for _, season := range []string{models.SeasonHigh, models.SeasonMiddle, models.SeasonLow} {
		c := counts[season]
		switch {
		case c > bestCount:
			best, bestCount, tied = season, c, false
		case c == bestCount:
			tied = true
		}
	}

	if tied || bestCount <= 0 {
		return "", false
	}
	return best, true
}
