package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveSeasonRecurringWindows(t *testing.T) {
	rules := DefaultSeasonRules()

	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.July, 15), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.June, 1), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.September, 15), rules))
	assert.Equal(t, models.SeasonMiddle, ResolveSeason(date(2026, time.September, 16), rules))
	assert.Equal(t, models.SeasonMiddle, ResolveSeason(date(2026, time.April, 10), rules))
}

func TestResolveSeasonWrappingWindow(t *testing.T) {
	rules := DefaultSeasonRules()

	// Low season wraps November through February.
	assert.Equal(t, models.SeasonLow, ResolveSeason(date(2026, time.November, 1), rules))
	assert.Equal(t, models.SeasonLow, ResolveSeason(date(2026, time.December, 15), rules))
	assert.Equal(t, models.SeasonLow, ResolveSeason(date(2027, time.February, 28), rules))
	assert.Equal(t, models.SeasonLow, ResolveSeason(date(2026, time.January, 10), rules))
	assert.Equal(t, models.SeasonMiddle, ResolveSeason(date(2026, time.March, 1), rules))
}

func TestResolveSeasonHolidayOverride(t *testing.T) {
	rules := DefaultSeasonRules()

	// Dec 20 2025 - Jan 6 2026 is a year-pinned high-season override on top
	// of the recurring low-season window.
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2025, time.December, 20), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2025, time.December, 31), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.January, 1), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.January, 6), rules))

	// Outside the pinned years the recurring rule wins again.
	assert.Equal(t, models.SeasonLow, ResolveSeason(date(2026, time.December, 25), rules))
	assert.Equal(t, models.SeasonLow, ResolveSeason(date(2025, time.January, 1), rules))
}

func TestResolveSeasonMultiYearHoliday(t *testing.T) {
	rules := []models.SeasonRule{
		{
			SeasonType:      models.SeasonHigh,
			StartMonth:      12, StartDay: 1,
			EndMonth: 2, EndDay: 1,
			IsHolidayPeriod: true,
			StartYear:       intPtr(2025),
			EndYear:         intPtr(2028),
		},
	}

	// Years strictly between the pinned span match regardless of month.
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.July, 1), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2025, time.December, 1), rules))
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2028, time.February, 1), rules))
	assert.Equal(t, models.SeasonMiddle, ResolveSeason(date(2028, time.February, 2), rules))
	assert.Equal(t, models.SeasonMiddle, ResolveSeason(date(2025, time.November, 30), rules))
}

func TestResolveSeasonEmptyRulesDefaultsToMiddle(t *testing.T) {
	assert.Equal(t, models.SeasonMiddle, ResolveSeason(date(2026, time.July, 1), nil))
}

func TestResolveSeasonTotality(t *testing.T) {
	rules := DefaultSeasonRules()
	valid := map[string]bool{
		models.SeasonHigh:   true,
		models.SeasonMiddle: true,
		models.SeasonLow:    true,
	}

	// Every date resolves to exactly one season, including Feb 29 and the
	// year boundaries.
	for d := date(2024, time.January, 1); d.Before(date(2027, time.January, 1)); d = d.AddDate(0, 0, 1) {
		season := ResolveSeason(d, rules)
		assert.True(t, valid[season], "date %s resolved to %q", d.Format("2006-01-02"), season)
	}

	assert.Contains(t, valid, ResolveSeason(date(2024, time.February, 29), rules))
}

func TestResolveSeasonFirstMatchWins(t *testing.T) {
	rules := []models.SeasonRule{
		{SeasonType: models.SeasonHigh, StartMonth: 6, StartDay: 1, EndMonth: 8, EndDay: 31},
		{SeasonType: models.SeasonLow, StartMonth: 7, StartDay: 1, EndMonth: 7, EndDay: 31},
	}
	// Both rules cover July; the first in the list takes precedence.
	assert.Equal(t, models.SeasonHigh, ResolveSeason(date(2026, time.July, 10), rules))
}
