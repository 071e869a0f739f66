// Package pricing implements the pricing and availability engine: season
// resolution, nightly rate computation, minimum-stay validation and
// isolated-gap checking.
package pricing

import (
	"time"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// monthDay encodes a month/day pair for ordered comparison.
func monthDay(month, day int) int {
	return month*100 + day
}

// ResolveSeason maps a date to exactly one season type. Holiday-period rules
// are consulted first, then recurring annual windows; rule order decides
// precedence among overlapping rules. Dates no rule covers are middle season.
func ResolveSeason(date time.Time, rules []models.SeasonRule) string {
	year := date.Year()
	md := monthDay(int(date.Month()), date.Day())

	for _, rule := range rules {
		if !rule.IsHolidayPeriod {
			continue
		}
		if matchHoliday(&rule, year, md) {
			return rule.SeasonType
		}
	}

	for _, rule := range rules {
		if rule.IsHolidayPeriod {
			continue
		}
		if matchRecurring(&rule, md) {
			return rule.SeasonType
		}
	}

	return models.SeasonMiddle
}

// matchHoliday checks a year-pinned window. A span crossing a year boundary
// breaks into three disjoint cases: the start year at or after the start
// date, the end year at or before the end date, or any year strictly between.
func matchHoliday(rule *models.SeasonRule, year, md int) bool {
	if rule.StartYear == nil || rule.EndYear == nil {
		return false
	}
	startYear, endYear := *rule.StartYear, *rule.EndYear
	start := monthDay(rule.StartMonth, rule.StartDay)
	end := monthDay(rule.EndMonth, rule.EndDay)

	if startYear == endYear {
		return year == startYear && md >= start && md <= end
	}

	switch {
	case year == startYear:
		return md >= start
	case year == endYear:
		return md <= end
	default:
		return year > startYear && year < endYear
	}
}

// matchRecurring checks an annual window, inclusive on both ends. Windows
// whose start month exceeds their end month wrap the year boundary.
func matchRecurring(rule *models.SeasonRule, md int) bool {
	start := monthDay(rule.StartMonth, rule.StartDay)
	end := monthDay(rule.EndMonth, rule.EndDay)

	if start > end {
		return md >= start || md <= end
	}
	return md >= start && md <= end
}
