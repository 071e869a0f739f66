package pricing

import (
	"fmt"
	"time"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// GapResult reports whether a proposed booking would strand an unbookable
// short gap next to an existing booking. It is advisory: callers surface it
// as a warning, it does not reject a booking by itself.
type GapResult struct {
	HasGap  bool   `json:"has_gap"`
	Message string `json:"message,omitempty"`
}

// WouldCreateIsolatedGap checks the gaps a proposed [checkin, checkout)
// range would leave before and after each existing booking. A gap of 1-2
// nights that itself fails minimum-stay validation is flagged.
func WouldCreateIsolatedGap(checkin, checkout time.Time, existing []*models.Booking, pricing *models.PropertyPricing, rules []models.SeasonRule) (*GapResult, error) {
	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}

		// Gap between the existing booking's checkout and the new checkin.
		if gapNights := nightsBetween(booking.EndDate, checkin); gapNights >= 1 && gapNights <= 2 {
			flagged, err := gapFailsMinimumStay(booking.EndDate, checkin, pricing, rules)
			if err != nil {
				return nil, err
			}
			if flagged {
				return &GapResult{
					HasGap:  true,
					Message: fmt.Sprintf("these dates would leave a %d-night gap after an existing booking that is too short to ever be booked", gapNights),
				}, nil
			}
		}

		// Gap between the new checkout and the existing booking's checkin.
		if gapNights := nightsBetween(checkout, booking.StartDate); gapNights >= 1 && gapNights <= 2 {
			flagged, err := gapFailsMinimumStay(checkout, booking.StartDate, pricing, rules)
			if err != nil {
				return nil, err
			}
			if flagged {
				return &GapResult{
					HasGap:  true,
					Message: fmt.Sprintf("these dates would leave a %d-night gap before an existing booking that is too short to ever be booked", gapNights),
				}, nil
			}
		}
	}

	return &GapResult{}, nil
}

func nightsBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func gapFailsMinimumStay(from, to time.Time, pricing *models.PropertyPricing, rules []models.SeasonRule) (bool, error) {
	result, err := ValidateMinimumStay(from, to, pricing, rules)
	if err != nil {
		return false, err
	}
	return !result.IsValid, nil
}
