package pricing

import (
	"fmt"
	"time"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// MinimumStayResult is a validation outcome, not an error.
type MinimumStayResult struct {
	IsValid        bool   `json:"is_valid"`
	RequiredNights int    `json:"required_nights"`
	ActualNights   int    `json:"actual_nights"`
	Message        string `json:"message,omitempty"`
}

// ValidateMinimumStay checks a date range against the minimum-night policy
// of its predominant season.
func ValidateMinimumStay(checkin, checkout time.Time, pricing *models.PropertyPricing, rules []models.SeasonRule) (*MinimumStayResult, error) {
	breakdown, err := Calculate(checkin, checkout, pricing, rules)
	if err != nil {
		return nil, err
	}

	result := &MinimumStayResult{
		IsValid:        breakdown.Nights >= breakdown.MinimumNights,
		RequiredNights: breakdown.MinimumNights,
		ActualNights:   breakdown.Nights,
	}
	if !result.IsValid {
		result.Message = minimumStayMessage(result.RequiredNights, result.ActualNights)
	}
	return result, nil
}

func minimumStayMessage(required, actual int) string {
	return fmt.Sprintf(
		"minimum stay for these dates is %d nights, selected stay is %d nights",
		required, actual,
	)
}
