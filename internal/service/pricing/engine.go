package pricing

import (
	"context"
	"time"
)

// Engine ties the calculator to a configuration source. It is stateless
// between calls; every quote fetches the latest configuration.
type Engine struct {
	source ConfigSource
}

// NewEngine creates an engine over the given source.
func NewEngine(source ConfigSource) *Engine {
	return &Engine{source: source}
}

// Quote is a breakdown paired with its minimum-stay validation.
type Quote struct {
	Breakdown   *PricingBreakdown  `json:"breakdown"`
	MinimumStay *MinimumStayResult `json:"minimum_stay"`
}

// Quote computes the full breakdown and minimum-stay result for a range.
func (e *Engine) Quote(ctx context.Context, checkin, checkout time.Time) (*Quote, error) {
	pricing, err := e.source.Pricing(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := e.source.SeasonRules(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, err := Calculate(checkin, checkout, pricing, rules)
	if err != nil {
		return nil, err
	}

	stay := &MinimumStayResult{
		IsValid:        breakdown.Nights >= breakdown.MinimumNights,
		RequiredNights: breakdown.MinimumNights,
		ActualNights:   breakdown.Nights,
	}
	if !stay.IsValid {
		stay.Message = minimumStayMessage(stay.RequiredNights, stay.ActualNights)
	}

	return &Quote{Breakdown: breakdown, MinimumStay: stay}, nil
}
