package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Season types.
const (
	SeasonHigh   = "high"
	SeasonMiddle = "middle"
	SeasonLow    = "low"
)

// RateMap maps season type to a numeric value, stored as jsonb.
type RateMap map[string]float64

// Value implements driver.Valuer.
func (m RateMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *RateMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for RateMap")
	}
}

// NightsMap maps season type to a night count, stored as jsonb.
type NightsMap map[string]int

// Value implements driver.Valuer.
func (m NightsMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *NightsMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for NightsMap")
	}
}

// PropertyPricing is the singleton pricing configuration for the house.
// It is owned by the admin process; the pricing engine only reads it.
type PropertyPricing struct {
	ID                       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BasePricePerNight        float64   `gorm:"type:decimal(10,2);not null" json:"base_price_per_night"`
	UtilitiesAndCleaningFee  float64   `gorm:"type:decimal(10,2);not null" json:"utilities_and_cleaning_fee"`
	SeasonalRates            RateMap   `gorm:"type:jsonb;not null" json:"seasonal_rates"`
	MinimumNightsBySeason    NightsMap `gorm:"type:jsonb;not null" json:"minimum_nights_by_season"`
	LongStayDiscountNights   int       `gorm:"not null" json:"long_stay_discount_threshold_nights"`
	LongStayDiscountPercent  float64   `gorm:"type:decimal(5,2);not null" json:"long_stay_discount_percent"`
	Currency                 string    `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name.
func (PropertyPricing) TableName() string {
	return "property_pricing"
}

// SeasonRule is one calendar window of the season table. Recurring rules
// repeat every year; holiday-period rules are pinned to specific years.
type SeasonRule struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SeasonType      string    `gorm:"type:varchar(10);not null" json:"season_type"`
	StartMonth      int       `gorm:"not null" json:"start_month"`
	StartDay        int       `gorm:"not null" json:"start_day"`
	EndMonth        int       `gorm:"not null" json:"end_month"`
	EndDay          int       `gorm:"not null" json:"end_day"`
	IsHolidayPeriod bool      `gorm:"not null;default:false" json:"is_holiday_period"`
	StartYear       *int      `json:"start_year,omitempty"`
	EndYear         *int      `json:"end_year,omitempty"`
	Priority        int       `gorm:"not null;default:0;index" json:"priority"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name.
func (SeasonRule) TableName() string {
	return "season_rules"
}
