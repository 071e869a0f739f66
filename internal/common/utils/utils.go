// Package utils provides shared helper functions.
package utils

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// GenerateBookingRef generates a booking reference.
// Format: prefix + yyyymmddHHMMSS + 4 random digits.
func GenerateBookingRef(prefix string) string {
	now := time.Now()
	timestamp := now.Format("20060102150405")
	random := GenerateRandomNumber(4)
	return fmt.Sprintf("%s%s%s", prefix, timestamp, random)
}

// GeneratePaymentReference generates the short reference guests put on their
// bank transfer. Confusable characters are excluded.
func GeneratePaymentReference() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var result strings.Builder
	result.WriteString("CS-")
	for i := 0; i < 8; i++ {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result.WriteByte(charset[n.Int64()])
	}
	return result.String()
}

// GenerateRandomNumber generates a random digit string of the given length.
func GenerateRandomNumber(length int) string {
	var result strings.Builder
	for i := 0; i < length; i++ {
		n, _ := rand.Int(rand.Reader, big.NewInt(10))
		result.WriteString(strconv.Itoa(int(n.Int64())))
	}
	return result.String()
}

// Round2 rounds a currency amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// StringPtr returns a string pointer.
func StringPtr(s string) *string {
	return &s
}

// TimePtr returns a time pointer.
func TimePtr(t time.Time) *time.Time {
	return &t
}

// SafeString returns the value of a string pointer, or "".
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Pagination holds normalized paging parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// Normalize clamps paging parameters to sane bounds.
func (p *Pagination) Normalize() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

// GetOffset returns the row offset for the current page.
func (p *Pagination) GetOffset() int {
	return (p.Page - 1) * p.PageSize
}

// GetLimit returns the page size.
func (p *Pagination) GetLimit() int {
	return p.PageSize
}
