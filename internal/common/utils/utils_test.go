package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 60.01, Round2(85*0.706))
	assert.Equal(t, 180.03, Round2(60.01*3))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 1.0, Round2(0.996))
	assert.Equal(t, -2.35, Round2(-2.346))
}

func TestGenerateBookingRef(t *testing.T) {
	ref := GenerateBookingRef("CS")
	assert.True(t, strings.HasPrefix(ref, "CS"))
	assert.Len(t, ref, 2+14+4)

	other := GenerateBookingRef("CS")
	// Same second is possible, the random suffix still differs almost always.
	assert.Len(t, other, len(ref))
}

func TestGeneratePaymentReference(t *testing.T) {
	ref := GeneratePaymentReference()
	assert.True(t, strings.HasPrefix(ref, "CS-"))
	assert.Len(t, ref, 11)

	// Confusable characters never appear.
	for _, c := range ref[3:] {
		assert.NotContains(t, "01IO", string(c))
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("guest@example.com"))
	assert.True(t, ValidateEmail("a.b+c@sub.example.co"))
	assert.False(t, ValidateEmail("nope"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestPagination(t *testing.T) {
	p := Pagination{Page: 0, PageSize: 0}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 0, p.GetOffset())

	p = Pagination{Page: 3, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 200, p.GetOffset())
	assert.Equal(t, 100, p.GetLimit())
}
