// Package qrcode generates payment QR codes.
package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Generator produces QR code images.
type Generator struct {
	size          int
	recoveryLevel qrcode.RecoveryLevel
}

// Option configures the generator.
type Option func(*Generator)

// WithSize sets the image size in pixels.
func WithSize(size int) Option {
	return func(g *Generator) {
		g.size = size
	}
}

// WithRecoveryLevel sets the error correction level.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(g *Generator) {
		g.recoveryLevel = level
	}
}

// NewGenerator creates a QR generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		size:          256,
		recoveryLevel: qrcode.Medium,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GeneratePNG encodes content as a PNG image.
func (g *Generator) GeneratePNG(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, g.recoveryLevel, g.size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// GenerateDataURL encodes content as a base64 PNG data URL for inline use.
func (g *Generator) GenerateDataURL(content string) (string, error) {
	png, err := g.GeneratePNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// EPCPayment describes a SEPA credit transfer for an EPC QR code.
type EPCPayment struct {
	BIC        string
	Name       string
	IBAN       string
	Currency   string
	Amount     float64
	Remittance string
}

// EPCPayload builds the EPC069-12 payload banking apps scan to pre-fill a
// SEPA transfer. Line order is fixed by the standard.
func EPCPayload(p EPCPayment) string {
	currency := p.Currency
	if currency == "" {
		currency = "EUR"
	}
	lines := []string{
		"BCD",
		"002",
		"1",
		"SCT",
		p.BIC,
		p.Name,
		strings.ReplaceAll(p.IBAN, " ", ""),
		fmt.Sprintf("%s%.2f", currency, p.Amount),
		"",
		"",
		p.Remittance,
	}
	return strings.Join(lines, "\n")
}
