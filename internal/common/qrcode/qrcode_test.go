package qrcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEPCPayload(t *testing.T) {
	payload := EPCPayload(EPCPayment{
		BIC:        "CAIXESBBXXX",
		Name:       "Casa Sueño",
		IBAN:       "ES91 2100 0418 4502 0005 1332",
		Amount:     270.03,
		Remittance: "CS-ABCD2345",
	})

	lines := strings.Split(payload, "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "BCD", lines[0])
	assert.Equal(t, "002", lines[1])
	assert.Equal(t, "1", lines[2])
	assert.Equal(t, "SCT", lines[3])
	assert.Equal(t, "CAIXESBBXXX", lines[4])
	assert.Equal(t, "Casa Sueño", lines[5])
	// IBAN spaces are stripped for the machine-readable form.
	assert.Equal(t, "ES9121000418450200051332", lines[6])
	assert.Equal(t, "EUR270.03", lines[7])
	assert.Equal(t, "CS-ABCD2345", lines[10])
}

func TestGeneratePNGAndDataURL(t *testing.T) {
	g := NewGenerator(WithSize(128))

	png, err := g.GeneratePNG("hello")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, byte(0x89), png[0])
	assert.Equal(t, "PNG", string(png[1:4]))

	dataURL, err := g.GenerateDataURL("hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}
