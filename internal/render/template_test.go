package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payshot/internal/payout"
)

func testRequest(t *testing.T, countryCode string, kind payout.Kind) payout.RenderRequest {
	t.Helper()
	country, ok := payout.CountryByCode(countryCode)
	require.True(t, ok)
	return payout.RenderRequest{
		Country: country,
		Kind:    kind,
		Account: "123456",
		Amount:  decimal.RequireFromString("1500.50"),
	}
}

func TestBuildHTMLWaitingPage(t *testing.T) {
	req := testRequest(t, "colombia", payout.KindWaiting)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	html, err := BuildHTML(req, now)
	require.NoError(t, err)

	assert.Contains(t, html, "Lista de Cuentas en Espera")
	assert.Contains(t, html, "Colombia")
	assert.Contains(t, html, "COP")
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "1 500.50")
	assert.NotContains(t, html, "Error en Envío")
}

func TestBuildHTMLErrorPage(t *testing.T) {
	req := testRequest(t, "paraguay", payout.KindError)

	html, err := BuildHTML(req, time.Now())
	require.NoError(t, err)

	assert.Contains(t, html, "Error en Envío de Ganancias")
	assert.Contains(t, html, "ERROR AL ENVIAR")
	assert.Contains(t, html, "₲")
	assert.NotContains(t, html, "Lista de Cuentas en Espera")
}

func TestBuildHTMLDateUsesCountryTimezone(t *testing.T) {
	req := testRequest(t, "colombia", payout.KindWaiting)
	// Noon UTC is 07:00 in Bogota (UTC-5, no DST).
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	html, err := BuildHTML(req, now)
	require.NoError(t, err)

	assert.Contains(t, html, "14.03.2026 (07:00)")
}

func TestBuildHTMLSyntheticNeighbors(t *testing.T) {
	req := testRequest(t, "argentina", payout.KindWaiting)

	html, err := BuildHTML(req, time.Now())
	require.NoError(t, err)

	// One priority ticket plus nine processing neighbors.
	assert.Equal(t, 10, strings.Count(html, "Boleto №"))
	assert.Equal(t, 9, strings.Count(html, "EN PROCESO"))
}

func TestBuildHTMLNonNumericAccountStillRenders(t *testing.T) {
	req := testRequest(t, "ecuador", payout.KindWaiting)
	req.Account = "maria.perez@bank"

	html, err := BuildHTML(req, time.Now())
	require.NoError(t, err)
	assert.Contains(t, html, "maria.perez@bank")
}

func TestChromeOptionsDefaults(t *testing.T) {
	c := NewChrome(Options{})

	assert.NotEmpty(t, c.opts.ScratchDir)
	assert.Equal(t, 30*time.Second, c.opts.NavTimeout)
	assert.Equal(t, 1280, c.opts.ViewportWidth)
	assert.Equal(t, 800, c.opts.ViewportHeight)
}
