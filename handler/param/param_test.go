package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindingQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/banks?symbol=btc", nil)

	var params struct {
		Symbol string `json:"symbol" valid:"required"`
	}
	require.NoError(t, Binding(r, &params))
	assert.Equal(t, "btc", params.Symbol)
}

func TestBindingBody(t *testing.T) {
	body := `{"address":"user-1","symbol":"BTC","amount":"12.5"}`
	r := httptest.NewRequest("POST", "/ops/deposit", strings.NewReader(body))

	var params struct {
		Address string          `json:"address" valid:"required"`
		Symbol  string          `json:"symbol" valid:"required"`
		Amount  decimal.Decimal `json:"amount"`
	}
	require.NoError(t, Binding(r, &params))
	assert.Equal(t, "user-1", params.Address)
	assert.Equal(t, "12.5", params.Amount.String())
}

func TestBindingMissingRequired(t *testing.T) {
	r := httptest.NewRequest("POST", "/ops/deposit", strings.NewReader(`{}`))

	var params struct {
		Address string `json:"address" valid:"required"`
	}
	assert.Error(t, Binding(r, &params))
}
