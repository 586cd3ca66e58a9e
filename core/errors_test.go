package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeRanges(t *testing.T) {
	assert.True(t, ErrInvalidAmount.IsValidationError())
	assert.True(t, ErrOverRepay.IsValidationError())
	assert.True(t, ErrStalePrice.IsOracleError())
	assert.True(t, ErrLowConfidence.IsOracleError())
	assert.True(t, ErrInsufficientCollateral.IsRiskError())
	assert.True(t, ErrPositionHealthy.IsRiskError())
	assert.True(t, ErrInsolventPool.IsSolvencyError())

	assert.False(t, ErrUnknown.IsValidationError())
	assert.False(t, ErrStalePrice.IsRiskError())
	assert.False(t, ErrInsufficientLiquidity.IsOracleError())
}

func TestErrorCodeError(t *testing.T) {
	var err error = ErrBankNotFound
	assert.Equal(t, "100102", err.Error())
}
