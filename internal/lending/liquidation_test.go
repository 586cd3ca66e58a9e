package lending

import (
	"testing"

	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liquidationFixture(collateralShares, debtShares string) (map[string]*core.Bank, []*core.Position, map[string]decimal.Decimal) {
	banks := newTestBanks()
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal(collateralShares)},
		{AssetID: usdAssetID, BorrowShares: number.Decimal(debtShares)},
	}
	prices := map[string]decimal.Decimal{
		btcAssetID: number.Decimal("1"),
		usdAssetID: number.Decimal("1"),
	}

	return banks, positions, prices
}

func TestLiquidateHealthyRejected(t *testing.T) {
	banks, positions, prices := liquidationFixture("200", "100")

	health, err := HealthFactor(positions, banks, prices, WeightMaintenance)
	require.NoError(t, err)
	require.True(t, health.Healthy())

	liquidator := &core.Position{AssetID: btcAssetID}
	_, err = Liquidate(banks[btcAssetID], banks[usdAssetID], positions[0], positions[1], liquidator, health, prices[btcAssetID], prices[usdAssetID])
	assert.Equal(t, core.ErrPositionHealthy, err)

	// nothing moved
	assert.Equal(t, "200", positions[0].DepositShares.String())
	assert.Equal(t, "100", positions[1].BorrowShares.String())
}

func TestLiquidateImprovesHealth(t *testing.T) {
	banks, positions, prices := liquidationFixture("120", "105")

	health, err := HealthFactor(positions, banks, prices, WeightMaintenance)
	require.NoError(t, err)
	require.False(t, health.Healthy())

	liquidator := &core.Position{AssetID: btcAssetID}
	outcome, err := Liquidate(banks[btcAssetID], banks[usdAssetID], positions[0], positions[1], liquidator, health, prices[btcAssetID], prices[usdAssetID])
	require.NoError(t, err)

	// close factor bounds the repayment: 105 * 0.5
	assert.Equal(t, "52.5", outcome.RepayAmount.String())
	// seized collateral carries the 5% bonus: 52.5 * 1.05
	assert.Equal(t, "55.125", outcome.SeizedShares.String())
	assert.True(t, outcome.SeizedShares.Equal(liquidator.DepositShares))

	after, err := HealthFactor(positions, banks, prices, WeightMaintenance)
	require.NoError(t, err)
	assert.True(t, after.Factor.GreaterThan(outcome.HealthBefore))
}

func TestLiquidateSeizureCap(t *testing.T) {
	banks, positions, prices := liquidationFixture("10", "105")

	health, err := HealthFactor(positions, banks, prices, WeightMaintenance)
	require.NoError(t, err)
	require.False(t, health.Healthy())

	liquidator := &core.Position{AssetID: btcAssetID}
	outcome, err := Liquidate(banks[btcAssetID], banks[usdAssetID], positions[0], positions[1], liquidator, health, prices[btcAssetID], prices[usdAssetID])
	require.NoError(t, err)

	// the borrower's whole claim is seized and the repayment scales
	// down to the value it still covers
	assert.Equal(t, "10", outcome.SeizedShares.String())
	assert.True(t, positions[0].DepositShares.IsZero())
	assert.True(t, outcome.RepayAmount.IsPositive())
	assert.True(t, outcome.RepayAmount.LessThan(number.Decimal("10")))
	assert.Equal(t, "10", liquidator.DepositShares.String())
}

func TestLiquidateNoCollateral(t *testing.T) {
	banks, positions, prices := liquidationFixture("0", "105")

	health := &core.Health{
		BorrowValue: number.Decimal("105"),
		Factor:      number.Decimal("0.5"),
	}

	liquidator := &core.Position{AssetID: btcAssetID}
	_, err := Liquidate(banks[btcAssetID], banks[usdAssetID], positions[0], positions[1], liquidator, health, prices[btcAssetID], prices[usdAssetID])
	assert.Equal(t, core.ErrInsufficientCollateral, err)
}

func TestValidateRiskParams(t *testing.T) {
	valid := core.RiskParams{
		MaxLTV:               number.Decimal("0.8"),
		LiquidationThreshold: number.Decimal("0.85"),
		LiquidationBonus:     number.Decimal("0.05"),
		CloseFactor:          number.Decimal("0.5"),
		ReserveFactor:        number.Decimal("0.1"),
	}
	require.NoError(t, ValidateRiskParams(valid))

	// max ltv must sit strictly below the liquidation threshold
	p := valid
	p.MaxLTV = p.LiquidationThreshold
	assert.Equal(t, core.ErrInvalidRiskParams, ValidateRiskParams(p))

	// threshold * (1 + bonus) must stay below 1
	p = valid
	p.LiquidationThreshold = number.Decimal("0.96")
	p.MaxLTV = number.Decimal("0.95")
	assert.Equal(t, core.ErrInvalidRiskParams, ValidateRiskParams(p))

	p = valid
	p.CloseFactor = number.Decimal("0")
	assert.Equal(t, core.ErrInvalidRiskParams, ValidateRiskParams(p))

	p = valid
	p.LiquidationBonus = number.Decimal("-0.01")
	assert.Equal(t, core.ErrInvalidRiskParams, ValidateRiskParams(p))

	p = valid
	p.ReserveFactor = number.Decimal("1")
	assert.Equal(t, core.ErrInvalidRiskParams, ValidateRiskParams(p))
}
