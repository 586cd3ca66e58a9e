package lending

import (
	"testing"

	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	btcAssetID = "f9a7b9f3-0001-4c10-a101-000000000001"
	usdAssetID = "e8b6a8e2-0003-4d30-c301-000000000003"
)

func newTestBanks() map[string]*core.Bank {
	btc := newTestBank()

	usd := newTestBank()
	usd.AssetID = usdAssetID
	usd.Symbol = "USD"

	return map[string]*core.Bank{
		btc.AssetID: btc,
		usd.AssetID: usd,
	}
}

func newTestPrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		btcAssetID: number.Decimal("2"),
		usdAssetID: number.Decimal("1"),
	}
}

func TestHealthFactor(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
		{AssetID: usdAssetID, BorrowShares: number.Decimal("100")},
	}

	health, err := HealthFactor(positions, newTestBanks(), newTestPrices(), WeightMaintenance)
	require.NoError(t, err)

	// 100 * 2 = 200 collateral, weighted by 0.85, over 100 debt
	assert.Equal(t, "200", health.CollateralValue.String())
	assert.Equal(t, "170", health.WeightedCollateral.String())
	assert.Equal(t, "100", health.BorrowValue.String())
	assert.Equal(t, "1.7", health.Factor.String())
	assert.True(t, health.Healthy())
}

func TestHealthFactorInitialWeighting(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
		{AssetID: usdAssetID, BorrowShares: number.Decimal("100")},
	}

	health, err := HealthFactor(positions, newTestBanks(), newTestPrices(), WeightInitial)
	require.NoError(t, err)

	// max-ltv weighting is stricter than the liquidation threshold
	assert.Equal(t, "160", health.WeightedCollateral.String())
	assert.Equal(t, "1.6", health.Factor.String())
}

func TestHealthFactorNoDebt(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
	}

	health, err := HealthFactor(positions, newTestBanks(), newTestPrices(), WeightMaintenance)
	require.NoError(t, err)

	assert.True(t, health.Factor.IsZero())
	assert.True(t, health.Healthy())
}

func TestHealthFactorUnhealthy(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("50")},
		{AssetID: usdAssetID, BorrowShares: number.Decimal("100")},
	}

	health, err := HealthFactor(positions, newTestBanks(), newTestPrices(), WeightMaintenance)
	require.NoError(t, err)

	// 50 * 2 * 0.85 = 85 < 100
	assert.Equal(t, "0.85", health.Factor.String())
	assert.False(t, health.Healthy())
}

func TestHealthFactorMissingPrice(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
	}

	prices := newTestPrices()
	delete(prices, btcAssetID)

	_, err := HealthFactor(positions, newTestBanks(), prices, WeightMaintenance)
	assert.Equal(t, core.ErrInvalidPrice, err)
}

func TestHealthFactorMissingBank(t *testing.T) {
	positions := []*core.Position{
		{AssetID: "missing", DepositShares: number.Decimal("100")},
	}

	_, err := HealthFactor(positions, newTestBanks(), newTestPrices(), WeightMaintenance)
	assert.Equal(t, core.ErrBankNotFound, err)
}

func TestHealthFactorSkipsEmptyPositions(t *testing.T) {
	positions := []*core.Position{
		{AssetID: "missing"},
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
	}

	// empty rows never touch bank or price lookups
	health, err := HealthFactor(positions, newTestBanks(), newTestPrices(), WeightMaintenance)
	require.NoError(t, err)
	assert.Equal(t, "200", health.CollateralValue.String())
}

func TestBorrowHealthBoundary(t *testing.T) {
	banks := newTestBanks()
	banks[usdAssetID].TotalDeposits = number.Decimal("200000000")
	banks[usdAssetID].TotalDepositShares = number.Decimal("200000000")

	prices := map[string]decimal.Decimal{
		btcAssetID: number.Decimal("1"),
		usdAssetID: number.Decimal("1"),
	}

	// 100,000,000 collateral at max ltv 0.8 supports exactly 80,000,000
	borrow := func(amount string) (*core.Health, error) {
		positions := []*core.Position{
			{AssetID: btcAssetID, DepositShares: number.Decimal("100000000")},
		}
		simulated := ClonePositions(positions)
		sim := &core.Position{AssetID: usdAssetID}
		bank := *banks[usdAssetID]
		if _, err := Borrow(&bank, sim, number.Decimal(amount)); err != nil {
			return nil, err
		}
		simulated = append(simulated, sim)

		return HealthFactor(simulated, banks, prices, WeightInitial)
	}

	health, err := borrow("80000000")
	require.NoError(t, err)
	assert.Equal(t, "1", health.Factor.String())
	assert.True(t, health.Healthy())

	health, err = borrow("80000001")
	require.NoError(t, err)
	assert.False(t, health.Healthy())
}

func TestHealthFactorPriceMonotonicity(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
		{AssetID: usdAssetID, BorrowShares: number.Decimal("100")},
	}
	banks := newTestBanks()

	factorAt := func(collateralPrice, borrowedPrice string) decimal.Decimal {
		prices := map[string]decimal.Decimal{
			btcAssetID: number.Decimal(collateralPrice),
			usdAssetID: number.Decimal(borrowedPrice),
		}
		health, err := HealthFactor(positions, banks, prices, WeightMaintenance)
		require.NoError(t, err)
		return health.Factor
	}

	base := factorAt("2", "1")

	// rising collateral price never hurts
	assert.True(t, factorAt("3", "1").GreaterThanOrEqual(base))
	// rising borrowed price never helps
	assert.True(t, factorAt("2", "2").LessThanOrEqual(base))
}

func TestClonePositions(t *testing.T) {
	positions := []*core.Position{
		{AssetID: btcAssetID, DepositShares: number.Decimal("100")},
	}

	cloned := ClonePositions(positions)
	cloned[0].DepositShares = number.Decimal("1")

	assert.Equal(t, "100", positions[0].DepositShares.String())
}
