package lending

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// WeightMode collateral weighting used by the health factor
type WeightMode int

const (
	// WeightMaintenance liquidation-threshold weighting, decides
	// liquidation eligibility
	WeightMaintenance WeightMode = iota
	// WeightInitial max-ltv weighting, stricter; used to simulate
	// borrow and withdraw
	WeightInitial
)

// HealthFactor weighted collateral value over borrowed value across
// every bank the user touches. Prices are normalized USD values keyed
// by asset id. Recomputed fresh on every call; nothing is cached.
func HealthFactor(positions []*core.Position, banks map[string]*core.Bank, prices map[string]decimal.Decimal, mode WeightMode) (*core.Health, error) {
	health := &core.Health{
		CollateralValue:    decimal.Zero,
		WeightedCollateral: decimal.Zero,
		BorrowValue:        decimal.Zero,
		Factor:             decimal.Zero,
	}

	for _, p := range positions {
		if !p.DepositShares.IsPositive() && !p.BorrowShares.IsPositive() {
			continue
		}

		bank, ok := banks[p.AssetID]
		if !ok {
			return nil, core.ErrBankNotFound
		}

		price, ok := prices[p.AssetID]
		if !ok || !price.IsPositive() {
			return nil, core.ErrInvalidPrice
		}

		weight := bank.LiquidationThreshold
		if mode == WeightInitial {
			weight = bank.MaxLTV
		}

		if p.DepositShares.IsPositive() {
			value := p.DepositedAmount(bank).Mul(price)
			health.CollateralValue = health.CollateralValue.Add(value)
			health.WeightedCollateral = health.WeightedCollateral.Add(value.Mul(weight))
		}

		if p.BorrowShares.IsPositive() {
			health.BorrowValue = health.BorrowValue.Add(p.BorrowedAmount(bank).Mul(price))
		}
	}

	if health.BorrowValue.IsPositive() {
		health.Factor = health.WeightedCollateral.Div(health.BorrowValue).Truncate(MaxPrecision)
	}

	return health, nil
}

// ClonePositions deep copy for post-operation health simulation
func ClonePositions(positions []*core.Position) []*core.Position {
	cloned := make([]*core.Position, len(positions))
	for idx, p := range positions {
		dup := *p
		cloned[idx] = &dup
	}

	return cloned
}
