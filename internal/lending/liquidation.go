package lending

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// Liquidate repays part of an unhealthy borrower's debt and seizes
// discounted collateral shares for the liquidator.
//
// The repay amount is bounded by the borrowed bank's close factor.
// Seized collateral is priced at collateralPrice discounted by the
// liquidation bonus and capped at the borrower's deposited shares;
// when the cap binds, the repay amount scales down with it so the
// liquidator never pays for collateral that is not there.
//
// health must be the borrower's maintenance-weighted health computed
// after accruing both banks. Interest must already be accrued.
func Liquidate(
	collateralBank, borrowedBank *core.Bank,
	borrowerCollateral, borrowerDebt, liquidatorCollateral *core.Position,
	health *core.Health,
	collateralPrice, borrowedPrice decimal.Decimal,
) (*core.LiquidationOutcome, error) {
	if health.Healthy() {
		return nil, core.ErrPositionHealthy
	}

	debt := borrowerDebt.BorrowedAmount(borrowedBank)
	if !debt.IsPositive() {
		return nil, core.ErrPositionHealthy
	}

	if !borrowerCollateral.DepositShares.IsPositive() {
		return nil, core.ErrInsufficientCollateral
	}

	repayAmount := debt.Mul(borrowedBank.CloseFactor).Truncate(MaxPrecision)
	if repayAmount.GreaterThan(debt) {
		repayAmount = debt
	}
	if !repayAmount.IsPositive() {
		repayAmount = debt
	}

	bonusFactor := one.Add(collateralBank.LiquidationBonus)
	exchangeRate := collateralBank.DepositExchangeRate()

	repayValue := repayAmount.Mul(borrowedPrice)
	seizedAmount := repayValue.Mul(bonusFactor).Div(collateralPrice).Truncate(MaxPrecision)
	seizedShares := seizedAmount.Div(exchangeRate).Truncate(MaxPrecision)

	// full seizure: cap at the borrower's collateral and scale the
	// repayment down to what the seized value still covers
	if seizedShares.GreaterThan(borrowerCollateral.DepositShares) {
		seizedShares = borrowerCollateral.DepositShares
		seizedAmount = seizedShares.Mul(exchangeRate).Truncate(MaxPrecision)
		repayValue = seizedAmount.Mul(collateralPrice).Div(bonusFactor)
		repayAmount = repayValue.Div(borrowedPrice).Truncate(MaxPrecision)

		if !repayAmount.IsPositive() {
			return nil, core.ErrInsufficientCollateral
		}
	}

	debtShares := repayAmount.Div(borrowedBank.BorrowExchangeRate()).Truncate(MaxPrecision)
	if debtShares.GreaterThan(borrowerDebt.BorrowShares) {
		debtShares = borrowerDebt.BorrowShares
	}

	borrowedBank.TotalBorrows = borrowedBank.TotalBorrows.Sub(repayAmount)
	borrowedBank.TotalBorrowShares = borrowedBank.TotalBorrowShares.Sub(debtShares)
	borrowerDebt.BorrowShares = borrowerDebt.BorrowShares.Sub(debtShares)

	borrowerCollateral.DepositShares = borrowerCollateral.DepositShares.Sub(seizedShares)
	liquidatorCollateral.DepositShares = liquidatorCollateral.DepositShares.Add(seizedShares)

	return &core.LiquidationOutcome{
		RepayAmount:  repayAmount,
		SeizedAmount: seizedAmount,
		SeizedShares: seizedShares,
		HealthBefore: health.Factor,
	}, nil
}

// ValidateRiskParams checks the creation-time bank parameters.
//
// max_ltv must sit strictly below the liquidation threshold to leave a
// buffer between the borrow limit and liquidation. threshold*(1+bonus)
// must stay below 1 so that every liquidation improves the borrower's
// health rather than worsening it.
func ValidateRiskParams(risk core.RiskParams) error {
	for _, p := range []decimal.Decimal{
		risk.MaxLTV,
		risk.LiquidationThreshold,
		risk.LiquidationBonus,
		risk.CloseFactor,
		risk.ReserveFactor,
	} {
		if p.IsNegative() || p.GreaterThanOrEqual(one) {
			return core.ErrInvalidRiskParams
		}
	}

	if !risk.MaxLTV.IsPositive() || !risk.LiquidationThreshold.IsPositive() || !risk.CloseFactor.IsPositive() {
		return core.ErrInvalidRiskParams
	}

	if risk.MaxLTV.GreaterThanOrEqual(risk.LiquidationThreshold) {
		return core.ErrInvalidRiskParams
	}

	if risk.LiquidationThreshold.Mul(one.Add(risk.LiquidationBonus)).GreaterThanOrEqual(one) {
		return core.ErrInvalidRiskParams
	}

	return nil
}
