package lending

import (
	"time"

	"lending/core"

	"github.com/shopspring/decimal"
)

const (
	// MaxPrecision max decimal precision of amounts and shares
	MaxPrecision = 16
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(365 * 24 * 60 * 60)

	one = decimal.New(1, 0)
)

// UtilizationRate totalBorrows / totalDeposits
func UtilizationRate(totalDeposits, totalBorrows decimal.Decimal) decimal.Decimal {
	if !totalDeposits.IsPositive() {
		return decimal.Zero
	}

	return totalBorrows.Div(totalDeposits).Truncate(MaxPrecision)
}

// BorrowRatePerYear borrow rate on the kinked utilization curve.
//
// Below the kink the slope is multiplier; past the kink the extra
// utilization is charged at jumpMultiplier.
func BorrowRatePerYear(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if !kink.IsPositive() || utilizationRate.LessThanOrEqual(kink) {
		return baseRate.Add(utilizationRate.Mul(multiplier)).Truncate(MaxPrecision)
	}

	normalRate := baseRate.Add(kink.Mul(multiplier))
	excessRate := utilizationRate.Sub(kink).Mul(jumpMultiplier)

	return normalRate.Add(excessRate).Truncate(MaxPrecision)
}

// SupplyRatePerYear depositor rate: borrow interest net of the
// reserve spread, scaled by utilization
func SupplyRatePerYear(utilizationRate, borrowRate, reserveFactor decimal.Decimal) decimal.Decimal {
	return borrowRate.Mul(utilizationRate).Mul(one.Sub(reserveFactor)).Truncate(MaxPrecision)
}

// AccrueInterest compounds borrow interest on the bank since its last
// accrual. Depositors receive the interest net of the reserve factor;
// the spread accumulates in Reserves.
//
// Idempotent within a single timestamp, and must run before any
// share/amount conversion on the bank.
func AccrueInterest(bank *core.Bank, at time.Time) {
	if bank.LastAccruedAt.IsZero() {
		bank.LastAccruedAt = at
		return
	}

	elapsed := at.Unix() - bank.LastAccruedAt.Unix()
	if elapsed <= 0 {
		return
	}

	bank.LastAccruedAt = at

	if !bank.TotalBorrows.IsPositive() {
		return
	}

	utilizationRate := UtilizationRate(bank.TotalDeposits, bank.TotalBorrows)
	borrowRate := BorrowRatePerYear(utilizationRate, bank.BaseRate, bank.Multiplier, bank.JumpMultiplier, bank.Kink)
	ratePerSecond := borrowRate.Div(SecondsPerYear)

	growth := one.Add(ratePerSecond).Pow(decimal.NewFromInt(elapsed))
	interest := bank.TotalBorrows.Mul(growth.Sub(one)).Truncate(MaxPrecision)
	if !interest.IsPositive() {
		return
	}

	reserveCut := interest.Mul(bank.ReserveFactor).Truncate(MaxPrecision)

	bank.TotalBorrows = bank.TotalBorrows.Add(interest)
	bank.TotalDeposits = bank.TotalDeposits.Add(interest.Sub(reserveCut))
	bank.Reserves = bank.Reserves.Add(reserveCut)
}

// CheckSolvency post-condition guard on the pool invariant
// total deposits >= total borrows
func CheckSolvency(bank *core.Bank) error {
	if bank.TotalDeposits.LessThan(bank.TotalBorrows) {
		return core.ErrInsolventPool
	}

	return nil
}
