package lending

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

// Deposit converts amount into deposit shares at the current exchange
// rate and credits bank and position. Interest must already be accrued.
func Deposit(bank *core.Bank, position *core.Position, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	shares := amount.Div(bank.DepositExchangeRate()).Truncate(MaxPrecision)
	if !shares.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	bank.TotalDeposits = bank.TotalDeposits.Add(amount)
	bank.TotalDepositShares = bank.TotalDepositShares.Add(shares)
	position.DepositShares = position.DepositShares.Add(shares)

	return shares, nil
}

// Withdraw burns deposit shares for amount. Shares round up so the
// pool never pays out more than the burned claim. The collateral
// health check belongs to the caller.
func Withdraw(bank *core.Bank, position *core.Position, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	shares := number.Ceil(amount.Div(bank.DepositExchangeRate()), MaxPrecision)
	if shares.GreaterThan(position.DepositShares) {
		return decimal.Zero, core.ErrInsufficientBalance
	}

	if amount.GreaterThan(bank.AvailableLiquidity()) {
		return decimal.Zero, core.ErrInsufficientLiquidity
	}

	bank.TotalDeposits = bank.TotalDeposits.Sub(amount)
	bank.TotalDepositShares = bank.TotalDepositShares.Sub(shares)
	position.DepositShares = position.DepositShares.Sub(shares)

	return shares, nil
}

// Borrow mints borrow shares for amount. Shares round up so debt is
// never understated. The max-ltv health check belongs to the caller.
func Borrow(bank *core.Bank, position *core.Position, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	if amount.GreaterThan(bank.AvailableLiquidity()) {
		return decimal.Zero, core.ErrInsufficientLiquidity
	}

	shares := number.Ceil(amount.Div(bank.BorrowExchangeRate()), MaxPrecision)

	bank.TotalBorrows = bank.TotalBorrows.Add(amount)
	bank.TotalBorrowShares = bank.TotalBorrowShares.Add(shares)
	position.BorrowShares = position.BorrowShares.Add(shares)

	return shares, nil
}

// Repay burns borrow shares for amount. Repaying more than the
// outstanding debt is rejected.
func Repay(bank *core.Bank, position *core.Position, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	debt := position.BorrowedAmount(bank)
	if amount.GreaterThan(debt) {
		return decimal.Zero, core.ErrOverRepay
	}

	shares := amount.Div(bank.BorrowExchangeRate()).Truncate(MaxPrecision)
	if shares.GreaterThan(position.BorrowShares) {
		shares = position.BorrowShares
	}

	bank.TotalBorrows = bank.TotalBorrows.Sub(amount)
	bank.TotalBorrowShares = bank.TotalBorrowShares.Sub(shares)
	position.BorrowShares = position.BorrowShares.Sub(shares)

	return shares, nil
}
