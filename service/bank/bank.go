package bank

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	bankStore core.IBankStore
}

// New new bank service
func New(bankStore core.IBankStore) core.IBankService {
	return &service{bankStore: bankStore}
}

// AccrueInterest brings the bank's totals up to date and persists it.
// Runs inside the caller's transaction before any share conversion.
func (s *service) AccrueInterest(ctx context.Context, tx *db.DB, bank *core.Bank, at time.Time) error {
	lending.AccrueInterest(bank, at)
	return s.bankStore.Update(ctx, tx, bank)
}

func (s *service) CurUtilizationRate(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	return lending.UtilizationRate(bank.TotalDeposits, bank.TotalBorrows), nil
}

// CurBorrowRate current borrow APY
func (s *service) CurBorrowRate(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	utilizationRate := lending.UtilizationRate(bank.TotalDeposits, bank.TotalBorrows)
	rate := lending.BorrowRatePerYear(utilizationRate, bank.BaseRate, bank.Multiplier, bank.JumpMultiplier, bank.Kink)

	return rate, nil
}

// CurSupplyRate current supply APY
func (s *service) CurSupplyRate(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	utilizationRate := lending.UtilizationRate(bank.TotalDeposits, bank.TotalBorrows)
	borrowRate := lending.BorrowRatePerYear(utilizationRate, bank.BaseRate, bank.Multiplier, bank.JumpMultiplier, bank.Kink)

	return lending.SupplyRatePerYear(utilizationRate, borrowRate, bank.ReserveFactor), nil
}
