package lending

import (
	"testing"
	"time"

	"lending/core"
	"lending/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank() *core.Bank {
	return &core.Bank{
		AssetID:              "f9a7b9f3-0001-4c10-a101-000000000001",
		Symbol:               "BTC",
		TotalDeposits:        number.Decimal("1000"),
		TotalDepositShares:   number.Decimal("1000"),
		TotalBorrows:         number.Decimal("500"),
		TotalBorrowShares:    number.Decimal("500"),
		MaxLTV:               number.Decimal("0.8"),
		LiquidationThreshold: number.Decimal("0.85"),
		LiquidationBonus:     number.Decimal("0.05"),
		CloseFactor:          number.Decimal("0.5"),
		ReserveFactor:        number.Decimal("0.1"),
		BaseRate:             number.Decimal("0.02"),
		Multiplier:           number.Decimal("0.2"),
		JumpMultiplier:       number.Decimal("2"),
		Kink:                 number.Decimal("0.8"),
		LastAccruedAt:        time.Unix(1600000000, 0),
	}
}

func TestUtilizationRate(t *testing.T) {
	assert.True(t, UtilizationRate(number.Decimal("0"), number.Decimal("0")).IsZero())
	assert.Equal(t, "0.5", UtilizationRate(number.Decimal("1000"), number.Decimal("500")).String())
}

func TestBorrowRatePerYear(t *testing.T) {
	base := number.Decimal("0.02")
	multiplier := number.Decimal("0.2")
	jump := number.Decimal("2")
	kink := number.Decimal("0.8")

	// below the kink: base + u * multiplier
	rate := BorrowRatePerYear(number.Decimal("0.5"), base, multiplier, jump, kink)
	assert.Equal(t, "0.12", rate.String())

	// at the kink the two segments agree
	atKink := BorrowRatePerYear(kink, base, multiplier, jump, kink)
	assert.Equal(t, "0.18", atKink.String())

	// past the kink the excess is charged at the jump multiplier
	rate = BorrowRatePerYear(number.Decimal("0.9"), base, multiplier, jump, kink)
	assert.Equal(t, "0.38", rate.String())
}

func TestAccrueInterest(t *testing.T) {
	bank := newTestBank()
	at := bank.LastAccruedAt.Add(time.Hour)

	AccrueInterest(bank, at)

	assert.True(t, bank.TotalBorrows.GreaterThan(number.Decimal("500")))
	assert.True(t, bank.TotalDeposits.GreaterThan(number.Decimal("1000")))
	assert.True(t, bank.Reserves.IsPositive())
	assert.Equal(t, at, bank.LastAccruedAt)

	// interest splits exactly between depositors and reserves
	borrowDelta := bank.TotalBorrows.Sub(number.Decimal("500"))
	depositDelta := bank.TotalDeposits.Sub(number.Decimal("1000"))
	assert.True(t, depositDelta.Add(bank.Reserves).Equal(borrowDelta))

	require.NoError(t, CheckSolvency(bank))
}

func TestAccrueInterestIdempotent(t *testing.T) {
	bank := newTestBank()
	at := bank.LastAccruedAt.Add(time.Hour)

	AccrueInterest(bank, at)
	snapshot := *bank

	// same timestamp again is a no-op
	AccrueInterest(bank, at)
	assert.True(t, snapshot.TotalBorrows.Equal(bank.TotalBorrows))
	assert.True(t, snapshot.TotalDeposits.Equal(bank.TotalDeposits))
	assert.True(t, snapshot.Reserves.Equal(bank.Reserves))

	// an earlier timestamp is a no-op too
	AccrueInterest(bank, at.Add(-time.Minute))
	assert.True(t, snapshot.TotalBorrows.Equal(bank.TotalBorrows))
}

func TestAccrueInterestDeterministic(t *testing.T) {
	a, b := newTestBank(), newTestBank()
	at := a.LastAccruedAt.Add(24 * time.Hour)

	AccrueInterest(a, at)
	AccrueInterest(b, at)

	assert.True(t, a.TotalBorrows.Equal(b.TotalBorrows))
	assert.True(t, a.TotalDeposits.Equal(b.TotalDeposits))
	assert.True(t, a.Reserves.Equal(b.Reserves))
}

func TestAccrueInterestCompounds(t *testing.T) {
	whole, split := newTestBank(), newTestBank()
	at := whole.LastAccruedAt.Add(2 * time.Hour)

	AccrueInterest(whole, at)

	// hourly accrual compounds on a growing principal, so two steps
	// never yield less than one
	AccrueInterest(split, split.LastAccruedAt.Add(time.Hour))
	AccrueInterest(split, at)

	assert.True(t, split.TotalBorrows.GreaterThanOrEqual(whole.TotalBorrows.Sub(number.Decimal("0.0001"))))
}

func TestAccrueInterestNoBorrows(t *testing.T) {
	bank := newTestBank()
	bank.TotalBorrows = number.Decimal("0")
	bank.TotalBorrowShares = number.Decimal("0")
	at := bank.LastAccruedAt.Add(time.Hour)

	AccrueInterest(bank, at)

	assert.True(t, bank.TotalDeposits.Equal(number.Decimal("1000")))
	assert.True(t, bank.Reserves.IsZero())
	assert.Equal(t, at, bank.LastAccruedAt)
}

func TestAccrueInterestBootstrap(t *testing.T) {
	bank := newTestBank()
	bank.LastAccruedAt = time.Time{}
	at := time.Unix(1600000000, 0)

	// first touch only stamps the clock
	AccrueInterest(bank, at)
	assert.True(t, bank.TotalBorrows.Equal(number.Decimal("500")))
	assert.Equal(t, at, bank.LastAccruedAt)
}

func TestCheckSolvency(t *testing.T) {
	bank := newTestBank()
	require.NoError(t, CheckSolvency(bank))

	bank.TotalBorrows = bank.TotalDeposits.Add(number.Decimal("1"))
	assert.Equal(t, core.ErrInsolventPool, CheckSolvency(bank))
}
