package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// RiskParams bank risk parameters, fixed at creation
type RiskParams struct {
	MaxLTV               decimal.Decimal `json:"max_ltv"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus"`
	CloseFactor          decimal.Decimal `json:"close_factor"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor"`
}

// RateParams interest rate curve parameters, per year
type RateParams struct {
	BaseRate       decimal.Decimal `json:"base_rate"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
	Kink           decimal.Decimal `json:"kink"`
}

// LiquidationOutcome result of a successful liquidation
type LiquidationOutcome struct {
	Borrower          string          `json:"borrower"`
	Liquidator        string          `json:"liquidator"`
	CollateralAssetID string          `json:"collateral_asset_id"`
	BorrowedAssetID   string          `json:"borrowed_asset_id"`
	RepayAmount       decimal.Decimal `json:"repay_amount"`
	SeizedAmount      decimal.Decimal `json:"seized_amount"`
	SeizedShares      decimal.Decimal `json:"seized_shares"`
	HealthBefore      decimal.Decimal `json:"health_before"`
	HealthAfter       decimal.Decimal `json:"health_after"`
}

// IProtocolService protocol operation entry points. Every method is a
// single all-or-nothing transition; on error no state is mutated.
type IProtocolService interface {
	InitUser(ctx context.Context, address string) (*User, error)
	InitBank(ctx context.Context, assetID, symbol, feedID string, risk RiskParams, rates RateParams) (*Bank, error)
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) error
	Liquidate(ctx context.Context, liquidatorID, borrowerID, collateralAssetID, borrowedAssetID string) (*LiquidationOutcome, error)
	AccountHealth(ctx context.Context, userID string) (*Health, error)
}
