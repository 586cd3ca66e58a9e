package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position user balance in one bank
type Position struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID        string          `sql:"size:36;unique_index:position_idx" json:"-"`
	AssetID       string          `sql:"size:36;unique_index:position_idx" json:"asset_id"`
	DepositShares decimal.Decimal `sql:"type:decimal(32,16)" json:"deposit_shares"`
	BorrowShares  decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_shares"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DepositedAmount current deposited amount at the bank's exchange rate
func (p *Position) DepositedAmount(bank *Bank) decimal.Decimal {
	return p.DepositShares.Mul(bank.DepositExchangeRate())
}

// BorrowedAmount current borrowed amount at the bank's exchange rate
func (p *Position) BorrowedAmount(bank *Bank) decimal.Decimal {
	return p.BorrowShares.Mul(bank.BorrowExchangeRate())
}

// IPositionStore position store interface
type IPositionStore interface {
	Create(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	FindByAsset(ctx context.Context, assetID string) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error
}

// Health risk snapshot of a user position across all banks
type Health struct {
	CollateralValue    decimal.Decimal `json:"collateral_value"`
	WeightedCollateral decimal.Decimal `json:"weighted_collateral"`
	BorrowValue        decimal.Decimal `json:"borrow_value"`
	Factor             decimal.Decimal `json:"factor"`
}

// Healthy reports whether the position is safe from liquidation.
// A position with no debt is always healthy.
func (h *Health) Healthy() bool {
	if !h.BorrowValue.IsPositive() {
		return true
	}

	return h.Factor.GreaterThanOrEqual(decimal.New(1, 0))
}
