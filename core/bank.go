package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Bank per-asset liquidity pool
type Bank struct {
	ID          uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID     string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol      string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	PriceFeedID string `sql:"size:64" json:"price_feed_id"`

	TotalDeposits      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_deposits"`
	TotalDepositShares decimal.Decimal `sql:"type:decimal(32,16)" json:"total_deposit_shares"`
	TotalBorrows       decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrows"`
	TotalBorrowShares  decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrow_shares"`
	// 协议利差累积的保留金
	Reserves decimal.Decimal `sql:"type:decimal(32,16)" json:"reserves"`

	// 借款时允许的最大抵押率, 比 LiquidationThreshold 更严格
	MaxLTV decimal.Decimal `sql:"type:decimal(20,8)" json:"max_ltv"`
	// 触发清算的抵押率阈值 (0, 1)
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	// 清算人获得的折扣激励 (0, 1), 一般为 0.05
	LiquidationBonus decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_bonus"`
	// 单次清算可偿还的最大债务比例 [0.05, 0.9]
	CloseFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"close_factor"`
	// 平台保留金率 [0, 1), 借款利息中归协议的部分
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`

	// 基础利率 per year
	BaseRate decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	// The multiplier of utilization rate that gives the slope of the interest rate. per year
	Multiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	// The multiplier after hitting the kink utilization point. per year
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	// Kink utilization point
	Kink decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`

	LastAccruedAt time.Time `json:"last_accrued_at"`
	Version       int64     `sql:"default:0" json:"version"`
	CreatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DepositExchangeRate amount per deposit share. Defined as 1 at bootstrap.
func (b *Bank) DepositExchangeRate() decimal.Decimal {
	if !b.TotalDepositShares.IsPositive() {
		return decimal.New(1, 0)
	}

	return b.TotalDeposits.Div(b.TotalDepositShares)
}

// BorrowExchangeRate amount per borrow share. Defined as 1 at bootstrap.
func (b *Bank) BorrowExchangeRate() decimal.Decimal {
	if !b.TotalBorrowShares.IsPositive() {
		return decimal.New(1, 0)
	}

	return b.TotalBorrows.Div(b.TotalBorrowShares)
}

// AvailableLiquidity cash withdrawable or borrowable from the pool
func (b *Bank) AvailableLiquidity() decimal.Decimal {
	return b.TotalDeposits.Sub(b.TotalBorrows)
}

// IBankStore bank store interface
type IBankStore interface {
	Create(ctx context.Context, tx *db.DB, bank *Bank) error
	Find(ctx context.Context, assetID string) (*Bank, error)
	FindBySymbol(ctx context.Context, symbol string) (*Bank, error)
	All(ctx context.Context) ([]*Bank, error)
	AllAsMap(ctx context.Context) (map[string]*Bank, error)
	Update(ctx context.Context, tx *db.DB, bank *Bank) error
}

// IBankService bank service interface
type IBankService interface {
	AccrueInterest(ctx context.Context, tx *db.DB, bank *Bank, at time.Time) error
	CurUtilizationRate(ctx context.Context, bank *Bank) (decimal.Decimal, error)
	CurBorrowRate(ctx context.Context, bank *Bank) (decimal.Decimal, error)
	CurSupplyRate(ctx context.Context, bank *Bank) (decimal.Decimal, error)
}
