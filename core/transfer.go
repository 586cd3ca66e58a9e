package core

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// TransferDirection transfer direction relative to the bank treasury
type TransferDirection string

const (
	// TransferIn user pays into the treasury
	TransferIn TransferDirection = "in"
	// TransferOut treasury pays out to the user
	TransferOut TransferDirection = "out"
)

func (d TransferDirection) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *TransferDirection) Scan(src interface{}) error {
	*d = TransferDirection(cast.ToString(src))
	return nil
}

// TransferSource operation that produced a transfer
type TransferSource string

const (
	TransferSourceDeposit         TransferSource = "deposit"
	TransferSourceWithdraw        TransferSource = "withdraw"
	TransferSourceBorrow          TransferSource = "borrow"
	TransferSourceRepay           TransferSource = "repay"
	TransferSourceLiquidateRepay  TransferSource = "liquidate_repay"
	TransferSourceLiquidateRefund TransferSource = "liquidate_refund"
)

func (s TransferSource) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TransferSource) Scan(src interface{}) error {
	*s = TransferSource(cast.ToString(src))
	return nil
}

// Transfer journal row for the host ledger's atomic debit/credit
// primitive. Rows commit in the same transaction as the share
// mutations they settle, so either both apply or neither does.
type Transfer struct {
	ID        uint64            `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string            `sql:"size:36;unique_index:trace_idx" json:"trace_id,omitempty"`
	UserID    string            `sql:"size:36" json:"user_id,omitempty"`
	AssetID   string            `sql:"size:36" json:"asset_id,omitempty"`
	Amount    decimal.Decimal   `sql:"type:decimal(32,16)" json:"amount,omitempty"`
	Direction TransferDirection `sql:"size:8" json:"direction,omitempty"`
	Source    TransferSource    `sql:"size:36" json:"source,omitempty"`
	Memo      string            `sql:"size:140" json:"memo,omitempty"`
	CreatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	FindByTrace(ctx context.Context, traceID string) (*Transfer, error)
	Top(ctx context.Context, limit int) ([]*Transfer, error)
}
