package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Price persisted oracle price row, written by the price worker for
// audit and views only. The risk engine always reads fresh quotes.
type Price struct {
	ID          int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	AssetID     string          `sql:"size:36;unique_index:idx_prices" json:"asset_id,omitempty"`
	Price       decimal.Decimal `sql:"type:decimal(32,16)" json:"price,omitempty"`
	Content     types.JSONText  `sql:"type:varchar(1024)" json:"content,omitempty"`
	PublishedAt time.Time       `sql:"unique_index:idx_prices" json:"published_at,omitempty"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Create(ctx context.Context, tx *db.DB, price *Price) error
	FindLatest(ctx context.Context, assetID string) (*Price, error)
	FindByAssetTime(ctx context.Context, assetID string, publishedAt time.Time) (*Price, bool, error)
}
