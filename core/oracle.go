package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote validated price produced by the oracle adapter.
// Price and Confidence are raw feed integers scaled by 10^Exponent.
type PriceQuote struct {
	FeedID      string          `json:"feed_id"`
	AssetID     string          `json:"asset_id"`
	Price       decimal.Decimal `json:"price"`
	Confidence  decimal.Decimal `json:"confidence"`
	Exponent    int32           `json:"exponent"`
	PublishedAt time.Time       `json:"published_at"`
}

// NormalizedPrice price scaled into a plain decimal USD value
func (q *PriceQuote) NormalizedPrice() decimal.Decimal {
	return q.Price.Shift(q.Exponent)
}

// NormalizedConfidence confidence interval scaled like the price
func (q *PriceQuote) NormalizedConfidence() decimal.Decimal {
	return q.Confidence.Shift(q.Exponent)
}

// IPriceOracleService price oracle read interface.
// GetPrice returns a quote already checked against the staleness
// bound and the confidence ratio; quotes are never cached.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, feedID string) (*PriceQuote, error)
}
