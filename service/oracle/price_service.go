package oracle

import (
	"context"
	"fmt"
	"time"

	"lending/core"
	"lending/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config oracle adapter config
type Config struct {
	EndPoint string
	// MaxAge staleness bound on quotes
	MaxAge time.Duration
	// MaxConfidenceRatio max confidence/price ratio still trusted
	MaxConfidenceRatio decimal.Decimal
}

// PriceService price oracle adapter
type PriceService struct {
	cfg Config
}

// New new oracle price service
func New(cfg Config) core.IPriceOracleService {
	return &PriceService{cfg: cfg}
}

type feedPayload struct {
	FeedID      string          `json:"feed_id"`
	AssetID     string          `json:"asset_id"`
	Price       decimal.Decimal `json:"price"`
	Confidence  decimal.Decimal `json:"conf"`
	Exponent    int32           `json:"expo"`
	PublishTime int64           `json:"publish_time"`
}

// GetPrice pull one feed and validate it. The quote is fetched fresh
// for every call; nothing is memoized.
func (s *PriceService) GetPrice(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	url := fmt.Sprintf("%s/api/v1/price/%s", s.cfg.EndPoint, feedID)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var payload feedPayload
	if err := resthttp.ParseResponse(resp, &payload); err != nil {
		return nil, err
	}

	quote := &core.PriceQuote{
		FeedID:      payload.FeedID,
		AssetID:     payload.AssetID,
		Price:       payload.Price,
		Confidence:  payload.Confidence,
		Exponent:    payload.Exponent,
		PublishedAt: time.Unix(payload.PublishTime, 0),
	}

	if err := Validate(quote, time.Now(), s.cfg.MaxAge, s.cfg.MaxConfidenceRatio); err != nil {
		return nil, err
	}

	return quote, nil
}

// Validate checks a quote against the staleness bound and the
// confidence ratio at the moment of use.
func Validate(quote *core.PriceQuote, now time.Time, maxAge time.Duration, maxConfidenceRatio decimal.Decimal) error {
	if quote == nil || !quote.Price.IsPositive() || quote.PublishedAt.IsZero() {
		return core.ErrInvalidPrice
	}

	if now.Sub(quote.PublishedAt) > maxAge {
		return core.ErrStalePrice
	}

	if maxConfidenceRatio.IsPositive() && quote.Confidence.IsPositive() {
		ratio := quote.NormalizedConfidence().Div(quote.NormalizedPrice())
		if ratio.GreaterThan(maxConfidenceRatio) {
			return core.ErrLowConfidence
		}
	}

	return nil
}
