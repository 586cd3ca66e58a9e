package oracle

import (
	"testing"
	"time"

	"lending/core"
	"lending/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQuote(publishedAt time.Time) *core.PriceQuote {
	return &core.PriceQuote{
		FeedID:      "feed-btc",
		Price:       number.Decimal("6500000000000"),
		Confidence:  number.Decimal("1500000000"),
		Exponent:    -8,
		PublishedAt: publishedAt,
	}
}

func TestValidate(t *testing.T) {
	now := time.Unix(1700000000, 0)
	maxAge := time.Minute
	maxRatio := number.Decimal("0.01")

	quote := newTestQuote(now.Add(-10 * time.Second))
	require.NoError(t, Validate(quote, now, maxAge, maxRatio))
	assert.Equal(t, "65000", quote.NormalizedPrice().String())
}

func TestValidateStale(t *testing.T) {
	now := time.Unix(1700000000, 0)

	quote := newTestQuote(now.Add(-61 * time.Second))
	err := Validate(quote, now, time.Minute, number.Decimal("0.01"))
	assert.Equal(t, core.ErrStalePrice, err)

	// exactly at the bound still passes
	quote = newTestQuote(now.Add(-60 * time.Second))
	assert.NoError(t, Validate(quote, now, time.Minute, number.Decimal("0.01")))
}

func TestValidateLowConfidence(t *testing.T) {
	now := time.Unix(1700000000, 0)

	quote := newTestQuote(now.Add(-time.Second))
	quote.Confidence = number.Decimal("66000000000")

	// conf/price above 1% is rejected
	err := Validate(quote, now, time.Minute, number.Decimal("0.01"))
	assert.Equal(t, core.ErrLowConfidence, err)
}

func TestValidateInvalidPrice(t *testing.T) {
	now := time.Unix(1700000000, 0)

	quote := newTestQuote(now)
	quote.Price = number.Decimal("0")
	assert.Equal(t, core.ErrInvalidPrice, Validate(quote, now, time.Minute, number.Decimal("0.01")))

	quote = newTestQuote(time.Time{})
	assert.Equal(t, core.ErrInvalidPrice, Validate(quote, now, time.Minute, number.Decimal("0.01")))

	assert.Equal(t, core.ErrInvalidPrice, Validate(nil, now, time.Minute, number.Decimal("0.01")))
}
