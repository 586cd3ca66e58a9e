package priceoracle

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const checkpointKey = "price_oracle_checkpoint"

// Worker price poller. Persists one price row per asset and publish
// time for audit and views. Risk checks never read these rows.
type Worker struct {
	worker.TickWorker
	db                 *db.DB
	propertyStore      property.Store
	bankStore          core.IBankStore
	priceStore         core.IPriceStore
	priceOracleService core.IPriceOracleService
}

// New new price oracle worker
func New(
	db *db.DB,
	propertyStore property.Store,
	bankStore core.IBankStore,
	priceStore core.IPriceStore,
	priceOracleService core.IPriceOracleService,
	interval time.Duration,
) *Worker {
	return &Worker{
		TickWorker:         worker.TickWorker{Delay: interval},
		db:                 db,
		propertyStore:      propertyStore,
		bankStore:          bankStore,
		priceStore:         priceStore,
		priceOracleService: priceOracleService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")

	banks, err := w.bankStore.All(ctx)
	if err != nil {
		log.Errorln("fetch all banks error:", err)
		return err
	}

	if len(banks) == 0 {
		return nil
	}

	wg := sync.WaitGroup{}
	for _, b := range banks {
		wg.Add(1)
		go func(bank *core.Bank) {
			defer wg.Done()

			if err := w.pollBank(ctx, bank); err != nil {
				log.WithField("symbol", bank.Symbol).Errorln("poll price error:", err)
			}
		}(b)
	}
	wg.Wait()

	return w.propertyStore.Save(ctx, checkpointKey, time.Now().Unix())
}

func (w *Worker) pollBank(ctx context.Context, bank *core.Bank) error {
	quote, err := w.priceOracleService.GetPrice(ctx, bank.PriceFeedID)
	if err != nil {
		return err
	}

	if quote.NormalizedPrice().LessThanOrEqual(decimal.Zero) {
		return core.ErrInvalidPrice
	}

	// one row per publish time
	if _, found, err := w.priceStore.FindByAssetTime(ctx, bank.AssetID, quote.PublishedAt); err != nil {
		return err
	} else if found {
		return nil
	}

	content, err := json.Marshal(quote)
	if err != nil {
		return err
	}

	return w.db.Tx(func(tx *db.DB) error {
		return w.priceStore.Create(ctx, tx, &core.Price{
			AssetID:     bank.AssetID,
			Price:       quote.NormalizedPrice(),
			Content:     types.JSONText(content),
			PublishedAt: quote.PublishedAt,
		})
	})
}
