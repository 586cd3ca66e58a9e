package interest

import (
	"context"
	"time"

	"lending/core"
	"lending/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Worker periodically accrues interest on every bank so idle banks do
// not drift too far between operations. Operations still accrue on
// their own; accrual is idempotent over elapsed time.
type Worker struct {
	worker.TickWorker
	db          *db.DB
	bankStore   core.IBankStore
	bankService core.IBankService
}

// New new interest worker
func New(db *db.DB, bankStore core.IBankStore, bankService core.IBankService) *Worker {
	return &Worker{
		TickWorker:  worker.TickWorker{Delay: time.Minute},
		db:          db,
		bankStore:   bankStore,
		bankService: bankService,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	banks, err := w.bankStore.All(ctx)
	if err != nil {
		log.Errorln("fetch all banks error:", err)
		return err
	}

	now := time.Now()
	for _, bank := range banks {
		bank := bank
		if err := w.db.Tx(func(tx *db.DB) error {
			return w.bankService.AccrueInterest(ctx, tx, bank, now)
		}); err != nil {
			log.WithField("symbol", bank.Symbol).Errorln("accrue interest error:", err)
			return err
		}
	}

	return nil
}
