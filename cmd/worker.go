package cmd

import (
	"os/signal"
	"sync"
	"syscall"

	"lending/worker"
	"lending/worker/interest"
	"lending/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lending job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		bankStore := provideBankStore(database)
		priceStore := providePriceStore(database)

		bankService := provideBankService(bankStore)
		oracleService := providePriceOracleService()

		workers := []worker.Worker{
			priceoracle.New(database, propertyStore, bankStore, priceStore, oracleService, cfg.Oracle.PullInterval),
			interest.New(database, bankStore, bankService),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				_ = worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
