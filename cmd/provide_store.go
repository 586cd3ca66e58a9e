package cmd

import (
	"time"

	"lending/core"
	"lending/store/bank"
	"lending/store/position"
	"lending/store/price"
	"lending/store/transfer"
	"lending/store/user"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideUserStore(db *db.DB) core.IUserStore {
	return user.New(db)
}

func provideBankStore(db *db.DB) core.IBankStore {
	return bank.New(db)
}

// provideCachedBankStore read-mostly bank store for the api server
func provideCachedBankStore(db *db.DB) core.IBankStore {
	return bank.Cache(bank.New(db), 5*time.Second)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func providePriceStore(db *db.DB) core.IPriceStore {
	return price.New(db)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}
