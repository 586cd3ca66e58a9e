package cmd

import (
	"lending/core"
	bankservice "lending/service/bank"
	"lending/service/oracle"
	"lending/service/protocol"

	"github.com/fox-one/pkg/store/db"
)

func provideBankService(bankStore core.IBankStore) core.IBankService {
	return bankservice.New(bankStore)
}

func providePriceOracleService() core.IPriceOracleService {
	return oracle.New(oracle.Config{
		EndPoint:           cfg.Oracle.EndPoint,
		MaxAge:             cfg.Oracle.MaxAge,
		MaxConfidenceRatio: cfg.Oracle.MaxConfidenceRatio,
	})
}

func provideProtocolService(
	db *db.DB,
	userStore core.IUserStore,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	transferStore core.ITransferStore,
	oracleService core.IPriceOracleService,
) core.IProtocolService {
	return protocol.New(db, userStore, bankStore, positionStore, transferStore, oracleService)
}
