package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	cfg *core.Config,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	transferStore core.ITransferStore,
	bankService core.IBankService,
	protocolService core.IProtocolService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/banks", allBanksHandler(bankStore, bankService))
	router.Get("/banks/{symbol}", bankHandler(bankStore, bankService))
	router.Post("/banks", createBankHandler(cfg, protocolService))

	router.Get("/positions/{address}", positionsHandler(bankStore, positionStore))
	router.Get("/positions/{address}/health", healthHandler(protocolService))

	router.Get("/transfers", transfersHandler(transferStore))

	router.Post("/users", initUserHandler(protocolService))
	router.Post("/ops/deposit", opHandler(bankStore, protocolService.Deposit))
	router.Post("/ops/withdraw", opHandler(bankStore, protocolService.Withdraw))
	router.Post("/ops/borrow", opHandler(bankStore, protocolService.Borrow))
	router.Post("/ops/repay", opHandler(bankStore, protocolService.Repay))
	router.Post("/ops/liquidate", liquidateHandler(bankStore, protocolService))

	return router
}
