package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"
)

func positionsHandler(bankStore core.IBankStore, positionStore core.IPositionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		positions, err := positionStore.FindByUser(ctx, params.Address)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		banks, err := bankStore.AllAsMap(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		positionViews := make([]*views.Position, 0, len(positions))
		for _, p := range positions {
			bank, ok := banks[p.AssetID]
			if !ok {
				continue
			}

			positionViews = append(positionViews, &views.Position{
				Position:        *p,
				Symbol:          bank.Symbol,
				DepositedAmount: p.DepositedAmount(bank),
				BorrowedAmount:  p.BorrowedAmount(bank),
			})
		}

		render.JSON(w, positionViews)
	}
}

func healthHandler(protocolService core.IProtocolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string `json:"address" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		health, err := protocolService.AccountHealth(ctx, params.Address)
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, health)
	}
}

func transfersHandler(transferStore core.ITransferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		transfers, err := transferStore.Top(r.Context(), 100)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transfers)
	}
}
