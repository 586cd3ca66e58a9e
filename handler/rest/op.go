package rest

import (
	"context"
	"net/http"
	"strings"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"

	"github.com/shopspring/decimal"
)

type opFunc func(ctx context.Context, userID, assetID string, amount decimal.Decimal) error

func initUserHandler(protocolService core.IProtocolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Address string `json:"address" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		user, err := protocolService.InitUser(r.Context(), params.Address)
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, user)
	}
}

// opHandler serves deposit, withdraw, borrow and repay, which all
// share the same request shape.
func opHandler(bankStore core.IBankStore, op opFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address string          `json:"address" valid:"required"`
			Symbol  string          `json:"symbol" valid:"required"`
			Amount  decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		bank, err := resolveBank(ctx, bankStore, params.Symbol)
		if err != nil {
			render.OpError(w, err)
			return
		}

		if err := op(ctx, params.Address, bank.AssetID, params.Amount); err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, render.H{"status": "ok"})
	}
}

func liquidateHandler(bankStore core.IBankStore, protocolService core.IProtocolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address          string `json:"address" valid:"required"`
			Borrower         string `json:"borrower" valid:"required"`
			CollateralSymbol string `json:"collateral_symbol" valid:"required"`
			BorrowedSymbol   string `json:"borrowed_symbol" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		collateralBank, err := resolveBank(ctx, bankStore, params.CollateralSymbol)
		if err != nil {
			render.OpError(w, err)
			return
		}

		borrowedBank, err := resolveBank(ctx, bankStore, params.BorrowedSymbol)
		if err != nil {
			render.OpError(w, err)
			return
		}

		outcome, err := protocolService.Liquidate(ctx, params.Address, params.Borrower, collateralBank.AssetID, borrowedBank.AssetID)
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, outcome)
	}
}

func resolveBank(ctx context.Context, bankStore core.IBankStore, symbol string) (*core.Bank, error) {
	bank, err := bankStore.FindBySymbol(ctx, strings.ToUpper(symbol))
	if err != nil {
		return nil, err
	}

	if bank.ID == 0 {
		return nil, core.ErrBankNotFound
	}

	return bank, nil
}
