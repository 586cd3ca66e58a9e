package rest

import (
	"context"
	"net/http"
	"strings"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/views"

	"github.com/shopspring/decimal"
)

func allBanksHandler(bankStore core.IBankStore, bankService core.IBankService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		banks, err := bankStore.All(ctx)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		bankViews := make([]*views.Bank, 0, len(banks))
		for _, b := range banks {
			bankViews = append(bankViews, getBankView(ctx, b, bankService))
		}

		render.JSON(w, bankViews)
	}
}

func bankHandler(bankStore core.IBankStore, bankService core.IBankService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Symbol string `json:"symbol" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		bank, err := bankStore.FindBySymbol(ctx, strings.ToUpper(params.Symbol))
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if bank.ID == 0 {
			render.OpError(w, core.ErrBankNotFound)
			return
		}

		render.JSON(w, getBankView(ctx, bank, bankService))
	}
}

func createBankHandler(cfg *core.Config, protocolService core.IProtocolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Address     string `json:"address" valid:"required"`
			AssetID     string `json:"asset_id" valid:"required"`
			Symbol      string `json:"symbol" valid:"required"`
			PriceFeedID string `json:"price_feed_id" valid:"required"`
			core.RiskParams
			core.RateParams
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if !cfg.IsAdmin(params.Address) {
			render.OpError(w, core.ErrOperationForbidden)
			return
		}

		bank, err := protocolService.InitBank(ctx,
			params.AssetID,
			strings.ToUpper(params.Symbol),
			params.PriceFeedID,
			params.RiskParams,
			params.RateParams,
		)
		if err != nil {
			render.OpError(w, err)
			return
		}

		render.JSON(w, bank)
	}
}

func getBankView(ctx context.Context, bank *core.Bank, bankService core.IBankService) *views.Bank {
	utilizationRate, err := bankService.CurUtilizationRate(ctx, bank)
	if err != nil {
		utilizationRate = decimal.Zero
	}

	supplyRate, err := bankService.CurSupplyRate(ctx, bank)
	if err != nil {
		supplyRate = decimal.Zero
	}

	borrowRate, err := bankService.CurBorrowRate(ctx, bank)
	if err != nil {
		borrowRate = decimal.Zero
	}

	return &views.Bank{
		Bank:                *bank,
		DepositExchangeRate: bank.DepositExchangeRate(),
		BorrowExchangeRate:  bank.BorrowExchangeRate(),
		UtilizationRate:     utilizationRate,
		SupplyAPY:           supplyRate,
		BorrowAPY:           borrowRate,
		AvailableLiquidity:  bank.AvailableLiquidity(),
	}
}
