package views

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// Bank bank view with derived rates
type Bank struct {
	core.Bank
	DepositExchangeRate decimal.Decimal `json:"deposit_exchange_rate"`
	BorrowExchangeRate  decimal.Decimal `json:"borrow_exchange_rate"`
	UtilizationRate     decimal.Decimal `json:"utilization_rate"`
	SupplyAPY           decimal.Decimal `json:"supply_apy"`
	BorrowAPY           decimal.Decimal `json:"borrow_apy"`
	AvailableLiquidity  decimal.Decimal `json:"available_liquidity"`
}
