package views

import (
	"lending/core"

	"github.com/shopspring/decimal"
)

// Position position view with share balances converted to amounts at
// the bank's current exchange rates
type Position struct {
	core.Position
	Symbol          string          `json:"symbol"`
	DepositedAmount decimal.Decimal `json:"deposited_amount"`
	BorrowedAmount  decimal.Decimal `json:"borrowed_amount"`
}
