package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// validation errors: caller mistakes, never retried automatically

	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100100
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrBankNotFound no bank for asset
	ErrBankNotFound ErrorCode = 100102
	// ErrBankExists bank already initialized for asset
	ErrBankExists ErrorCode = 100103
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100104
	// ErrUserNotFound no user
	ErrUserNotFound ErrorCode = 100105
	// ErrUserExists user already initialized
	ErrUserExists ErrorCode = 100106
	// ErrInvalidRiskParams bad bank risk parameters
	ErrInvalidRiskParams ErrorCode = 100107
	// ErrOverRepay repay amount exceeds outstanding debt
	ErrOverRepay ErrorCode = 100108

	// oracle errors: operation aborts, caller may retry with a fresh quote

	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100200
	// ErrStalePrice quote older than the staleness bound
	ErrStalePrice ErrorCode = 100201
	// ErrLowConfidence quote confidence interval too wide
	ErrLowConfidence ErrorCode = 100202

	// risk errors: mutating operation rejected, state unchanged

	// ErrInsufficientBalance insufficient deposited balance
	ErrInsufficientBalance ErrorCode = 100300
	// ErrInsufficientCollateral insufficient collateral
	ErrInsufficientCollateral ErrorCode = 100301
	// ErrInsufficientLiquidity insufficient pool liquidity
	ErrInsufficientLiquidity ErrorCode = 100302
	// ErrPositionHealthy liquidation attempted on a healthy position
	ErrPositionHealthy ErrorCode = 100303

	// solvency errors: fatal, unreachable if risk checks are correct

	// ErrInsolventPool pool solvency invariant broken
	ErrInsolventPool ErrorCode = 100400
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// IsValidationError reports whether the code is a caller error.
func (e ErrorCode) IsValidationError() bool {
	return e >= 100100 && e < 100200
}

// IsOracleError reports whether the code is a price oracle failure.
func (e ErrorCode) IsOracleError() bool {
	return e >= 100200 && e < 100300
}

// IsRiskError reports whether the code is a risk rejection.
func (e ErrorCode) IsRiskError() bool {
	return e >= 100300 && e < 100400
}

// IsSolvencyError reports whether the code is a fatal solvency breach.
func (e ErrorCode) IsSolvencyError() bool {
	return e >= 100400 && e < 100500
}
