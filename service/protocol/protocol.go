package protocol

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db            *db.DB
	userStore     core.IUserStore
	bankStore     core.IBankStore
	positionStore core.IPositionStore
	transferStore core.ITransferStore
	oracleService core.IPriceOracleService
}

// New new protocol service
func New(
	db *db.DB,
	userStore core.IUserStore,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	transferStore core.ITransferStore,
	oracleService core.IPriceOracleService,
) core.IProtocolService {
	return &service{
		db:            db,
		userStore:     userStore,
		bankStore:     bankStore,
		positionStore: positionStore,
		transferStore: transferStore,
		oracleService: oracleService,
	}
}

func (s *service) InitUser(ctx context.Context, address string) (*core.User, error) {
	if address == "" {
		return nil, core.ErrInvalidArgument
	}

	existing, err := s.userStore.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if existing.ID > 0 {
		return nil, core.ErrUserExists
	}

	user := &core.User{Address: address}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) InitBank(ctx context.Context, assetID, symbol, feedID string, risk core.RiskParams, rates core.RateParams) (*core.Bank, error) {
	if assetID == "" || symbol == "" || feedID == "" {
		return nil, core.ErrInvalidArgument
	}

	if err := lending.ValidateRiskParams(risk); err != nil {
		return nil, err
	}

	existing, err := s.bankStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if existing.ID > 0 {
		return nil, core.ErrBankExists
	}

	bank := &core.Bank{
		AssetID:              assetID,
		Symbol:               symbol,
		PriceFeedID:          feedID,
		MaxLTV:               risk.MaxLTV,
		LiquidationThreshold: risk.LiquidationThreshold,
		LiquidationBonus:     risk.LiquidationBonus,
		CloseFactor:          risk.CloseFactor,
		ReserveFactor:        risk.ReserveFactor,
		BaseRate:             rates.BaseRate,
		Multiplier:           rates.Multiplier,
		JumpMultiplier:       rates.JumpMultiplier,
		Kink:                 rates.Kink,
		LastAccruedAt:        time.Now(),
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		return s.bankStore.Create(ctx, tx, bank)
	}); err != nil {
		return nil, err
	}

	return bank, nil
}

func (s *service) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	log := logger.FromContext(ctx).WithField("operation", "deposit")

	if err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	bank, err := s.mustGetBank(ctx, assetID)
	if err != nil {
		return err
	}

	now := time.Now()

	return s.db.Tx(func(tx *db.DB) error {
		lending.AccrueInterest(bank, now)

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		if _, err := lending.Deposit(bank, position, amount); err != nil {
			return err
		}

		if err := lending.CheckSolvency(bank); err != nil {
			log.WithField("asset", assetID).Errorln("pool insolvent after deposit")
			return err
		}

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}

		if err := s.bankStore.Update(ctx, tx, bank); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:   id.GenTraceID(),
			UserID:    userID,
			AssetID:   assetID,
			Amount:    amount,
			Direction: core.TransferIn,
			Source:    core.TransferSourceDeposit,
		})
	})
}

func (s *service) Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	now := time.Now()

	return s.db.Tx(func(tx *db.DB) error {
		banks, positions, err := s.loadPortfolio(ctx, userID, now)
		if err != nil {
			return err
		}

		bank, ok := banks[assetID]
		if !ok {
			return core.ErrBankNotFound
		}

		position := pickPosition(positions, userID, assetID)

		// simulate the post-withdrawal health with max-ltv weighting
		// before touching anything
		if hasBorrows(positions) {
			prices, err := s.fetchPrices(ctx, banks, positions, assetID)
			if err != nil {
				return err
			}

			simulated := lending.ClonePositions(positions)
			sim := pickPosition(simulated, userID, assetID)
			if _, err := lending.Withdraw(cloneBank(bank), sim, amount); err != nil {
				return err
			}

			health, err := lending.HealthFactor(simulated, banks, prices, lending.WeightInitial)
			if err != nil {
				return err
			}

			if !health.Healthy() {
				return core.ErrInsufficientCollateral
			}
		}

		if _, err := lending.Withdraw(bank, position, amount); err != nil {
			return err
		}

		if err := lending.CheckSolvency(bank); err != nil {
			return err
		}

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}

		if err := s.bankStore.Update(ctx, tx, bank); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:   id.GenTraceID(),
			UserID:    userID,
			AssetID:   assetID,
			Amount:    amount,
			Direction: core.TransferOut,
			Source:    core.TransferSourceWithdraw,
		})
	})
}

func (s *service) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	now := time.Now()

	return s.db.Tx(func(tx *db.DB) error {
		banks, positions, err := s.loadPortfolio(ctx, userID, now)
		if err != nil {
			return err
		}

		bank, ok := banks[assetID]
		if !ok {
			return core.ErrBankNotFound
		}

		position := pickPosition(positions, userID, assetID)

		prices, err := s.fetchPrices(ctx, banks, positions, assetID)
		if err != nil {
			return err
		}

		// simulate the post-borrow health with max-ltv weighting
		simulated := lending.ClonePositions(positions)
		sim := pickPosition(simulated, userID, assetID)
		if _, err := lending.Borrow(cloneBank(bank), sim, amount); err != nil {
			return err
		}

		health, err := lending.HealthFactor(simulated, banks, prices, lending.WeightInitial)
		if err != nil {
			return err
		}

		if !health.Healthy() {
			return core.ErrInsufficientCollateral
		}

		if _, err := lending.Borrow(bank, position, amount); err != nil {
			return err
		}

		if err := lending.CheckSolvency(bank); err != nil {
			return err
		}

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}

		if err := s.bankStore.Update(ctx, tx, bank); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:   id.GenTraceID(),
			UserID:    userID,
			AssetID:   assetID,
			Amount:    amount,
			Direction: core.TransferOut,
			Source:    core.TransferSourceBorrow,
		})
	})
}

func (s *service) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) error {
	if err := s.mustGetUser(ctx, userID); err != nil {
		return err
	}

	bank, err := s.mustGetBank(ctx, assetID)
	if err != nil {
		return err
	}

	now := time.Now()

	return s.db.Tx(func(tx *db.DB) error {
		lending.AccrueInterest(bank, now)

		position, err := s.positionStore.Find(ctx, userID, assetID)
		if err != nil {
			return err
		}

		if _, err := lending.Repay(bank, position, amount); err != nil {
			return err
		}

		if err := lending.CheckSolvency(bank); err != nil {
			return err
		}

		if err := s.savePosition(ctx, tx, position); err != nil {
			return err
		}

		if err := s.bankStore.Update(ctx, tx, bank); err != nil {
			return err
		}

		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:   id.GenTraceID(),
			UserID:    userID,
			AssetID:   assetID,
			Amount:    amount,
			Direction: core.TransferIn,
			Source:    core.TransferSourceRepay,
		})
	})
}

func (s *service) AccountHealth(ctx context.Context, userID string) (*core.Health, error) {
	if err := s.mustGetUser(ctx, userID); err != nil {
		return nil, err
	}

	banks, positions, err := s.loadPortfolio(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	prices, err := s.fetchPrices(ctx, banks, positions)
	if err != nil {
		return nil, err
	}

	return lending.HealthFactor(positions, banks, prices, lending.WeightMaintenance)
}

func (s *service) mustGetUser(ctx context.Context, address string) error {
	user, err := s.userStore.Find(ctx, address)
	if err != nil {
		return err
	}

	if user.ID == 0 {
		return core.ErrUserNotFound
	}

	return nil
}

func (s *service) mustGetBank(ctx context.Context, assetID string) (*core.Bank, error) {
	bank, err := s.bankStore.Find(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if bank.ID == 0 {
		return nil, core.ErrBankNotFound
	}

	return bank, nil
}

// loadPortfolio reads every bank plus the user's positions and brings
// all bank totals up to date in memory. Banks the operation does not
// persist keep their accrued state local to this transaction.
func (s *service) loadPortfolio(ctx context.Context, userID string, now time.Time) (map[string]*core.Bank, []*core.Position, error) {
	banks, err := s.bankStore.AllAsMap(ctx)
	if err != nil {
		return nil, nil, err
	}

	for _, bank := range banks {
		lending.AccrueInterest(bank, now)
	}

	positions, err := s.positionStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return banks, positions, nil
}

// fetchPrices pulls a fresh validated quote per asset the portfolio
// touches. Quotes are fetched at the moment of use, never reused.
func (s *service) fetchPrices(ctx context.Context, banks map[string]*core.Bank, positions []*core.Position, extra ...string) (map[string]decimal.Decimal, error) {
	need := make(map[string]bool)
	for _, p := range positions {
		if p.DepositShares.IsPositive() || p.BorrowShares.IsPositive() {
			need[p.AssetID] = true
		}
	}
	for _, assetID := range extra {
		need[assetID] = true
	}

	prices := make(map[string]decimal.Decimal, len(need))
	for assetID := range need {
		bank, ok := banks[assetID]
		if !ok {
			return nil, core.ErrBankNotFound
		}

		quote, err := s.oracleService.GetPrice(ctx, bank.PriceFeedID)
		if err != nil {
			return nil, err
		}

		prices[assetID] = quote.NormalizedPrice()
	}

	return prices, nil
}

func (s *service) savePosition(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return s.positionStore.Create(ctx, tx, position)
	}

	return s.positionStore.Update(ctx, tx, position)
}

func pickPosition(positions []*core.Position, userID, assetID string) *core.Position {
	for _, p := range positions {
		if p.AssetID == assetID {
			return p
		}
	}

	return &core.Position{UserID: userID, AssetID: assetID}
}

func hasBorrows(positions []*core.Position) bool {
	for _, p := range positions {
		if p.BorrowShares.IsPositive() {
			return true
		}
	}

	return false
}

func cloneBank(bank *core.Bank) *core.Bank {
	dup := *bank
	return &dup
}
