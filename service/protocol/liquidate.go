package protocol

import (
	"context"
	"time"

	"lending/core"
	"lending/internal/lending"
	"lending/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
)

// Liquidate repays part of an unhealthy borrower's debt with the
// liquidator's funds and moves discounted collateral shares over in
// exchange. Health is measured with maintenance weighting using quotes
// pulled inside the transaction.
func (s *service) Liquidate(ctx context.Context, liquidatorID, borrowerID, collateralAssetID, borrowedAssetID string) (*core.LiquidationOutcome, error) {
	log := logger.FromContext(ctx).WithField("operation", "liquidate")

	if liquidatorID == borrowerID || collateralAssetID == borrowedAssetID {
		return nil, core.ErrInvalidArgument
	}

	if err := s.mustGetUser(ctx, liquidatorID); err != nil {
		return nil, err
	}
	if err := s.mustGetUser(ctx, borrowerID); err != nil {
		return nil, err
	}

	now := time.Now()

	var outcome *core.LiquidationOutcome
	err := s.db.Tx(func(tx *db.DB) error {
		banks, positions, err := s.loadPortfolio(ctx, borrowerID, now)
		if err != nil {
			return err
		}

		collateralBank, ok := banks[collateralAssetID]
		if !ok {
			return core.ErrBankNotFound
		}
		borrowedBank, ok := banks[borrowedAssetID]
		if !ok {
			return core.ErrBankNotFound
		}

		prices, err := s.fetchPrices(ctx, banks, positions, collateralAssetID, borrowedAssetID)
		if err != nil {
			return err
		}

		health, err := lending.HealthFactor(positions, banks, prices, lending.WeightMaintenance)
		if err != nil {
			return err
		}

		borrowerCollateral := pickPosition(positions, borrowerID, collateralAssetID)
		borrowerDebt := pickPosition(positions, borrowerID, borrowedAssetID)

		liquidatorCollateral, err := s.positionStore.Find(ctx, liquidatorID, collateralAssetID)
		if err != nil {
			return err
		}

		outcome, err = lending.Liquidate(
			collateralBank,
			borrowedBank,
			borrowerCollateral,
			borrowerDebt,
			liquidatorCollateral,
			health,
			prices[collateralAssetID],
			prices[borrowedAssetID],
		)
		if err != nil {
			return err
		}

		if err := lending.CheckSolvency(collateralBank); err != nil {
			return err
		}
		if err := lending.CheckSolvency(borrowedBank); err != nil {
			return err
		}

		after, err := lending.HealthFactor(positions, banks, prices, lending.WeightMaintenance)
		if err != nil {
			return err
		}

		outcome.Borrower = borrowerID
		outcome.Liquidator = liquidatorID
		outcome.CollateralAssetID = collateralAssetID
		outcome.BorrowedAssetID = borrowedAssetID
		outcome.HealthAfter = after.Factor

		for _, position := range []*core.Position{borrowerCollateral, borrowerDebt, liquidatorCollateral} {
			if err := s.savePosition(ctx, tx, position); err != nil {
				return err
			}
		}

		if err := s.bankStore.Update(ctx, tx, collateralBank); err != nil {
			return err
		}
		if err := s.bankStore.Update(ctx, tx, borrowedBank); err != nil {
			return err
		}

		traceID := id.GenTraceID()

		// 清算人代还的借款
		if err := s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:   foxuuid.Modify(traceID, "liquidate-repay"),
			UserID:    liquidatorID,
			AssetID:   borrowedAssetID,
			Amount:    outcome.RepayAmount,
			Direction: core.TransferIn,
			Source:    core.TransferSourceLiquidateRepay,
			Memo:      borrowerID,
		}); err != nil {
			return err
		}

		// 抵押品奖励以份额划转记账
		return s.transferStore.Create(ctx, tx, &core.Transfer{
			TraceID:   foxuuid.Modify(traceID, "liquidate-refund"),
			UserID:    liquidatorID,
			AssetID:   collateralAssetID,
			Amount:    outcome.SeizedAmount,
			Direction: core.TransferOut,
			Source:    core.TransferSourceLiquidateRefund,
			Memo:      borrowerID,
		})
	})
	if err != nil {
		return nil, err
	}

	log.WithField("borrower", borrowerID).
		WithField("repay", outcome.RepayAmount).
		WithField("seized", outcome.SeizedAmount).
		Infoln("position liquidated")

	return outcome, nil
}
