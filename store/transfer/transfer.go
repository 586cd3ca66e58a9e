package transfer

import (
	"context"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.ITransferStore {
	return &transferStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transferStore) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return tx.Update().Create(transfer).Error
}

func (s *transferStore) FindByTrace(ctx context.Context, traceID string) (*core.Transfer, error) {
	var transfer core.Transfer
	if err := s.db.View().Where("trace_id=?", traceID).First(&transfer).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Transfer{}, nil
		}
		return nil, err
	}

	return &transfer, nil
}

func (s *transferStore) Top(ctx context.Context, limit int) ([]*core.Transfer, error) {
	var transfers []*core.Transfer
	if err := s.db.View().Limit(limit).Order("id DESC").Find(&transfers).Error; err != nil {
		return nil, err
	}

	return transfers, nil
}
