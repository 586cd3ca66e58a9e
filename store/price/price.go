package price

import (
	"context"
	"time"

	"lending/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})
		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Create(ctx context.Context, tx *db.DB, price *core.Price) error {
	return tx.Update().Create(price).Error
}

func (s *priceStore) FindLatest(ctx context.Context, assetID string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().
		Where("asset_id=?", assetID).
		Order("published_at DESC").
		First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Price{}, nil
		}
		return nil, err
	}

	return &price, nil
}

func (s *priceStore) FindByAssetTime(ctx context.Context, assetID string, publishedAt time.Time) (*core.Price, bool, error) {
	var price core.Price
	if err := s.db.View().
		Where("asset_id=? and published_at=?", assetID, publishedAt).
		First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Price{}, false, nil
		}
		return nil, false, err
	}

	return &price, true, nil
}
