package bank

import (
	"context"
	"fmt"
	"time"

	"lending/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a bank store with a read cache for the view endpoints.
// Writes pass through and refresh the cached entry.
func Cache(store core.IBankStore, exp time.Duration) core.IBankStore {
	return &cacheBankStore{
		IBankStore: store,
		cache:      gcache.New(256).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheBankStore struct {
	core.IBankStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheBankStore) bankKey(assetID string) string {
	return fmt.Sprintf("bank:%s", assetID)
}

func (s *cacheBankStore) cacheBank(bank *core.Bank) {
	_ = s.cache.Set(s.bankKey(bank.AssetID), bank)
}

func (s *cacheBankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	if v, err := s.cache.Get(s.bankKey(assetID)); err == nil {
		if bank, ok := v.(*core.Bank); ok {
			return bank, nil
		}
	}

	v, err, _ := s.sf.Do(s.bankKey(assetID), func() (interface{}, error) {
		bank, err := s.IBankStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}

		if bank.ID > 0 {
			s.cacheBank(bank)
		}

		return bank, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Bank), nil
}

func (s *cacheBankStore) Update(ctx context.Context, tx *db.DB, bank *core.Bank) error {
	if err := s.IBankStore.Update(ctx, tx, bank); err != nil {
		return err
	}

	s.cache.Remove(s.bankKey(bank.AssetID))
	return nil
}
