package core

import (
	"context"
	"time"
)

// User user model. Address is an opaque host-ledger identifier,
// never interpreted by the core.
type User struct {
	ID        int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Address   string    `sql:"size:36;unique_index:idx_users_address" json:"address,omitempty"`
	Version   int64     `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// IUserStore user store interface
type IUserStore interface {
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, address string) (*User, error)
	All(ctx context.Context) ([]*User, error)
}
