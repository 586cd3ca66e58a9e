package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lending config
type Config struct {
	App    App          `json:"app"`
	DB     db.Config    `json:"db"`
	Oracle OracleConfig `json:"oracle"`
	Admins []string     `json:"admins"`
}

// IsAdmin check if the address is admin
func (c *Config) IsAdmin(address string) bool {
	if len(c.Admins) <= 0 {
		return false
	}

	for _, a := range c.Admins {
		if a == address {
			return true
		}
	}

	return false
}

// App app config
type App struct {
	Location string `json:"location"`
}

// OracleConfig price oracle config
type OracleConfig struct {
	EndPoint string `json:"end_point"`
	// MaxAge quotes older than this are rejected
	MaxAge time.Duration `json:"max_age"`
	// MaxConfidenceRatio confidence/price ratio above this is rejected
	MaxConfidenceRatio decimal.Decimal `json:"max_confidence_ratio"`
	// PullInterval price poller tick
	PullInterval time.Duration `json:"pull_interval"`
}
