// internal/api/biodata/config.go
package biodata

import (
	"time"

	"biodata-service/internal/common/config"
)

type Config struct {
	// Timeout bounds each store call. It runs detached from the request.
	Timeout      time.Duration
	MaxBodyBytes int64
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:      config.GetDuration(cfg.Store.OperationTimeout),
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}
}
