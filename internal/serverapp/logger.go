package serverapp

import (
	"fmt"

	"github.com/ChinmayNoob/laughtale/internal/config"

	"go.uber.org/zap"
)

// NewLogger builds the process logger from the log section of the config.
func NewLogger(c config.Log) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
