package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds a zap logger for the given environment. Production mode emits
// JSON; anything else gets the human-readable development encoder.
func New(appEnv string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(appEnv) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
