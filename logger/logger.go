package logger

import (
	"go.uber.org/zap"
)

// New builds the process-wide zap logger. Production gets the JSON encoder,
// anything else the human-readable development console.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
