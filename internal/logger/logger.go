// Package logger owns the process-wide zap logger that casafin's services,
// middleware, and entry points share.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the shared logger once for the given environment. "production"
// selects the JSON encoder with ISO-8601 timestamps; anything else gets the
// console encoder used for local runs and tests. Later calls are no-ops.
func Init(env string) {
	once.Do(func() {
		var cfg zap.Config
		if env == "production" {
			cfg = zap.NewProductionConfig()
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		} else {
			cfg = zap.NewDevelopmentConfig()
		}

		base, err := cfg.Build()
		if err != nil {
			// Never let logging setup take the process down.
			base = zap.NewNop()
		}
		sugar = base.Sugar()
	})
}

// Get returns the shared sugared logger, building the development one on
// first use if Init was never called.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; cmd/api defers it before exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
