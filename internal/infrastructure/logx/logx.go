package logx

import (
	"strings"
	"sync"

	"stock-quote-proxy/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	logger *zap.Logger
)

func build() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if appCfg, err := config.Load(); err == nil && appCfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(appCfg.LogLevel)))
	}

	l, err := zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
	logger = l
}

// L returns the package-level logger, built on first use so LOG_LEVEL from a
// .env file loaded at startup is honored.
func L() *zap.Logger {
	once.Do(build)
	return logger
}
