package logger

import (
	"go.uber.org/zap"
)

// NOOPLogger discards everything. Used as the default until a real logger is injected.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a human readable logger for local runs and a JSON logger everywhere else.
func New(appEnv string) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if appEnv == "" || appEnv == "local" {
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
