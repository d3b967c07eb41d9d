// Package logger holds the process-wide zap loggers.
package logger

import (
	"go.uber.org/zap"
)

var (
	// L is the structured logger.
	L = zap.NewNop()
	// S is the sugared form of L.
	S = L.Sugar()
)

// NewSugaredDevLogger replaces L and S with a development logger (console encoding, debug level).
func NewSugaredDevLogger() error {
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	set(l)
	return nil
}

// NewSugaredProdLogger replaces L and S with a production logger (JSON encoding, info level).
func NewSugaredProdLogger() error {
	l, err := zap.NewProduction()
	if err != nil {
		return err
	}
	set(l)
	return nil
}

// SyncZap flushes buffered log entries.
func SyncZap() {
	_ = L.Sync()
}

func set(l *zap.Logger) {
	L = l
	S = l.Sugar()
}
