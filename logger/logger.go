package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON zap logger tagged with the service name.
// Debug mode keeps JSON output but lowers the level to debug.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.InitialFields = map[string]interface{}{"service": "f1globe"}
	return cfg.Build()
}

// TableCounts turns per-table row counts into log fields.
func TableCounts(counts map[string]int) []zap.Field {
	fields := make([]zap.Field, 0, len(counts))
	for name, n := range counts {
		fields = append(fields, zap.Int(name, n))
	}
	return fields
}
