// Package logging - zap setup for the CLI and the API server
// Logs always go to stderr or a file so stdout stays clean for estimates.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"infra-estimator/core/types"
)

var (
	// Logger is the process-wide logger. Initialize replaces it.
	Logger *zap.Logger

	level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

// Config selects level, encoding and destination
type Config struct {
	// debug, info, warn or error; anything else means info
	Level string `json:"level" split_words:"true"`

	// console or json
	Format string `json:"format" split_words:"true"`

	// stderr, stdout or a file path (appended to)
	Output string `json:"output" split_words:"true"`

	// Development adds stack traces on errors
	Development bool `json:"development" split_words:"true"`
}

// DefaultConfig keeps the CLI quiet unless asked; results go to stdout,
// logs to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
		Output: "stderr",
	}
}

// Initialize rebuilds the global logger from cfg
func Initialize(cfg Config) error {
	sink, err := open(cfg.Output)
	if err != nil {
		return err
	}

	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	level.SetLevel(lvl)

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	Logger = zap.New(zapcore.NewCore(encoder(cfg.Format), sink, level), opts...)
	return nil
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func open(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "", "stderr":
		return zapcore.AddSync(os.Stderr), nil
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	}
	f, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(f), nil
}

// SetLevel changes the level of the global logger in place
func SetLevel(name string) error {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

func Level() zapcore.Level {
	return level.Level()
}

// Sync flushes any buffered log entries
func Sync() {
	_ = Logger.Sync()
}

// Named returns a child logger for a component
func Named(component string) *zap.Logger {
	return Logger.Named(component)
}

// ConfigurationFields describes an estimation input
func ConfigurationFields(cfg types.Configuration) []zap.Field {
	return []zap.Field{
		zap.String("preset", string(cfg.Preset)),
		zap.Int("users", cfg.UserCount),
		zap.String("architecture", string(cfg.Architecture)),
		zap.String("quality", string(cfg.TeamQuality)),
		zap.Int("timeline_months", cfg.TimelineMonths),
		zap.Stringer("services", cfg.EnabledServices),
	}
}

// BreakdownFields summarizes an infrastructure estimate
func BreakdownFields(b *types.CostBreakdown) []zap.Field {
	return []zap.Field{
		zap.String("total_usd", b.Total.StringFixed(2)),
		zap.Int("items", len(b.Items)),
		zap.Strings("adjustments", b.Adjustments),
	}
}

// TeamFields summarizes a staffing plan
func TeamFields(t *types.TeamBreakdown) []zap.Field {
	return []zap.Field{
		zap.Int("team_size", t.Total),
		zap.String("monthly_payroll_usd", t.MonthlySalaryCost.StringFixed(2)),
		zap.String("adjusted_effort", t.Effort.Adjusted.String()),
	}
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func init() {
	_ = Initialize(DefaultConfig())
}
