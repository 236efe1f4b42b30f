package capline

import "log/slog"

// Option configures a LineGenerator.
type Option func(*generatorConfig)

type generatorConfig struct {
	maxWidth int
	oracle   WidthOracle
	filter   ProfanityFilter
	logger   *slog.Logger
}

// WithMaxWidth sets the display width at which the current line wraps,
// in the width oracle's units.
func WithMaxWidth(width int) Option {
	return func(cfg *generatorConfig) {
		if width > 0 {
			cfg.maxWidth = width
		}
	}
}

// WithWidthOracle sets the text measurement facility.
func WithWidthOracle(oracle WidthOracle) Option {
	return func(cfg *generatorConfig) {
		cfg.oracle = oracle
	}
}

// WithFilter sets the word filter collaborator.
func WithFilter(filter ProfanityFilter) Option {
	return func(cfg *generatorConfig) {
		cfg.filter = filter
	}
}

// WithLogger sets the logger for recoverable render anomalies.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *generatorConfig) {
		cfg.logger = logger
	}
}
