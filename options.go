package objenc

import "go.uber.org/zap"

// NumberMode dictates how numeric leaves are materialized.
type NumberMode int

const (
	NumberNative     NumberMode = iota // int64 / uint64 / float64.
	NumberJSONNumber                   // json.Number text, exact for every width.
)

// Strictness configures scalar acceptance rules.
type Strictness struct {
	// AllowNonFinite lets NaN and ±Inf through as float64 leaves. When false
	// (the default) such values fail with a non_finite Issue, since most
	// loosely typed consumers cannot represent them.
	AllowNonFinite bool
}

// Options bundles encoding options. The zero value is ready to use.
type Options struct {
	Strictness Strictness
	NumberMode NumberMode
	// MaxDepth limits the path length of eagerly encoded child scopes; 0
	// means unlimited. Exceeding it fails with a too_deep Issue.
	MaxDepth int
	// Logger receives scope tracing at debug level and contract violations
	// at error level. Nil falls back to the package logger.
	Logger *zap.Logger
}

func normalizeOpt(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.Logger == nil {
		opt.Logger = Logger()
	}
	if opt.MaxDepth < 0 {
		opt.MaxDepth = 0
	}
	return opt
}
