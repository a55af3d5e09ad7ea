package goasn1

import (
	"errors"
	"log/slog"

	"github.com/golangsnmp/goasn1/internal/parser"
	"github.com/golangsnmp/goasn1/internal/resolver"
	"github.com/golangsnmp/goasn1/internal/types"
)

// ErrNoSources is returned when Load is called with no sources.
var ErrNoSources = errors.New("no ASN.1 sources provided")

// ErrModuleNotFound is returned when a requested module is in no source.
var ErrModuleNotFound = errors.New("module not found")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, definitions, fields).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// Option configures Parse, Resolve, Load, LoadModules and Generate.
type Option func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

func applyOptions(opts []Option) loadConfig {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) { c.logger = logger }
}

// Parse parses ASN.1 source text holding one or more modules. Parsing
// stops at the first syntax error, returned as a *SyntaxError.
func Parse(src []byte, opts ...Option) ([]*UnresolvedModule, error) {
	cfg := applyOptions(opts)
	return parser.New(types.Component(cfg.logger, "parser")).Parse(src)
}

// Resolve replaces every symbolic size, range, constant and type
// reference of mods by its concrete value. It returns one module per
// distinct module name, holding the definitions that resolved, and the
// failures of the others joined into one error.
//
// Example:
//
//	mods, err := goasn1.Parse(src)
//	if err != nil {
//	    return err
//	}
//	resolved, err := goasn1.Resolve(mods, goasn1.WithLogger(slog.Default()))
func Resolve(mods []*UnresolvedModule, opts ...Option) ([]*Module, error) {
	cfg := applyOptions(opts)
	return resolver.Resolve(mods, types.Component(cfg.logger, "resolver"))
}
