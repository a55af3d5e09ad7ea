package goasn1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/golangsnmp/goasn1/internal/parser"
	"github.com/golangsnmp/goasn1/internal/resolver"
	"github.com/golangsnmp/goasn1/internal/types"
)

// Load parses every file of source in parallel and resolves the modules
// they hold. Use Multi() to combine multiple sources. Files that fail to
// parse are reported in the returned error; the modules of the others are
// still resolved and returned.
//
// Example:
//
//	mods, err := goasn1.Load(ctx,
//	    goasn1.MustDirTree("./asn1"),
//	    goasn1.WithLogger(slog.Default()),
//	)
func Load(ctx context.Context, source Source, opts ...Option) ([]*Module, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := applyOptions(opts)
	mods, loadErr := loadAllModules(ctx, source, cfg)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	out, err := Resolve(mods, opts...)
	return out, errors.Join(loadErr, err)
}

// LoadModules loads specific modules by name, along with the modules
// they import. Modules are first looked up by file name; a name no file
// is named after triggers one parse of the whole source.
//
// Example:
//
//	mods, err := goasn1.LoadModules(ctx,
//	    []string{"Sample-Module"},
//	    goasn1.MustDir("./asn1"),
//	)
func LoadModules(ctx context.Context, names []string, source Source, opts ...Option) ([]*Module, error) {
	if source == nil {
		return nil, ErrNoSources
	}
	cfg := applyOptions(opts)
	mods, loadErr := loadModulesByName(ctx, source, names, cfg)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	out, err := Resolve(mods, opts...)
	return out, errors.Join(loadErr, err)
}

// parseResult is what parsing one file produced.
type parseResult struct {
	path string
	mods []*UnresolvedModule
	err  error
}

// loadAllModules parses all files of source in parallel. Modules come
// back in file name order so that the first definition of a duplicated
// module name is stable between runs.
func loadAllModules(ctx context.Context, source Source, cfg loadConfig) ([]*UnresolvedModule, error) {
	logger := cfg.logger
	names, err := source.ListModules()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel loading",
			slog.Int("files", len(names)))
	}

	results := xsync.NewMapOf[string, parseResult]()
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for _, name := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			if r, ok := parseFile(source, name, cfg); ok {
				results.Store(name, r)
			}
		}(name)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var mods []*UnresolvedModule
	var errs []error
	seen := make(map[string]string)
	for _, name := range names {
		r, ok := results.Load(name)
		if !ok {
			continue
		}
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		for _, mod := range r.mods {
			if first, dup := seen[mod.Name]; dup {
				if logEnabled(logger, slog.LevelWarn) {
					logger.LogAttrs(ctx, slog.LevelWarn, "duplicate module ignored",
						slog.String("module", mod.Name),
						slog.String("path", r.path),
						slog.String("first", first))
				}
				continue
			}
			seen[mod.Name] = r.path
			mods = append(mods, mod)
		}
	}

	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "parallel loading complete",
			slog.Int("modules", len(mods)),
			slog.Int("errors", len(errs)))
	}
	return mods, errors.Join(errs...)
}

func loadModulesByName(ctx context.Context, source Source, names []string, cfg loadConfig) ([]*UnresolvedModule, error) {
	logger := cfg.logger
	modules := make(map[string]*UnresolvedModule)
	var order []*UnresolvedModule
	var errs []error
	scanned := false

	add := func(mods []*UnresolvedModule) {
		for _, mod := range mods {
			if _, exists := modules[mod.Name]; !exists {
				modules[mod.Name] = mod
				order = append(order, mod)
			}
		}
	}

	var loadOne func(name string) error
	loadOne = func(name string) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, ok := modules[name]; !ok {
			r, found := parseFile(source, name, cfg)
			switch {
			case found && r.err != nil:
				errs = append(errs, r.err)
			case found:
				add(r.mods)
			}
			if _, ok := modules[name]; !ok && !scanned {
				// The module may live in a file named after another one.
				scanned = true
				all, err := loadAllModules(ctx, source, cfg)
				if err != nil {
					errs = append(errs, err)
				}
				add(all)
			}
		}

		mod, ok := modules[name]
		if !ok {
			if logEnabled(logger, slog.LevelDebug) {
				logger.LogAttrs(ctx, slog.LevelDebug, "module not found",
					slog.String("module", name))
			}
			return nil
		}
		for _, imp := range mod.Imports {
			if _, loaded := modules[imp.Module]; loaded {
				continue
			}
			if err := loadOne(imp.Module); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range names {
		if err := loadOne(name); err != nil {
			return nil, err
		}
		if _, ok := modules[name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrModuleNotFound, name))
		}
	}

	keep := resolver.ModuleClosure(order, names)
	mods := slices.DeleteFunc(order, func(m *UnresolvedModule) bool {
		_, found := slices.BinarySearch(keep, m.Name)
		return !found
	})
	return mods, errors.Join(errs...)
}

// parseFile finds and parses the file for name. found is false when the
// source has no such file or its content does not look like ASN.1.
func parseFile(source Source, name string, cfg loadConfig) (r parseResult, found bool) {
	logger := cfg.logger
	res, err := source.Find(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return parseResult{}, false
		}
		return parseResult{path: res.Path, err: err}, true
	}
	content, err := io.ReadAll(res.Reader)
	_ = res.Reader.Close()
	if err != nil {
		return parseResult{path: res.Path, err: fmt.Errorf("%s: %w", res.Path, err)}, true
	}

	heuristic := defaultHeuristic()
	heuristic.enabled = !res.noHeuristic
	if !heuristic.looksLikeASN1Content(content) {
		if logEnabled(logger, slog.LevelDebug) {
			logger.LogAttrs(context.Background(), slog.LevelDebug, "content rejected by heuristic",
				slog.String("path", res.Path))
		}
		return parseResult{}, false
	}

	mods, err := parser.New(types.Component(logger, "parser")).Parse(content)
	if err != nil {
		return parseResult{path: res.Path, err: fmt.Errorf("%s: %w", res.Path, err)}, true
	}
	return parseResult{path: res.Path, mods: mods}, true
}

// logEnabled returns true if logging is enabled at the given level.
func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

var (
	sigDefinitions = []byte("DEFINITIONS")
	sigAssign      = []byte("::=")
)

type heuristicConfig struct {
	enabled         bool
	binaryCheckSize int
	maxProbeSize    int
}

func defaultHeuristic() heuristicConfig {
	return heuristicConfig{
		enabled:         true,
		binaryCheckSize: 1024,
		maxProbeSize:    128 * 1024,
	}
}

// looksLikeASN1Content reports whether content is text mentioning both
// "DEFINITIONS" and "::=" within the probe window.
func (h *heuristicConfig) looksLikeASN1Content(content []byte) bool {
	if !h.enabled {
		return true
	}
	if len(content) == 0 {
		return false
	}

	checkLen := min(h.binaryCheckSize, len(content))
	if bytes.IndexByte(content[:checkLen], 0) >= 0 {
		return false
	}

	probe := content[:min(h.maxProbeSize, len(content))]
	if bytes.IndexByte(probe, 0) >= 0 {
		return false
	}
	return bytes.Contains(probe, sigDefinitions) && bytes.Contains(probe, sigAssign)
}
