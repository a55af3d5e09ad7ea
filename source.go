package goasn1

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// DefaultExtensions are the file extensions recognized as ASN.1 files.
// Empty string matches files with no extension (e.g., "Sample-Module").
var DefaultExtensions = []string{"", ".asn", ".asn1", ".txt"}

// FindResult is an opened module file.
type FindResult struct {
	Reader io.ReadCloser
	// Path identifies the file in diagnostics.
	Path string

	noHeuristic bool
}

// Source finds ASN.1 files by module name. File names stand for the
// module they hold: "Sample-Module.asn" is found as "Sample-Module". A
// file may hold more modules than its name says; Load parses them all.
type Source interface {
	// Find opens the file for a module name. It returns an error
	// wrapping fs.ErrNotExist when the source has none.
	Find(name string) (FindResult, error)

	// ListModules returns the names Find accepts, sorted.
	ListModules() ([]string, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions  []string
	noHeuristic bool
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{
		extensions: DefaultExtensions,
	}
}

func applySourceOptions(opts []SourceOption) sourceConfig {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithExtensions sets the file extensions to recognize for this source.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// WithNoHeuristic disables content validation for this source, so every
// matching file is handed to the parser.
func WithNoHeuristic() SourceOption {
	return func(c *sourceConfig) {
		c.noHeuristic = true
	}
}

// --- Dir Source (single directory, lazy) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source that searches a single directory (no recursion).
// Files are looked up lazily on each Find() call.
func Dir(path string, opts ...SourceOption) (Source, error) {
	if err := checkDir(path); err != nil {
		return nil, err
	}
	return &dirSource{path: path, config: applySourceOptions(opts)}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(path string, opts ...SourceOption) Source {
	src, err := Dir(path, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) Find(name string) (FindResult, error) {
	for _, ext := range s.config.extensions {
		fullPath := filepath.Join(s.path, name+ext)
		f, err := os.Open(fullPath)
		if err == nil {
			return FindResult{Reader: f, Path: fullPath, noHeuristic: s.config.noHeuristic}, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return FindResult{Path: fullPath}, err
		}
	}
	return FindResult{}, notFound(name)
}

func (s *dirSource) ListModules() ([]string, error) {
	extSet := makeExtensionSet(s.config.extensions)
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !hasValidExtension(entry.Name(), extSet) {
			continue
		}
		names = append(names, moduleNameFromPath(entry.Name()))
	}
	return sortedUnique(names), nil
}

// --- DirTree Source (recursive directory, indexed) ---

type treeSource struct {
	index  map[string]string // module name -> file path
	config sourceConfig
}

// DirTree creates a Source that recursively indexes a directory tree.
// It walks the tree once at construction and builds a name->path index.
// First match in walk order wins for duplicate names.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}
	cfg := applySourceOptions(opts)
	index, err := buildIndex(os.DirFS(root), cfg.extensions)
	if err != nil {
		return nil, err
	}
	for name, path := range index {
		index[name] = filepath.Join(root, filepath.FromSlash(path))
	}
	return &treeSource{index: index, config: cfg}, nil
}

// MustDirTree is like DirTree but panics on error.
func MustDirTree(root string, opts ...SourceOption) Source {
	src, err := DirTree(root, opts...)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *treeSource) Find(name string) (FindResult, error) {
	path, ok := s.index[name]
	if !ok {
		return FindResult{}, notFound(name)
	}
	f, err := os.Open(path)
	if err != nil {
		return FindResult{Path: path}, err
	}
	return FindResult{Reader: f, Path: path, noHeuristic: s.config.noHeuristic}, nil
}

func (s *treeSource) ListModules() ([]string, error) {
	return indexNames(s.index), nil
}

// --- FS Source (for embed.FS, testing, http filesystems) ---

type fsSource struct {
	name   string
	fsys   fs.FS
	config sourceConfig

	once  sync.Once
	index map[string]string
	err   error
}

// FS creates a Source backed by an fs.FS (e.g., embed.FS).
// The name is used for error messages and path reporting.
// It lazily indexes the filesystem on first use.
func FS(name string, fsys fs.FS, opts ...SourceOption) Source {
	return &fsSource{
		name:   name,
		fsys:   fsys,
		config: applySourceOptions(opts),
	}
}

func (s *fsSource) load() error {
	s.once.Do(func() {
		s.index, s.err = buildIndex(s.fsys, s.config.extensions)
	})
	return s.err
}

func (s *fsSource) Find(name string) (FindResult, error) {
	if err := s.load(); err != nil {
		return FindResult{}, err
	}
	path, ok := s.index[name]
	if !ok {
		return FindResult{}, notFound(name)
	}
	f, err := s.fsys.Open(path)
	if err != nil {
		return FindResult{Path: s.name + ":" + path}, err
	}
	return FindResult{Reader: f, Path: s.name + ":" + path, noHeuristic: s.config.noHeuristic}, nil
}

func (s *fsSource) ListModules() ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return indexNames(s.index), nil
}

// --- Files Source (explicit paths, e.g. command line arguments) ---

type filesSource struct {
	index  map[string]string
	config sourceConfig
}

// Files creates a Source over explicit file paths, whatever their
// extension. The first path wins when two share a module name.
func Files(paths []string, opts ...SourceOption) Source {
	index := make(map[string]string, len(paths))
	for _, path := range paths {
		name := moduleNameFromPath(path)
		if _, exists := index[name]; !exists {
			index[name] = path
		}
	}
	return &filesSource{index: index, config: applySourceOptions(opts)}
}

func (s *filesSource) Find(name string) (FindResult, error) {
	path, ok := s.index[name]
	if !ok {
		return FindResult{}, notFound(name)
	}
	f, err := os.Open(path)
	if err != nil {
		return FindResult{Path: path}, err
	}
	return FindResult{Reader: f, Path: path, noHeuristic: s.config.noHeuristic}, nil
}

func (s *filesSource) ListModules() ([]string, error) {
	return indexNames(s.index), nil
}

// --- Multi Source (combines multiple sources) ---

type multiSource struct {
	sources []Source
}

// Multi combines multiple sources into one.
// Find() tries each source in order, returning the first match.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Find(name string) (FindResult, error) {
	for _, src := range s.sources {
		r, err := src.Find(name)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return r, err
		}
	}
	return FindResult{}, notFound(name)
}

func (s *multiSource) ListModules() ([]string, error) {
	var names []string
	for _, src := range s.sources {
		n, err := src.ListModules()
		if err != nil {
			return nil, err
		}
		names = append(names, n...)
	}
	return sortedUnique(names), nil
}

// --- Helpers ---

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return nil
}

func notFound(name string) error {
	return &fs.PathError{Op: "find", Path: name, Err: fs.ErrNotExist}
}

func buildIndex(fsys fs.FS, extensions []string) (map[string]string, error) {
	extSet := makeExtensionSet(extensions)
	index := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasValidExtension(path, extSet) {
			return nil
		}
		name := moduleNameFromPath(path)
		if _, exists := index[name]; !exists {
			index[name] = path
		}
		return nil
	})
	return index, err
}

func indexNames(index map[string]string) []string {
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func sortedUnique(names []string) []string {
	slices.Sort(names)
	return slices.Compact(names)
}

func makeExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

func hasValidExtension(path string, extSet map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := extSet[ext]
	return ok
}

func moduleNameFromPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
