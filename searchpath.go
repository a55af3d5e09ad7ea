package goasn1

import (
	"os"
	"path/filepath"
	"strings"
)

// PathEnv is the environment variable SearchPath reads.
const PathEnv = "ASN1GO_PATH"

type pathOp int

const (
	pathReplace pathOp = iota
	pathAppend
	pathPrepend
)

// SearchPath returns a Source over the shared ASN.1 module directories:
// ~/.asn1go/modules, /usr/local/share/asn1 and /usr/share/asn1, adjusted
// by $ASN1GO_PATH. A value with a leading colon appends to the defaults,
// a trailing colon prepends, and anything else replaces them. Directories
// that do not exist are skipped, so the result may find nothing.
func SearchPath(opts ...SourceOption) Source {
	var sources []Source
	for _, dir := range searchDirs(os.Getenv(PathEnv)) {
		if src, err := DirTree(dir, opts...); err == nil {
			sources = append(sources, src)
		}
	}
	return Multi(sources...)
}

func searchDirs(env string) []string {
	paths := defaultSearchDirs()
	if env != "" {
		op, dirs := parseColonSemantic(env)
		paths = applyOp(op, dirs, paths)
	}
	return filterExistingDirs(dedup(paths))
}

func defaultSearchDirs() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".asn1go", "modules"))
	}
	return append(paths,
		"/usr/local/share/asn1",
		"/usr/share/asn1",
	)
}

// parseColonSemantic interprets leading/trailing colon semantics.
// Leading colon = append, trailing colon = prepend, neither = replace.
func parseColonSemantic(value string) (pathOp, []string) {
	if strings.HasPrefix(value, ":") {
		return pathAppend, splitPaths(strings.TrimPrefix(value, ":"))
	}
	if strings.HasSuffix(value, ":") {
		return pathPrepend, splitPaths(strings.TrimSuffix(value, ":"))
	}
	return pathReplace, splitPaths(value)
}

func applyOp(op pathOp, dirs, current []string) []string {
	switch op {
	case pathAppend:
		return append(current, dirs...)
	case pathPrepend:
		return append(dirs, current...)
	default:
		return dirs
	}
}

func splitPaths(s string) []string {
	var result []string
	for _, p := range strings.Split(s, string(os.PathListSeparator)) {
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func dedup(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	var result []string
	for _, p := range paths {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			result = append(result, p)
		}
	}
	return result
}

func filterExistingDirs(paths []string) []string {
	var result []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			result = append(result, p)
		}
	}
	return result
}
