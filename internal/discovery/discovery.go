// Package discovery expands command-line inputs into the Java sources to lint.
package discovery

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is a source file selected for linting.
type File struct {
	// Path is the path as given for explicit file inputs and an absolute path
	// for files found by expanding directories or globs.
	Path string

	// ConfigRoot is the directory where configuration discovery starts.
	ConfigRoot string
}

// Options configures discovery.
type Options struct {
	// Extensions selects files inside directories by suffix (default: ".java").
	// Explicit file inputs are always kept.
	Extensions []string

	// ExcludePatterns are doublestar patterns matched against the absolute
	// path, the base name and every trailing subpath of a candidate.
	ExcludePatterns []string
}

// DefaultExtensions returns the suffixes of files checked by default.
func DefaultExtensions() []string {
	return []string{".java"}
}

// Discover resolves inputs to files. An input is a file, a directory searched
// recursively or a doublestar glob.
//
// Results are deduplicated by absolute path and sorted by path.
func Discover(inputs []string, opts Options) ([]File, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions()
	}

	d := &discoverer{opts: opts, seen: make(map[string]struct{})}
	for _, input := range inputs {
		if err := d.input(input); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(d.files, func(a, b File) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return d.files, nil
}

type discoverer struct {
	opts  Options
	seen  map[string]struct{}
	files []File
}

func (d *discoverer) input(input string) error {
	// Glob characters make os.Stat fail on Windows, so globs skip it.
	if strings.ContainsAny(input, "*?[]{}") {
		return d.glob(input, false)
	}

	info, err := os.Stat(input)
	switch {
	case err == nil && info.IsDir():
		return d.glob(filepath.Join(input, "**", "*"), true)
	case err == nil:
		return d.add(input, input)
	case os.IsNotExist(err):
		return d.glob(input, false)
	default:
		return err
	}
}

// glob expands pattern. Directory walks keep only files with a known extension.
func (d *discoverer) glob(pattern string, filterExt bool) error {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return err
	}
	for _, match := range matches {
		if filterExt && !d.hasExtension(match) {
			continue
		}
		abs, err := filepath.Abs(match)
		if err != nil {
			return err
		}
		if err := d.add(abs, abs); err != nil {
			return err
		}
	}
	return nil
}

func (d *discoverer) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(d.opts.Extensions, func(want string) bool {
		return strings.EqualFold(ext, want)
	})
}

func (d *discoverer) add(display, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if isExcluded(abs, d.opts.ExcludePatterns) {
		return nil
	}
	if _, ok := d.seen[abs]; ok {
		return nil
	}
	d.seen[abs] = struct{}{}
	d.files = append(d.files, File{Path: display, ConfigRoot: filepath.Dir(abs)})
	return nil
}

// isExcluded matches each pattern against the absolute path, the base name and
// every trailing subpath, so "generated/**" excludes a generated directory at
// any depth. doublestar expects forward slashes on every platform.
func isExcluded(absPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(absPath), "/"), "/")
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(absPath)); ok {
			return true
		}
		for i := range parts {
			if ok, _ := doublestar.Match(pattern, strings.Join(parts[i:], "/")); ok {
				return true
			}
		}
	}
	return false
}
