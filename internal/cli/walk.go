package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/dtlint/internal/collections"
	"github.com/bmatcuk/doublestar/v4"
)

// lintableExtensions are the file extensions considered when walking
// directories or expanding glob patterns.
var lintableExtensions = collections.NewSet(".css", ".html", ".js", ".mjs", ".ts")

// skipDirNames are directory names never descended into.
var skipDirNames = collections.NewSet("node_modules", "dist", "build")

// CollectFiles expands args into the sorted, deduplicated list of files
// to lint. Each argument may be an existing file, a directory (walked
// recursively), or a doublestar glob evaluated against workDir.
func CollectFiles(workDir string, args []string) ([]string, error) {
	var files []string
	var globs []string

	for _, arg := range args {
		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			files = append(files, collectDir(path)...)
		case err == nil:
			if lintable(path) {
				files = append(files, path)
			}
		default:
			// Not on disk: treat as a glob over the working directory
			globs = append(globs, filepath.ToSlash(arg))
		}
	}

	if len(globs) > 0 {
		matched, err := collectGlobs(workDir, globs)
		if err != nil {
			return nil, err
		}
		files = append(files, matched...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// shouldSkipDirectory checks if a directory should be skipped during file
// discovery. Returns true for hidden directories and common
// build/dependency directories.
func shouldSkipDirectory(info os.FileInfo) bool {
	if !info.IsDir() {
		return false
	}
	if strings.HasPrefix(info.Name(), ".") {
		return true
	}
	return skipDirNames.Has(info.Name())
}

func lintable(path string) bool {
	return lintableExtensions.Has(strings.ToLower(filepath.Ext(path)))
}

// collectDir walks a directory collecting lintable files, skipping
// hidden files and excluded directories.
func collectDir(root string) []string {
	var files []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if info.IsDir() {
			if path != root && shouldSkipDirectory(info) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if lintable(path) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// collectGlobs walks workDir once and collects lintable files whose
// workDir-relative path matches any of the patterns.
func collectGlobs(workDir string, patterns []string) ([]string, error) {
	var files []string
	err := filepath.Walk(workDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if info.IsDir() {
			if path != workDir && shouldSkipDirectory(info) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") || !lintable(path) {
			return nil
		}
		relPath, err := filepath.Rel(workDir, path)
		if err != nil {
			return nil
		}
		if matchesAnyPattern(relPath, patterns) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// matchesAnyPattern checks if a file path matches any of the given glob
// patterns. Paths are normalized to forward slashes before matching, as
// doublestar expects.
func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(relPath))
		if err == nil && matched {
			return true
		}
	}
	return false
}
