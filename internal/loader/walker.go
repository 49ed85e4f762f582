// Package loader discovers corpus files on disk and converts them into
// plain text ready for ingestion.
package loader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the maximum corpus file size to ingest (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// CorpusFile is one discovered document file.
type CorpusFile struct {
	Path    string // absolute path on disk
	RelPath string // path relative to the corpus root
	Size    int64
}

// WalkConfig controls corpus discovery.
type WalkConfig struct {
	RootDir     string
	Include     []string // glob patterns, default "**/*.md" and "**/*.txt"
	Exclude     []string
	MaxFileSize int64 // 0 = DefaultMaxFileSize
}

var defaultInclude = []string{"**/*.md", "**/*.txt"}

// Walk traverses the corpus directory and returns the files to ingest,
// in deterministic path order.
func Walk(config WalkConfig) ([]CorpusFile, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve root: %w", err)
	}

	include := config.Include
	if len(include) == 0 {
		include = defaultInclude
	}
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []CorpusFile
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if !matchesAny(relPath, include) || matchesAny(relPath, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			return nil
		}

		files = append(files, CorpusFile{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: walking %s: %w", root, err)
	}
	return files, nil
}

// matchesAny checks relPath against glob patterns with ** support.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		// A bare pattern like "*.md" should also match in subdirectories.
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}
