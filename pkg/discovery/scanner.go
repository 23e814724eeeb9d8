// Package discovery builds the test tree an editor integration shows before
// any run: it finds JavaScript/TypeScript test files under a root and
// extracts their describe/it structure into stable, identifiable tree nodes
// that correlation later annotates with outcomes.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultTimeout is the default scan timeout.
	DefaultTimeout = 2 * time.Minute
	// DefaultMaxFileSize is the default maximum file size for parsing (5MB).
	DefaultMaxFileSize = 5 * 1024 * 1024
	// MaxWorkers caps the concurrent file parsers.
	MaxWorkers = 256
)

// DefaultSkipDirs contains directory names skipped during discovery.
var DefaultSkipDirs = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".cache",
}

var (
	// ErrScanCancelled is returned when a scan is cancelled via context.
	ErrScanCancelled = errors.New("discovery: scan cancelled")
	// ErrScanTimeout is returned when a scan exceeds its timeout.
	ErrScanTimeout = errors.New("discovery: scan timeout")
)

// ScanError is a non-fatal error from one phase of a scan.
type ScanError struct {
	// Err is the underlying error.
	Err error
	// Path is the file the error occurred on, empty for walk errors.
	Path string
	// Phase is "discovery" or "parsing".
	Phase string
}

// Error implements the error interface.
func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Stats summarizes a scan.
type Stats struct {
	// FilesScanned is the number of test-file candidates found.
	FilesScanned int
	// FilesParsed is the number of files successfully parsed.
	FilesParsed int
	// FilesFailed is the number of files that failed to parse.
	FilesFailed int
	// Duration is the total scan time.
	Duration time.Duration
}

// Result is the outcome of one scan.
type Result struct {
	// Files contains the parsed test files, sorted by path.
	Files []*File
	// Errors contains the non-fatal errors encountered.
	Errors []ScanError
	// Stats summarizes the scan.
	Stats Stats
}

// Scanner discovers and parses test files.
type Scanner struct {
	options *Options
}

// NewScanner creates a scanner with the given options.
func NewScanner(opts ...Option) *Scanner {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)
	return &Scanner{options: options}
}

// Scan walks root for test files and parses them concurrently. Non-fatal
// per-file failures are collected in Result.Errors; only cancellation and
// timeout surface as errors, alongside whatever partial result accumulated.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.options.Timeout)
	defer cancel()

	result := &Result{}

	candidates, walkErrs := s.discoverFiles(ctx, root)
	result.Errors = append(result.Errors, walkErrs...)
	result.Stats.FilesScanned = len(candidates)

	if len(candidates) > 0 {
		files, parseErrs := s.parseFilesParallel(ctx, root, candidates)
		result.Files = files
		result.Errors = append(result.Errors, parseErrs...)
		result.Stats.FilesParsed = len(files)
		result.Stats.FilesFailed = len(parseErrs)
	}
	result.Stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, ErrScanTimeout
		}
		return result, ErrScanCancelled
	}
	return result, nil
}

// discoverFiles walks root and returns test-file candidates relative to it.
func (s *Scanner) discoverFiles(ctx context.Context, root string) ([]string, []ScanError) {
	skipSet := buildSkipSet(append(DefaultSkipDirs, s.options.ExcludeDirs...))

	var (
		files []string
		errs  []ScanError
	)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			errs = append(errs, ScanError{Err: walkErr, Path: path, Phase: "discovery"})
			return nil
		}

		if d.IsDir() {
			if path != root && skipSet[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			errs = append(errs, ScanError{Err: err, Path: path, Phase: "discovery"})
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if !isTestFileCandidate(relPath) {
			return nil
		}
		if len(s.options.Patterns) > 0 && !matchesAnyPattern(relPath, s.options.Patterns) {
			return nil
		}
		if s.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil || info.Size() > s.options.MaxFileSize {
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})

	return files, errs
}

func (s *Scanner) parseFilesParallel(ctx context.Context, root string, paths []string) ([]*File, []ScanError) {
	workers := s.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu    sync.Mutex
		files []*File
		errs  []ScanError
	)

	for _, path := range paths {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			source, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
			if err != nil {
				mu.Lock()
				errs = append(errs, ScanError{Err: err, Path: path, Phase: "parsing"})
				mu.Unlock()
				return nil
			}

			file, err := parseTestFile(gCtx, source, path)
			if err != nil {
				mu.Lock()
				errs = append(errs, ScanError{Err: err, Path: path, Phase: "parsing"})
				mu.Unlock()
				return nil
			}

			mu.Lock()
			files = append(files, file)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	// Goroutines finish in file-size order; sort for stable identities.
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, errs
}

// Scan discovers and parses test files under root with a one-off scanner.
func Scan(ctx context.Context, root string, opts ...Option) (*Result, error) {
	return NewScanner(opts...).Scan(ctx, root)
}

func buildSkipSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// isTestFileCandidate reports whether a path looks like a JS/TS test file:
// .spec./.test. names or anything inside a __tests__ directory.
func isTestFileCandidate(relPath string) bool {
	ext := strings.ToLower(filepath.Ext(relPath))
	switch ext {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".mts", ".cts":
	default:
		return false
	}

	base := strings.ToLower(filepath.Base(relPath))
	if strings.Contains(base, ".spec.") || strings.Contains(base, ".test.") {
		return true
	}

	return strings.Contains(relPath, "/__tests__/") || strings.HasPrefix(relPath, "__tests__/")
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
