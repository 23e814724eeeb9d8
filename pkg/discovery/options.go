package discovery

import "time"

// Options configures scanner behavior.
type Options struct {
	// ExcludeDirs specifies directory names to skip, combined with
	// DefaultSkipDirs.
	ExcludeDirs []string

	// MaxFileSize is the maximum file size in bytes to parse. Larger files
	// are skipped.
	MaxFileSize int64

	// Patterns specifies glob patterns (doublestar syntax) to filter test
	// files. Empty means every test-file candidate is parsed.
	Patterns []string

	// Timeout bounds the whole scan. Zero or negative uses DefaultTimeout.
	Timeout time.Duration

	// Workers is the number of concurrent file parsers. Zero or negative
	// uses GOMAXPROCS.
	Workers int
}

// Option is a functional option for configuring a Scanner.
type Option func(*Options)

// WithWorkers sets the number of concurrent file parsers.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the scan timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithPatterns sets glob patterns to filter test files.
func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithExcludeDirs adds directory names to skip during discovery.
func WithExcludeDirs(dirs []string) Option {
	return func(o *Options) {
		o.ExcludeDirs = dirs
	}
}

// WithMaxFileSize sets the maximum file size to parse.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

func applyDefaults(o *Options) {
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
}
