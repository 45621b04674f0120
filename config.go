package cat

import (
	"io"
	"log/slog"
)

const defaultBufferSize = 64 * 1024

// Option configures the stream driver.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	lineFlush  bool
	bufferSize int
}

// WithLogger routes debug tracing to logger. A nil logger disables tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithLineFlush flushes the output after every emitted line, which keeps an
// interactive terminal in step with the input.
func WithLineFlush(enabled bool) Option {
	return func(cfg *config) {
		cfg.lineFlush = enabled
	}
}

// WithBufferSize sets the read and write buffer sizes. Values below 16 bytes
// fall back to the default.
func WithBufferSize(n int) Option {
	return func(cfg *config) {
		cfg.bufferSize = n
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newConfig(opts []Option) config {
	cfg := config{bufferSize: defaultBufferSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger
	}
	if cfg.bufferSize < 16 {
		cfg.bufferSize = defaultBufferSize
	}
	return cfg
}
