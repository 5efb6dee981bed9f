package yan

import (
	"io"
	"log/slog"
	"time"

	"github.com/yan-lang/yan-runtime/config"
	"github.com/yan-lang/yan-runtime/domain/ports"
	"github.com/yan-lang/yan-runtime/hostio"
)

// Option configures a Runtime.
type Option func(*runtimeConfig)

type runtimeConfig struct {
	config     *config.Config
	logger     *slog.Logger
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	lineReader ports.LineReader
	random     *hostio.Random
	clock      func() time.Time
	modules    []ports.HostModule
	finders    []ports.ModuleFinder
}

// WithConfig sets the runtime configuration. Default() is used otherwise.
func WithConfig(cfg *config.Config) Option {
	return func(c *runtimeConfig) {
		c.config = cfg
	}
}

// WithLogger sets the logger. Without it a logger is built from the
// configuration and writes to stderr.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runtimeConfig) {
		c.logger = logger
	}
}

// WithStdio sets the streams seen by the guest. Nil streams keep the
// process defaults.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(c *runtimeConfig) {
		if stdin != nil {
			c.stdin = stdin
		}
		if stdout != nil {
			c.stdout = stdout
		}
		if stderr != nil {
			c.stderr = stderr
		}
	}
}

// WithLineReader overrides the reader used by readLine and input.
func WithLineReader(r ports.LineReader) Option {
	return func(c *runtimeConfig) {
		c.lineReader = r
	}
}

// WithRandom sets the generator behind rand.Random and rand.RandInt.
func WithRandom(g *hostio.Random) Option {
	return func(c *runtimeConfig) {
		c.random = g
	}
}

// WithClock sets the clock behind time.Now and time.Fetch.
func WithClock(clock func() time.Time) Option {
	return func(c *runtimeConfig) {
		c.clock = clock
	}
}

// WithModules registers Go-defined host modules.
func WithModules(mods ...ports.HostModule) Option {
	return func(c *runtimeConfig) {
		c.modules = append(c.modules, mods...)
	}
}

// WithFinders appends finders consulted after the built-in ones.
func WithFinders(finders ...ports.ModuleFinder) Option {
	return func(c *runtimeConfig) {
		c.finders = append(c.finders, finders...)
	}
}
