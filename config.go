package eventwrap

import (
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	BackendZerolog = "zerolog"
	BackendZap     = "zap"
	BackendText    = "text"
	BackendNone    = "none"
)

// Config controls emitter and proxy defaults.
type Config struct {
	MaxListeners int    `env:"EVENTWRAP_MAX_LISTENERS" envDefault:"10"`
	LogLevel     string `env:"EVENTWRAP_LOG_LEVEL"     envDefault:"warn"`
	LogBackend   string `env:"EVENTWRAP_LOG_BACKEND"   envDefault:"zerolog"`
}

// LoadConfigFromEnv parses and validates the configuration from the environment.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var err error
	if c.MaxListeners < 0 {
		err = multierr.Append(err, newErrConfigField("max_listeners", c.MaxListeners, "must not be negative"))
	}
	if _, ok := ParseLevel(c.LogLevel); !ok {
		err = multierr.Append(err, newErrConfigField("log_level", c.LogLevel, "unknown level"))
	}
	switch c.LogBackend {
	case BackendZerolog, BackendZap, BackendText, BackendNone:
	default:
		err = multierr.Append(err, newErrConfigField("log_backend", c.LogBackend, "unknown backend"))
	}
	return err
}

// Options turns the configuration into options for NewEventEmitter and NewProxy. Log
// entries go to w.
func (c Config) Options(w io.Writer) ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return []Option{
		WithLogger(c.newLogger(w)),
		WithMaxListeners(c.MaxListeners),
	}, nil
}

func (c Config) newLogger(w io.Writer) logger {
	level, _ := ParseLevel(c.LogLevel)

	switch c.LogBackend {
	case BackendZerolog:
		zl := zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger()
		return NewZerologLogger(zl)
	case BackendZap:
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(w),
			zapLevel(level),
		)
		return NewZapLogger(zap.New(core).Sugar())
	case BackendText:
		return NewWriterLogger(w, level)
	default:
		return NewZerologLogger(zerolog.Nop())
	}
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

func zapLevel(level Level) zapcore.LevelEnabler {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zap.LevelEnablerFunc(func(zapcore.Level) bool { return false })
	}
}
