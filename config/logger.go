package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDir     = "./logs"
	defaultLogFile    = "zxdeck.log"
	defaultMaxSize    = 50
	defaultMaxBackups = 5
	defaultMaxAge     = 14
)

type LogConfig struct {
	Path       string `yaml:"path"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

func (c LogConfig) WithDefaults() LogConfig {
	cpy := c
	if cpy.Path == "" {
		cpy.Path = defaultLogDir
	}
	if cpy.File == "" {
		cpy.File = defaultLogFile
	}
	if cpy.MaxSize == 0 {
		cpy.MaxSize = defaultMaxSize
	}
	if cpy.MaxBackups == 0 {
		cpy.MaxBackups = defaultMaxBackups
	}
	if cpy.MaxAge == 0 {
		cpy.MaxAge = defaultMaxAge
	}
	return cpy
}

// CreateLogger builds the process logger. With a logger section, or when
// toFile is set (the terminal UI owns stdout), logs go to a rotating file;
// otherwise to stderr.
func (c *Config) CreateLogger(debug, toFile bool) (
	*zap.Logger,
	io.Closer,
	error,
) {
	if c.Logger != nil || toFile {
		lc := LogConfig{}
		if c.Logger != nil {
			lc = *c.Logger
		}
		logger, closer, err := newRotatingFileLogger(debug, lc.WithDefaults())
		return logger, closer, errors.Wrap(err, "create logger")
	}

	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	return logger, io.NopCloser(nil), errors.Wrap(err, "create logger")
}

func newRotatingFileLogger(debug bool, lc LogConfig) (*zap.Logger, io.Closer, error) {
	if err := os.MkdirAll(lc.Path, 0o755); err != nil {
		return nil, nil, err
	}
	rot := &lumberjack.Logger{
		Filename:   filepath.Join(lc.Path, lc.File),
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
		Compress:   lc.Compress,
	}

	encCfg := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if debug {
		encCfg = zap.NewDevelopmentEncoderConfig()
		level = zap.DebugLevel
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(rot), level)
	return zap.New(core, zap.AddCaller()), rot, nil
}
