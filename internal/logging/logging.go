package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"mines-casino/internal/config"
)

var (
	mu     sync.RWMutex
	output io.Writer = os.Stdout
	file   *lumberjack.Logger
)

// Init configures the global zerolog logger. When cfg.File is set, records
// are written to stdout and to a file rotated at cfg.MaxMB with one backup.
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var console io.Writer = os.Stdout
	if cfg.Pretty {
		console = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	out := console
	var fw *lumberjack.Logger
	if cfg.File != "" {
		fw = newFileWriter(cfg.File, cfg.MaxMB)
		out = zerolog.MultiLevelWriter(console, fw)
	}

	mu.Lock()
	if file != nil {
		_ = file.Close()
	}
	file = fw
	output = out
	mu.Unlock()

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(out).With().Timestamp().Str("service", cfg.Service).Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	return nil
}

// Writer returns the sink the global logger writes to, so request logs land
// in the same place.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// Close flushes and releases the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	output = os.Stdout
	return err
}

func newFileWriter(path string, maxMB int) *lumberjack.Logger {
	if maxMB <= 0 {
		maxMB = 10
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxMB,
		MaxBackups: 1,
	}
}
