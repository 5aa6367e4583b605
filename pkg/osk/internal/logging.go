package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
)

var (
	logMu     sync.Mutex
	logFile   *os.File
	logPath   string
	logOutput io.Writer

	setupOnce sync.Once
	logWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   = &slog.LevelVar{}
)

// SetLogPath sets the full path for the log file, including filename.
// Parent directories are created on first use. Only effective before the
// first logger is requested.
func SetLogPath(path string) {
	logMu.Lock()
	defer logMu.Unlock()
	logPath = path
}

// SetLogOutput replaces stdout as the console destination. Only effective
// before the first logger is requested.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logOutput = w
}

func setup() {
	setupOnce.Do(func() {
		logMu.Lock()
		defer logMu.Unlock()

		console := logOutput
		if console == nil {
			console = os.Stdout
		}
		logWriter = console

		if logPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return
		}
		logFile = f
		logWriter = io.MultiWriter(console, f)
	})
}

// GetLogger returns the host-facing logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		setup()
		if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
			levelVar.Set(ParseLevel(v))
		}
		logger = slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: levelVar}))
	})
	return logger
}

// GetInternalLogger returns the engine's own logger. It defaults to errors
// only so that cache and layout chatter stays quiet.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		setup()
		internalLevelVar.Set(slog.LevelError)
		if constants.IsDevMode() {
			internalLevelVar.Set(slog.LevelDebug)
		}
		internalLogger = slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: internalLevelVar})).
			With("component", "osk")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	GetInternalLogger()
	internalLevelVar.Set(level)
}

// SetRawLogLevel parses level with ParseLevel and applies it to the
// host-facing logger.
func SetRawLogLevel(level string) {
	SetLogLevel(ParseLevel(level))
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to slog
// levels. Anything else is info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func CloseLogger() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
