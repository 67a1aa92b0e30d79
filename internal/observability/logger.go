package observability

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/octavarium-xyz/frameworks-base/internal/config"
)

var (
	// Use an atomic pointer for safe concurrent access.
	globalLogger atomic.Pointer[zap.Logger]
	once         sync.Once
)

// ANSI color codes for the terminal.
const (
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorReset   = "\x1b[0m"
)

// levelColors fixes one color per level for console output.
var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel:  colorCyan,
	zapcore.InfoLevel:   colorGreen,
	zapcore.WarnLevel:   colorYellow,
	zapcore.ErrorLevel:  colorRed,
	zapcore.DPanicLevel: colorMagenta,
	zapcore.PanicLevel:  colorMagenta,
	zapcore.FatalLevel:  colorRed,
}

// InitializeLogger sets up the global Zap logger based on the configuration.
func InitializeLogger(cfg config.LoggerConfig) {
	initializeLogger(cfg, zapcore.Lock(os.Stdout))
}

// initializeLogger wires the cores behind InitializeLogger; split out so
// tests can capture the console stream.
func initializeLogger(cfg config.LoggerConfig, console zapcore.WriteSyncer) {
	once.Do(func() {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}

		consoleCore := zapcore.NewCore(getEncoder(cfg.Format), console, level)
		cores := []zapcore.Core{consoleCore}

		if cfg.LogFile != "" {
			// File output is always JSON for structured logging.
			fileWriter := zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			})
			cores = append(cores, zapcore.NewCore(getEncoder("json"), fileWriter, level))
		}

		core := zapcore.NewTee(cores...)
		options := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
		if cfg.AddSource {
			options = append(options, zap.AddCaller())
		}

		logger := zap.New(core, options...).Named(cfg.ServiceName)
		globalLogger.Store(logger)

		zap.ReplaceGlobals(logger)
		zap.RedirectStdLog(logger)
	})
}

// colorizedLevelEncoder renders the level name in its fixed color.
func colorizedLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	levelStr := strings.ToUpper(level.String())
	if color, ok := levelColors[level]; ok {
		enc.AppendString(fmt.Sprintf("%s%s%s", color, levelStr, colorReset))
		return
	}
	enc.AppendString(levelStr)
}

func getEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if format == "console" {
		encoderConfig.EncodeLevel = colorizedLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	// JSON output carries no color codes.
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

// GetLogger returns the initialized global logger instance.
func GetLogger() *zap.Logger {
	logger := globalLogger.Load()
	if logger == nil {
		// Fallback mechanism
		l, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}
		return l.Named("fallback")
	}
	return logger
}

// Sync flushes any buffered log entries.
func Sync() {
	logger := globalLogger.Load()
	if logger != nil {
		if err := logger.Sync(); err != nil {
			// Cannot rely on the logger itself, so print to stderr.
			fmt.Fprintln(os.Stderr, "Error: failed to sync logger:", err)
		}
	}
}
