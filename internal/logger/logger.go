// Package logger holds the process-wide charm logger. Output always goes to a
// rotating file under the config dir; serve and --debug also mirror it to
// stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitus/internal/constants"
)

// Logger is nil until Init runs; the package helpers are no-ops until then.
var Logger *log.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	JSON      bool
	Stderr    bool
}

// Path is the active log file for a config dir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	sink, err := rotatingFile(Path(cfg.ConfigDir))
	if err != nil {
		return err
	}

	var out io.Writer = sink
	if cfg.Stderr || cfg.Debug {
		out = io.MultiWriter(os.Stderr, sink)
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	Logger = New(out, level, cfg.Debug, cfg.JSON)
	return nil
}

func rotatingFile(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}, nil
}

// New builds a logger without touching the global one.
func New(w io.Writer, level log.Level, reportCaller, json bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          constants.AppName,
		Level:           level,
		ReportTimestamp: true,
		ReportCaller:    reportCaller,
		// Debug/Info/Warn/Error and emit
		CallerOffset: 2,
	})
	if json {
		l.SetFormatter(log.JSONFormatter)
	}
	return l
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }
