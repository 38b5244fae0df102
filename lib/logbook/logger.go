package logbook

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/ValentinKolb/jDB/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

// Names of the package loggers configured by InitLoggers.
const (
	LoggerStore   = "store"
	LoggerPersist = "persist"
	LoggerCLI     = "cli"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// jdbLogger implements the ILogger interface with custom formatting
type jdbLogger struct {
	name   string
	level  logger.LogLevel
	logger *log.Logger
}

func (l *jdbLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *jdbLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *jdbLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log("INFO", format, args...)
	}
}

func (l *jdbLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *jdbLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *jdbLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message
func (l *jdbLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger is the logger.Factory installed by InitLoggers.
// Output goes to stderr so command output on stdout stays machine readable.
func CreateLogger(pkgName string) logger.ILogger {
	stdLogger := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	return &jdbLogger{
		name:   pkgName,
		level:  logger.INFO,
		logger: stdLogger,
	}
}

// ParseLevel converts a string level to logger.LogLevel
func ParseLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

var installFactory sync.Once

// InitLoggers installs the custom logger factory (once per process) and sets
// the level of all jDB loggers.
func InitLoggers(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	installFactory.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})
	for _, name := range []string{LoggerStore, LoggerPersist, LoggerCLI} {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}

// --------------------------------------------------------------------------
// store.ILogger adapter
// --------------------------------------------------------------------------

// NewLogger returns a store.ILogger writing to the named package logger.
func NewLogger(name string) store.ILogger {
	return FromILogger(logger.GetLogger(name))
}

// FromILogger adapts any dragonboat logger to store.ILogger.
func FromILogger(l logger.ILogger) store.ILogger {
	return &recorder{l: l}
}

type recorder struct {
	l logger.ILogger
}

func (r *recorder) Record(level store.LogLevel, msg string) {
	switch level {
	case store.LogError:
		r.l.Errorf("%s", msg)
	default:
		r.l.Infof("%s", msg)
	}
}
