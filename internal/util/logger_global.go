package util

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	loggerMu     sync.RWMutex
)

// InitLogger installs the process-wide logger. Entries go to logFile when
// set and additionally to stderr in debug mode.
func InitLogger(logLevel, logFile string, debugToConsole bool) error {
	logger := NewLogger(ParseLogLevel(logLevel))
	if debugToConsole {
		logger.AddOutput(NewConsoleOutput(os.Stderr, FormatText))
	}
	if logFile != "" {
		out, err := NewFileOutput(logFile, FormatText)
		if err != nil {
			return err
		}
		logger.AddOutput(out)
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the global logger; nil disables logging.
func SetLogger(l *Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if globalLogger != nil && globalLogger != l {
		globalLogger.Close()
	}
	globalLogger = l
}

// GetLogger returns the global logger, or a logger without outputs.
func GetLogger() *Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if globalLogger == nil {
		return NewLogger(LevelError)
	}
	return globalLogger
}

func LogDebug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }
func LogInfo(msg string, fields ...Field)  { GetLogger().Info(msg, fields...) }
func LogWarn(msg string, fields ...Field)  { GetLogger().Warn(msg, fields...) }
func LogError(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }

func LogDebugf(format string, args ...interface{}) { GetLogger().Debugf(format, args...) }
func LogInfof(format string, args ...interface{})  { GetLogger().Infof(format, args...) }
func LogWarnf(format string, args ...interface{})  { GetLogger().Warnf(format, args...) }
func LogErrorf(format string, args ...interface{}) { GetLogger().Errorf(format, args...) }
