/*
 * Copyright (c) 2021 VMware, Inc.
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
 * associated documentation files (the "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is furnished to do
 * so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all copies or substantial
 * portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
 * NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
 * WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */
// Note: The implementation comes from https://www.mountedthoughts.com/golang-logger-interface/
// https://github.com/amitrai48/logger

package logger

// A global variable so that log functions can be directly accessed.
var log Logger

// Fields Type to pass when we want to call WithFields for structured logging.
type Fields map[string]interface{}

const (
	// Debug has verbose message
	Debug = "debug"
	// Info is default log level
	Info = "info"
	// Warn is for logging messages about possible issues
	Warn = "warn"
	// Error is for logging errors
	Error = "error"
	// Fatal is for logging fatal messages. The system shutsdown after logging the message.
	Fatal = "fatal"
)

// Logger is our contract for the logger.
type Logger interface {
	Debugf(format string, args ...interface{})

	Infof(format string, args ...interface{})

	Warnf(format string, args ...interface{})

	Errorf(format string, args ...interface{})

	Fatalf(format string, args ...interface{})

	Panicf(format string, args ...interface{})

	WithFields(keyValues Fields) Logger
}

// Configuration stores the config for the logger.
// For some loggers there can only be one level across writers, for such the level of Console is picked by default.
type Configuration struct {
	EnableConsole     bool
	ConsoleJSONFormat bool
	ConsoleLevel      string
	EnableFile        bool
	FileJSONFormat    bool
	FileLevel         string
	Filename          string
	// MaxSizeMB is the max size of the log file in MB before it is rotated. Default: 100MB
	MaxSizeMB int
	// MaxBackups is the max number of rotated files to keep. Default: keep all
	MaxBackups int
	// MaxAgeDays is the max number of days to keep rotated files. Default: never delete
	MaxAgeDays int
	// LocalTime sets whether the rotated file names use local time. Default: UTC
	LocalTime bool
}

func normalizeConfig(config *Configuration) {
	if !config.EnableConsole && !config.EnableFile {
		// makes sure there is at least one logging option
		config.EnableConsole = true
	}

	if config.ConsoleLevel == "" {
		config.ConsoleLevel = Info
	}

	if config.FileLevel == "" {
		config.FileLevel = Info
	}
}

// SetDefaultLogger sets default logger for the system.
func SetDefaultLogger(l Logger) {
	log = l
}

// GetDefaultLogger gets default logger for the system. It creates a logrus
// backed logger at info level when no default has been set.
func GetDefaultLogger() Logger {
	if log == nil {
		config := Configuration{
			EnableConsole:     true,
			ConsoleLevel:      Info,
			ConsoleJSONFormat: false,
		}
		log = NewLogrusLoggerWithConfig(config)
	}
	return log
}
