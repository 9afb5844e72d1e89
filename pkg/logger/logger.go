package logger

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog  *log.Logger
	ErrorLog *log.Logger
	WarnLog  *log.Logger
	DebugLog *log.Logger
	logFile  *os.File
	level    = INFO
)

const (
	INFO = iota
	DEBUG
)

const flags = log.Ldate | log.Ltime | log.Lshortfile

// InitLogger initializes the logger with a file output and console output.
// An empty filename logs to the console only.
func InitLogger(filename string, lvl int) error {
	level = lvl
	if filename == "" {
		Init()
		return nil
	}

	var err error
	logFile, err = os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	SetOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

// SetOutput points every level at w. Tests use it to capture or silence logs.
func SetOutput(w io.Writer) {
	InfoLog = log.New(w, "INFO: ", flags)
	ErrorLog = log.New(w, "ERROR: ", flags)
	WarnLog = log.New(w, "WARN: ", flags)
	DebugLog = log.New(w, "DEBUG: ", flags)
}

func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Init() {
	InfoLog = log.New(os.Stdout, "INFO: ", flags)
	ErrorLog = log.New(os.Stderr, "ERROR: ", flags)
	WarnLog = log.New(os.Stdout, "WARN: ", flags)
	DebugLog = log.New(os.Stdout, "DEBUG: ", flags)
}

func Infof(format string, v ...interface{}) {
	if InfoLog == nil {
		Init()
	}
	InfoLog.Printf(format, v...)
}

func Errorf(format string, v ...interface{}) {
	if ErrorLog == nil {
		Init()
	}
	ErrorLog.Printf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	if WarnLog == nil {
		Init()
	}
	WarnLog.Printf(format, v...)
}

func Debugf(format string, v ...interface{}) {
	if level < DEBUG {
		return
	}
	if DebugLog == nil {
		Init()
	}
	DebugLog.Printf(format, v...)
}
