package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Package level loggers. They write to io.Discard until Initialize is called so
// library code can log unconditionally.
var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var logFileName = filepath.Join(os.TempDir(), "simple-panels.log")

var globalLogFile *os.File

// LogFileName returns the path of the log file written after Initialize.
func LogFileName() string {
	return logFileName
}

// Initialize opens the log file and points the package loggers at it. If quiet
// is true the close message is not printed to stdout.
func Initialize(quiet bool) {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	fmtS := "%s"
	if quiet {
		fmtS = "[quiet] %s"
	}
	InfoLog = log.New(f, fmt.Sprintf(fmtS, "INFO:"), log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, fmt.Sprintf(fmtS, "WARNING:"), log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, fmt.Sprintf(fmtS, "ERROR:"), log.Ldate|log.Ltime|log.Lshortfile)

	globalLogFile = f
	InitDebug()
}

// Close flushes and closes the log file and any debug log.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	InfoLog = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog = log.New(io.Discard, "", 0)
}
