package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const logFileName = "blockrooms.log"

// setupLogging routes the standard logger to dir/blockrooms.log when debug is
// set and discards it otherwise; the terminal owns stdout
func setupLogging(dir string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

// newLogger derives a prefixed logger from the standard logger's output
func newLogger(name string) *log.Logger {
	return log.New(log.Writer(), "["+name+"] ", log.Flags())
}
