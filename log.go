package wpekit

import (
	"log"
	"os"
)

var (
	// Logger is the default package logger.
	Logger = log.New(os.Stderr, "wpekit ", log.LstdFlags)
)

func warnf(format string, v ...interface{}) {
	Logger.Printf("WARNING: "+format, v...)
}

func infof(format string, v ...interface{}) {
	Logger.Printf(format, v...)
}
