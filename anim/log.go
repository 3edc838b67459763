package anim

import (
	"log"
	"os"
)

// Logger is the interface of the package-level loggers. *log.Logger
// satisfies it.
type Logger interface {
	Println(v ...interface{})
	Printf(format string, v ...interface{})
}

// NOOPLogger discards everything.
type NOOPLogger struct{}

func (NOOPLogger) Println(v ...interface{})               {}
func (NOOPLogger) Printf(format string, v ...interface{}) {}

// WARN receives unsupported-operation reports, such as calling Play on a
// Kinetic or composing one.
var WARN Logger = log.New(os.Stderr, "[anim] WARN ", log.LstdFlags)
