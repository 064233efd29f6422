// Package logger provides leveled logging to console and an optional file.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

var levelTags = map[Level]string{
	DEBUG: colorGray + "[DEBUG]" + colorReset + " ",
	INFO:  "[INFO]  ",
	WARN:  colorYellow + "[WARN]" + colorReset + "  ",
	ERROR: colorRed + "[ERROR]" + colorReset + " ",
}

var plainTags = map[Level]string{
	DEBUG: "[DEBUG] ",
	INFO:  "[INFO]  ",
	WARN:  "[WARN]  ",
	ERROR: "[ERROR] ",
}

var (
	mu       sync.Mutex
	minLevel = DEBUG
	console  = log.New(os.Stdout, "", log.Ldate|log.Ltime)
	file     *log.Logger
	fileHnd  *os.File
)

// Init redirects logging to the given file in addition to the console.
// Passing console=false drops console output entirely.
func Init(filename string, consoleOut bool) error {
	mu.Lock()
	defer mu.Unlock()

	if fileHnd != nil {
		fileHnd.Close()
		fileHnd = nil
		file = nil
	}
	if filename != "" {
		f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		fileHnd = f
		file = log.New(f, "", log.Ldate|log.Ltime)
	}
	if !consoleOut {
		console = nil
	} else if console == nil {
		console = log.New(os.Stdout, "", log.Ldate|log.Ltime)
	}
	if console == nil && file == nil {
		return fmt.Errorf("no output destination specified")
	}
	return nil
}

// SetLevel sets the minimum level; messages below it are dropped.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

func emit(l Level, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLevel {
		return
	}
	if console != nil {
		console.Output(3, levelTags[l]+msg)
	}
	if file != nil {
		file.Output(3, plainTags[l]+msg)
	}
}

func Debug(v ...interface{})            { emit(DEBUG, fmt.Sprint(v...)) }
func Debugf(f string, v ...interface{}) { emit(DEBUG, fmt.Sprintf(f, v...)) }
func Info(v ...interface{})             { emit(INFO, fmt.Sprint(v...)) }
func Infof(f string, v ...interface{})  { emit(INFO, fmt.Sprintf(f, v...)) }
func Warn(v ...interface{})             { emit(WARN, fmt.Sprint(v...)) }
func Warnf(f string, v ...interface{})  { emit(WARN, fmt.Sprintf(f, v...)) }
func Error(v ...interface{})            { emit(ERROR, fmt.Sprint(v...)) }
func Errorf(f string, v ...interface{}) { emit(ERROR, fmt.Sprintf(f, v...)) }

func Fatal(v ...interface{}) {
	emit(ERROR, fmt.Sprint(v...))
	os.Exit(1)
}

func Fatalf(f string, v ...interface{}) {
	emit(ERROR, fmt.Sprintf(f, v...))
	os.Exit(1)
}
