// Package script runs a command-line entry point with logging configured,
// SIGINT wired to context cancellation, and errors mapped to exit codes.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/amp-labs/dict/logger"
)

// Option configures a Script.
type Option func(script *Script)

// Exit returns an error that makes the script exit with code without
// logging anything.
func Exit(code int) error {
	return &exitError{code: code}
}

// ExitWithError returns an error that makes the script exit with code 1
// after logging err.
func ExitWithError(err error) error {
	return &exitError{err: err, code: 1}
}

// ExitWithCode returns an error that makes the script exit with code after
// logging err.
func ExitWithCode(code int, err error) error {
	return &exitError{err: err, code: code}
}

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string {
	msg := "exit " + strconv.Itoa(e.code)

	if e.err != nil {
		return msg + ": " + e.err.Error()
	}

	return msg
}

func (e *exitError) Unwrap() error {
	return e.err
}

// LogLevel sets the minimum log level for the script's logger.
func LogLevel(lvl slog.Level) Option {
	return func(script *Script) {
		script.loggerOpts = append(script.loggerOpts, func(options *logger.Options) {
			options.MinLevel = lvl
		})
	}
}

// LogOutput sets the output writer for the script's logger.
func LogOutput(writer io.Writer) Option {
	return func(script *Script) {
		script.loggerOpts = append(script.loggerOpts, func(options *logger.Options) {
			options.Output = writer
		})
	}
}

// Script is a runnable entry point.
type Script struct {
	name       string
	loggerOpts []logger.Option
}

// New creates a Script with the given name, used as the logging subsystem.
func New(scriptName string, opts ...Option) *Script {
	script := &Script{name: scriptName}

	for _, opt := range opts {
		opt(script)
	}

	return script
}

// Run executes f and exits the process with the resulting code. The context
// passed to f is canceled on SIGINT.
func (s *Script) Run(f func(ctx context.Context) error) {
	os.Exit(s.run(f))
}

func (s *Script) run(callback func(ctx context.Context) error) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_ = logger.ConfigureLogging(ctx, s.name, s.loggerOpts...)

	return s.exitCode(ctx, callback)
}

func (s *Script) exitCode(ctx context.Context, callback func(ctx context.Context) error) int {
	log := logger.Get(ctx)

	if callback == nil {
		log.Error("callback is nil")

		return 1
	}

	err := callback(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.err != nil {
			log.Error("error running script", "error", exitErr.err)
		}

		return exitErr.code
	}

	log.Error("error running script", "error", fmt.Sprintf("%v", err))

	return 1
}
