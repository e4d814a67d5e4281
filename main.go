package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/ggregion/logger"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "0.1.0"
	commit  = "none"
	date    = "unknown"
)

// usageError is a command line mistake; it exits with ExitUsage.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {

	// Establish logger
	if err := logger.InitLogger(zapcore.InfoLevel); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return ExitError
	}
	defer logger.Sync() // Make sure that the buffered is flushed.

	// Try load env
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env found, using local environment")
	}

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return ExitSuccess
	}

	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "ERROR: %v\n", usage.err)
		return ExitUsage
	}
	logger.Error("Run failed", zap.Error(err))
	fmt.Fprintf(stderr, "ERROR: %v\n", err)
	return ExitError
}
