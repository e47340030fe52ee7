package cli

import (
	"context"

	"github.com/mrz1836/fsctl/internal/config"
)

// ExecutionContext holds state resolved once per invocation and shared by
// every subcommand.
type ExecutionContext struct {
	// Config is the merged configuration.
	Config *config.Config

	// Session identifies this invocation in log output.
	Session string

	// OutputFormat is the validated --output value.
	OutputFormat string
}

// executionContextKey is the context key for ExecutionContext.
type executionContextKey struct{}

// WithExecutionContext stores ec in ctx.
func WithExecutionContext(ctx context.Context, ec *ExecutionContext) context.Context {
	return context.WithValue(ctx, executionContextKey{}, ec)
}

// GetExecutionContext returns the ExecutionContext stored in ctx. When none
// is stored it returns one with default configuration and text output, so
// commands behave sensibly when run without the root command.
func GetExecutionContext(ctx context.Context) *ExecutionContext {
	if ctx != nil {
		if ec, ok := ctx.Value(executionContextKey{}).(*ExecutionContext); ok && ec != nil {
			return ec
		}
	}
	return &ExecutionContext{
		Config:       config.DefaultConfig(),
		OutputFormat: OutputText,
	}
}
