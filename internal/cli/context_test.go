package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/fsctl/internal/config"
)

func TestGetExecutionContext(t *testing.T) {
	t.Run("returns stored context", func(t *testing.T) {
		ec := &ExecutionContext{Config: config.DefaultConfig(), Session: "s1", OutputFormat: OutputJSON}
		ctx := WithExecutionContext(context.Background(), ec)
		assert.Same(t, ec, GetExecutionContext(ctx))
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		ec := GetExecutionContext(context.Background())
		assert.Equal(t, OutputText, ec.OutputFormat)
		assert.Equal(t, config.DefaultConfig(), ec.Config)
		assert.Empty(t, ec.Session)
	})
}
