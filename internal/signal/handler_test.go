package signal

import (
	"context"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHandler_Signal_CancelsContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHandler(context.Background())
	defer h.Stop()

	assert.Nil(t, h.Received())
	h.handleSignal(syscall.SIGTERM)

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.Equal(t, syscall.SIGTERM, h.Received())

	select {
	case <-h.Interrupted():
	default:
		t.Fatal("interrupted channel should be closed after signal")
	}
}

func TestHandler_OnlyFirstSignalCounts(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHandler(context.Background())
	defer h.Stop()

	h.handleSignal(syscall.SIGINT)
	h.handleSignal(syscall.SIGTERM)

	assert.Equal(t, syscall.SIGINT, h.Received())
}

func TestHandler_Stop(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHandler(context.Background())
	h.Stop()
	h.Stop()

	require.Error(t, h.Context().Err())
	assert.Nil(t, h.Received())

	select {
	case <-h.Interrupted():
		t.Fatal("stop is not an interrupt")
	default:
	}
}

func TestHandler_ParentCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	parent, cancel := context.WithCancel(context.Background())
	h := NewHandler(parent)
	defer h.Stop()

	cancel()
	<-h.Context().Done()

	require.ErrorIs(t, h.Context().Err(), context.Canceled)
	assert.Nil(t, h.Received())
}
