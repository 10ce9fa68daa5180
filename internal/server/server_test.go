package server_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kegliz/naqc/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryUpdateAndGet(t *testing.T) {
	reg := server.NewRegistry()
	_, ok := reg.Get("run-1")
	assert.False(t, ok)

	reg.Update("run-1", server.StageLayer)
	status, ok := reg.Get("run-1")
	require.True(t, ok)
	assert.Equal(t, server.StageLayer, status.Stage)

	reg.Update("run-1", server.StageSMT)
	status, ok = reg.Get("run-1")
	require.True(t, ok)
	assert.Equal(t, server.StageSMT, status.Stage)
}

func TestRegistryFailPreservesLastStage(t *testing.T) {
	reg := server.NewRegistry()
	reg.Update("run-2", server.StageOptimizer)
	reg.Fail("run-2", errors.New("boom"))

	status, ok := reg.Get("run-2")
	require.True(t, ok)
	assert.Equal(t, server.StageOptimizer, status.Stage)
	assert.Equal(t, "boom", status.Error)
}

func TestServerListenAndShutdown(t *testing.T) {
	reg := server.NewRegistry()
	s := server.New(server.Options{Version: "test"}, reg)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Listen(0, true) }()

	// give the listener a moment to bind before shutting down.
	time.Sleep(20 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.Error(t, err) // http.ErrServerClosed
	case <-time.After(time.Second):
		t.Fatal("server did not shut down in time")
	}
}
