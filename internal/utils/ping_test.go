package utils

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveStatus(t *testing.T, status int) (string, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})}
	go func() { _ = srv.Serve(ln) }()
	return strconv.Itoa(ln.Addr().(*net.TCPAddr).Port), func() { _ = srv.Close() }
}

func TestPingServer(t *testing.T) {
	ctx := context.Background()

	t.Run("Healthy", func(t *testing.T) {
		port, stop := serveStatus(t, http.StatusOK)
		defer stop()
		assert.NoError(t, PingServer(ctx, port))
	})

	t.Run("UnhealthyStoreStillUp", func(t *testing.T) {
		port, stop := serveStatus(t, http.StatusServiceUnavailable)
		defer stop()
		assert.NoError(t, PingServer(ctx, port))
	})

	t.Run("ServerError", func(t *testing.T) {
		port, stop := serveStatus(t, http.StatusInternalServerError)
		defer stop()
		assert.Error(t, PingServer(ctx, port))
	})

	t.Run("NotListening", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
		require.NoError(t, ln.Close())
		assert.Error(t, PingServer(ctx, port))
	})
}

func TestWaitForServer(t *testing.T) {
	port, stop := serveStatus(t, http.StatusOK)
	defer stop()
	assert.NoError(t, WaitForServer(context.Background(), port, 2*time.Second))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closed := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)
	require.NoError(t, ln.Close())
	assert.Error(t, WaitForServer(context.Background(), closed, 200*time.Millisecond))
}

func TestServerURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:3000", ServerURL("3000"))
}
