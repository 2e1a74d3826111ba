package main

import (
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe(t *testing.T) {
	t.Run("Returns when the port is already bound", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
		quit := make(chan os.Signal, 1)

		done := make(chan error, 1)
		go func() { done <- serve(srv, quit) }()

		select {
		case err := <-done:
			require.Error(t, err)
			assert.Contains(t, err.Error(), ln.Addr().String())
		case <-time.After(5 * time.Second):
			t.Fatal("serve kept waiting after the listener failed")
		}
	})

	t.Run("Shuts down on a signal", func(t *testing.T) {
		srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
		quit := make(chan os.Signal, 1)
		quit <- syscall.SIGTERM

		assert.NoError(t, serve(srv, quit))
	})
}
