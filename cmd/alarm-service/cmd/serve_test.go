package cmd

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestServeReleasesHTTPPortWhenGRPCBindFails(t *testing.T) {
	common.SetTestLoggerNop()
	gin.SetMode(gin.TestMode)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := fileConfig(t)
	cfg.HTTPHostPort = freeAddr(t)
	cfg.GRPCHostPort = busy.Addr().String()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.Error(t, serve(ctx, cfg))

	// nothing is left listening on the HTTP address
	l, err := net.Listen("tcp", cfg.HTTPHostPort)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
}

func TestServeStopsOnCancel(t *testing.T) {
	common.SetTestLoggerNop()
	gin.SetMode(gin.TestMode)

	cfg := fileConfig(t)
	cfg.HTTPHostPort = freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, cfg)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.HTTPHostPort + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
