package render

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestIsAvailable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	// The probe connects and immediately hangs up; drain accepts so the
	// listener backlog stays clean.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	p := NewProber(config.Renderer{
		Address:      ln.Addr().String(),
		ProbeTimeout: time.Second,
	}, zaptest.NewLogger(t))

	assert.True(t, p.IsAvailable(context.Background()))
}

func TestIsAvailableDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	p := NewProber(config.Renderer{
		Address:      addr,
		ProbeTimeout: time.Second,
	}, zaptest.NewLogger(t))

	assert.False(t, p.IsAvailable(context.Background()))
}
