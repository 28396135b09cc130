package render

import (
	"context"
	"net"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"go.uber.org/zap"
)

// Prober answers one question: is the render service accepting connections
// right now. The answer is advisory only and can be stale by the time a
// real request goes out.
type Prober struct {
	address string
	timeout time.Duration
	log     *zap.Logger
}

func NewProber(cfg config.Renderer, log *zap.Logger) *Prober {
	return &Prober{
		address: cfg.Address,
		timeout: cfg.ProbeTimeout,
		log:     log,
	}
}

// IsAvailable dials the service and immediately closes the connection. It
// never returns an error: any dial failure means "not available".
func (p *Prober) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		p.log.Debug("render service probe failed",
			zap.String("address", p.address),
			zap.Error(err),
		)
		return false
	}
	conn.Close()
	return true
}
