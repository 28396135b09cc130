// Package scanner serves compact character summaries over a one-shot TCP
// protocol: the client sends a bare username, the server replies with one
// JSON document and closes.
package scanner

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"go.uber.org/zap"
)

// SummaryLoader supplies the equipment summary for a username.
type SummaryLoader interface {
	LoadSummary(ctx context.Context, username string) (charpage.Summary, error)
}

// Server accepts TCP connections and answers one summary request each.
type Server struct {
	listener net.Listener
	loader   SummaryLoader
	cfg      config.CharData
	log      *zap.Logger
	closeCh  chan struct{}
	closing  sync.Once
	wg       sync.WaitGroup
}

func NewServer(cfg config.CharData, loader SummaryLoader, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: ln,
		loader:   loader,
		cfg:      cfg,
		log:      log,
		closeCh:  make(chan struct{}),
	}, nil
}

// AcceptLoop runs in its own goroutine. Each connection gets its own
// handler goroutine; connections are independent and never multiplexed.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return // server shutting down
			default:
			}
			s.log.Error("accept failed", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(conn)
		}()
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	buf := make([]byte, s.cfg.MaxRequestBytes)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		s.log.Debug("request read failed",
			zap.String("remote", conn.RemoteAddr().String()),
			zap.Error(err),
		)
		return
	}

	username := strings.TrimSpace(string(buf[:n]))
	s.log.Info("summary requested",
		zap.String("username", username),
		zap.String("remote", conn.RemoteAddr().String()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ReadTimeout)
	defer cancel()

	var payload any
	summary, err := s.loader.LoadSummary(ctx, username)
	switch {
	case err == nil:
		payload = summary
	case errors.Is(err, charpage.ErrNotFound):
		payload = errorReply{Error: "Character is inactive or does not exist."}
	case errors.Is(err, charpage.ErrMalformedPage):
		payload = errorReply{Error: "Could not find flashvars in the page. The page structure may have changed."}
	default:
		s.log.Warn("summary lookup failed", zap.String("username", username), zap.Error(err))
		payload = errorReply{Error: "Failed to retrieve character data."}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("reply marshal failed", zap.Error(err))
		return
	}

	conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	if _, err := conn.Write(body); err != nil {
		s.log.Debug("reply write failed",
			zap.String("remote", conn.RemoteAddr().String()),
			zap.Error(err),
		)
	}
}

type errorReply struct {
	Error string `json:"error"`
}

// Shutdown stops accepting connections and waits for in-flight handlers.
// Safe to call more than once.
func (s *Server) Shutdown() {
	s.closing.Do(func() {
		close(s.closeCh)
		s.listener.Close()
	})
	s.wg.Wait()
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
