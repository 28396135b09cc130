package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
)

// Client queries a running summary service. One request per connection.
type Client struct {
	address string
	timeout time.Duration
}

func NewClient(address string, timeout time.Duration) *Client {
	return &Client{address: address, timeout: timeout}
}

// GetSummary sends a username and decodes the JSON reply. A reply carrying
// an error field becomes a plain error.
func (c *Client) GetSummary(ctx context.Context, username string) (charpage.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return charpage.Summary{}, fmt.Errorf("dial summary service: %w", err)
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	}

	if _, err := conn.Write([]byte(username)); err != nil {
		return charpage.Summary{}, fmt.Errorf("send request: %w", err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.CloseWrite()
	}

	body, err := io.ReadAll(conn)
	if err != nil {
		return charpage.Summary{}, fmt.Errorf("read reply: %w", err)
	}
	if len(body) == 0 {
		return charpage.Summary{}, fmt.Errorf("empty reply from summary service")
	}

	var reply struct {
		charpage.Summary
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return charpage.Summary{}, fmt.Errorf("decode reply: %w", err)
	}
	if reply.Error != "" {
		return charpage.Summary{}, fmt.Errorf("summary service: %s", reply.Error)
	}
	return reply.Summary, nil
}
