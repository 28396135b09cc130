package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"go.uber.org/zap"
)

// envelope is the request framing the render service reads: a single JSON
// document tagged with the request type.
type envelope struct {
	Type string         `json:"type"`
	Data *RenderRequest `json:"data"`
}

// reply is the service response. The Base64 payload key varies between
// service builds; Error set means the service rejected this request.
type reply struct {
	Error  string `json:"error"`
	PNG    string `json:"png"`
	Image  string `json:"image"`
	Data   string `json:"data"`
	Result string `json:"result"`
	Format string `json:"format"`
}

// ProtocolClient speaks the render service's one-shot TCP protocol: open,
// send one JSON request, read one reply, close. Connections are never
// reused; exactly one request rides each connection.
type ProtocolClient struct {
	address string
	timeout time.Duration
	framing string // "newline" or "half-close"
	log     *zap.Logger
}

func NewProtocolClient(cfg config.Renderer, log *zap.Logger) *ProtocolClient {
	return &ProtocolClient{
		address: cfg.Address,
		timeout: cfg.RequestTimeout,
		framing: cfg.Framing,
		log:     log,
	}
}

// Render sends one render request and returns the decoded image bytes and
// the format the service reported. The request timeout bounds the whole
// exchange; cancelling ctx closes the socket promptly.
func (c *ProtocolClient) Render(ctx context.Context, req *RenderRequest) ([]byte, Format, error) {
	payload, err := json.Marshal(envelope{Type: "character", Data: req})
	if err != nil {
		return nil, "", &PipelineError{Stage: StageRender, Reason: ReasonProtocolError, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return nil, "", &PipelineError{Stage: StageRender, Reason: classifyTransport(err), Err: err}
	}
	defer conn.Close()

	// Close the socket as soon as the caller loses interest.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-watchDone:
		}
	}()

	if dl, ok := ctx.Deadline(); ok {
		conn.SetDeadline(dl)
	}

	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, "", c.transportError(ctx, err)
	}
	if c.framing == "half-close" {
		if tc, ok := conn.(*net.TCPConn); ok {
			if err := tc.CloseWrite(); err != nil {
				return nil, "", c.transportError(ctx, err)
			}
		}
	}

	body, err := io.ReadAll(conn)
	if err != nil {
		return nil, "", c.transportError(ctx, err)
	}

	img, format, err := decodeReply(body)
	if err != nil {
		return nil, "", err
	}
	c.log.Debug("render reply decoded",
		zap.Int("bytes", len(img)),
		zap.String("format", string(format)),
	)
	return img, format, nil
}

// transportError prefers the context error over the socket error it caused:
// a deadline-closed socket reads as "use of closed connection" otherwise.
func (c *ProtocolClient) transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = fmt.Errorf("%w (%v)", ctxErr, err)
	}
	return &PipelineError{Stage: StageRender, Reason: classifyTransport(err), Err: err}
}

// decodeReply turns the service response into raw image bytes. The service
// replies either with a JSON object (Base64 under png/image/data/result,
// error string on rejection) or with a bare Base64 body.
func decodeReply(body []byte) ([]byte, Format, error) {
	text := bytes.TrimSpace(body)
	if len(text) == 0 {
		return nil, "", &PipelineError{
			Stage: StageRender, Reason: ReasonProtocolError,
			Err: fmt.Errorf("empty reply"),
		}
	}

	b64 := string(text)
	format := FormatPNG
	if text[0] == '{' {
		var r reply
		if err := json.Unmarshal(text, &r); err != nil {
			return nil, "", &PipelineError{Stage: StageRender, Reason: ReasonProtocolError, Err: err}
		}
		if r.Error != "" {
			return nil, "", &PipelineError{
				Stage: StageRender, Reason: ReasonRenderFailed,
				Err: fmt.Errorf("service rejected request: %s", r.Error),
			}
		}
		b64 = firstNonEmpty(r.PNG, r.Image, r.Data, r.Result)
		if b64 == "" {
			return nil, "", &PipelineError{
				Stage: StageRender, Reason: ReasonProtocolError,
				Err: fmt.Errorf("reply missing image payload"),
			}
		}
		if r.Format == string(FormatGIF) {
			format = FormatGIF
		}
	}

	img, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", &PipelineError{Stage: StageRender, Reason: ReasonProtocolError, Err: err}
	}
	return img, format, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
