package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
)

// Stage names one step of the render pipeline. Every failure carries the
// stage it happened in; no stage is retried automatically.
type Stage string

const (
	StageFetch   Stage = "fetching"
	StageParse   Stage = "parsing"
	StageBuild   Stage = "building_model"
	StageProbe   Stage = "probing_renderer"
	StageRender  Stage = "rendering"
	StagePersist Stage = "persisting"
)

// FailureReason is the user-reportable failure taxonomy.
type FailureReason string

const (
	ReasonNotFound          FailureReason = "not_found"
	ReasonNetworkError      FailureReason = "network_error"
	ReasonUpstreamError     FailureReason = "upstream_error"
	ReasonMalformedPage     FailureReason = "malformed_page"
	ReasonRendererOffline   FailureReason = "renderer_offline"
	ReasonConnectionRefused FailureReason = "connection_refused"
	ReasonConnectionReset   FailureReason = "connection_reset"
	ReasonTimeout           FailureReason = "timeout"
	ReasonProtocolError     FailureReason = "protocol_error"
	ReasonRenderFailed      FailureReason = "render_failed"
	ReasonWriteFailed       FailureReason = "write_failed"
)

// PipelineError is a stage-tagged, classified failure. It wraps the
// underlying error so callers can still errors.Is/As into it.
type PipelineError struct {
	Stage  Stage
	Reason FailureReason
	Err    error
}

func (e *PipelineError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Reason, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason from any error returned by this
// package, or "" for foreign errors.
func ReasonOf(err error) FailureReason {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return ""
}

// classifyUpstream maps charpage failures onto the taxonomy.
func classifyUpstream(err error) FailureReason {
	switch {
	case errors.Is(err, charpage.ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, charpage.ErrMalformedPage):
		return ReasonMalformedPage
	case errors.Is(err, charpage.ErrUpstream):
		return ReasonUpstreamError
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	default:
		return ReasonNetworkError
	}
}

// classifyTransport maps socket-level failures from the render service
// connection onto the taxonomy.
func classifyTransport(err error) FailureReason {
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return ReasonConnectionRefused
	case errors.Is(err, syscall.ECONNRESET):
		return ReasonConnectionReset
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ReasonTimeout
	}
	return ReasonNetworkError
}
