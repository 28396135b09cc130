package render

import (
	"bytes"
	"context"
	"fmt"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"go.uber.org/zap"
)

// PageFetcher retrieves the raw character page HTML for a username.
type PageFetcher interface {
	FetchPage(ctx context.Context, username string) (string, error)
}

// ImageRenderer turns a built request into image bytes.
type ImageRenderer interface {
	Render(ctx context.Context, req *RenderRequest) ([]byte, Format, error)
}

// AvailabilityProber reports whether the render service is reachable.
type AvailabilityProber interface {
	IsAvailable(ctx context.Context) bool
}

// HistoryEntry describes one completed render for the history log.
type HistoryEntry struct {
	Username string
	View     ViewMode
	Format   Format
	Path     string
	Bytes    int
}

// HistoryRecorder persists completed renders. Recording is best effort:
// a recorder failure never fails the render itself.
type HistoryRecorder interface {
	RecordRender(ctx context.Context, entry HistoryEntry) error
}

// Deps carries the orchestrator's collaborators. History may be nil.
type Deps struct {
	Fetcher  PageFetcher
	Builder  *Builder
	Renderer ImageRenderer
	Prober   AvailabilityProber
	History  HistoryRecorder
}

// Orchestrator runs the full pipeline for one username: fetch, parse,
// build, probe, render, persist. Each run is independent; nothing is
// cached between calls and no stage is retried.
type Orchestrator struct {
	deps   Deps
	outDir string
	log    *zap.Logger
}

func NewOrchestrator(deps Deps, outDir string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{deps: deps, outDir: outDir, log: log}
}

// Result describes a successfully written artifact.
type Result struct {
	Path   string
	Bytes  int
	Format Format
}

// Render executes the pipeline and writes the artifact to the output
// directory. All failures come back as *PipelineError with the stage and
// classified reason filled in.
func (o *Orchestrator) Render(ctx context.Context, username string, view ViewMode, format Format) (*Result, error) {
	page, err := o.deps.Fetcher.FetchPage(ctx, username)
	if err != nil {
		return nil, &PipelineError{Stage: StageFetch, Reason: classifyUpstream(err), Err: err}
	}

	fv, err := charpage.ParseFlashVars(page)
	if err != nil {
		return nil, &PipelineError{Stage: StageParse, Reason: classifyUpstream(err), Err: err}
	}

	req := o.deps.Builder.Build(fv, view)
	if hidden := DecodeVisibility(fv.Visibility).Hidden(); len(hidden) > 0 {
		o.log.Debug("renderer will hide slots",
			zap.String("username", username),
			zap.Strings("slots", hidden),
		)
	}

	if !o.deps.Prober.IsAvailable(ctx) {
		return nil, &PipelineError{
			Stage: StageProbe, Reason: ReasonRendererOffline,
			Err: fmt.Errorf("render service not accepting connections"),
		}
	}

	img, gotFormat, err := o.deps.Renderer.Render(ctx, req)
	if err != nil {
		return nil, err
	}

	if format == FormatGIF && gotFormat != FormatGIF {
		img, err = pngToGIF(img)
		if err != nil {
			return nil, &PipelineError{Stage: StageRender, Reason: ReasonProtocolError, Err: err}
		}
	}

	path := filepath.Join(o.outDir, artifactName(username, view, format))
	if err := o.writeArtifact(path, img); err != nil {
		return nil, &PipelineError{Stage: StagePersist, Reason: ReasonWriteFailed, Err: err}
	}

	o.log.Info("render complete",
		zap.String("username", username),
		zap.String("view", string(view)),
		zap.String("path", path),
		zap.Int("bytes", len(img)),
	)

	o.recordHistory(ctx, HistoryEntry{
		Username: username,
		View:     view,
		Format:   format,
		Path:     path,
		Bytes:    len(img),
	})

	return &Result{Path: path, Bytes: len(img), Format: format}, nil
}

func (o *Orchestrator) writeArtifact(path string, img []byte) error {
	if err := os.MkdirAll(o.outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func (o *Orchestrator) recordHistory(ctx context.Context, entry HistoryEntry) {
	if o.deps.History == nil {
		return
	}
	if err := o.deps.History.RecordRender(ctx, entry); err != nil {
		o.log.Warn("render history not recorded",
			zap.String("username", entry.Username),
			zap.Error(err),
		)
	}
}

// artifactName builds the deterministic output filename. Rendering the
// same character twice in the same view overwrites the previous artifact.
func artifactName(username string, view ViewMode, format Format) string {
	name := strings.ToLower(username)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("%s_%s.%s", name, view, format.Ext())
}

// pngToGIF re-encodes a PNG payload as a single-frame GIF for callers that
// asked for GIF output from a PNG-only service build.
func pngToGIF(data []byte) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	var buf bytes.Buffer
	if err := gif.Encode(&buf, src, nil); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}
