package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const samplePage = `<html><body>
<embed flashvars="strName=Yenne&amp;intLevel=100&amp;strGender=F&amp;strClassName=Void%20Highlord&amp;strClassFile=classes/voidhighlord.swf&amp;strClassLink=voidhighlord&amp;intColorHair=6697728" />
</body></html>`

type stubFetcher struct {
	page string
	err  error
}

func (s stubFetcher) FetchPage(context.Context, string) (string, error) {
	return s.page, s.err
}

type stubRenderer struct {
	img    []byte
	format Format
	err    error
	called bool
}

func (s *stubRenderer) Render(context.Context, *RenderRequest) ([]byte, Format, error) {
	s.called = true
	return s.img, s.format, s.err
}

type stubProber struct{ up bool }

func (s stubProber) IsAvailable(context.Context) bool { return s.up }

type stubHistory struct {
	entries []HistoryEntry
	err     error
}

func (s *stubHistory) RecordRender(_ context.Context, e HistoryEntry) error {
	s.entries = append(s.entries, e)
	return s.err
}

func testOrchestrator(t *testing.T, deps Deps) (*Orchestrator, string) {
	t.Helper()
	outDir := t.TempDir()
	if deps.Builder == nil {
		deps.Builder = NewBuilder(config.Renderer{}, zaptest.NewLogger(t))
	}
	return NewOrchestrator(deps, outDir, zaptest.NewLogger(t)), outDir
}

func TestRenderPipeline(t *testing.T) {
	img := []byte("fake png bytes")
	history := &stubHistory{}
	o, outDir := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: samplePage},
		Renderer: &stubRenderer{img: img, format: FormatPNG},
		Prober:   stubProber{up: true},
		History:  history,
	})

	res, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatPNG)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "yenne_equipped.png"), res.Path)
	assert.Equal(t, len(img), res.Bytes)
	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, img, written)

	require.Len(t, history.entries, 1)
	assert.Equal(t, "Yenne", history.entries[0].Username)
	assert.Equal(t, ViewEquipped, history.entries[0].View)
}

func TestRenderSanitizesArtifactName(t *testing.T) {
	o, outDir := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: samplePage},
		Renderer: &stubRenderer{img: []byte("x"), format: FormatPNG},
		Prober:   stubProber{up: true},
	})

	res, err := o.Render(context.Background(), "../Evil Name", ViewCosmetic, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "___evil_name_cosmetic.png"), res.Path)
}

func TestRenderOfflineShortCircuit(t *testing.T) {
	renderer := &stubRenderer{img: []byte("x")}
	o, _ := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: samplePage},
		Renderer: renderer,
		Prober:   stubProber{up: false},
	})

	_, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatPNG)
	require.Error(t, err)
	assert.Equal(t, ReasonRendererOffline, ReasonOf(err))
	assert.False(t, renderer.called, "renderer must not be dialed when the probe fails")
}

func TestRenderNotFound(t *testing.T) {
	o, _ := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{err: fmt.Errorf("%w: no such character", charpage.ErrNotFound)},
		Renderer: &stubRenderer{},
		Prober:   stubProber{up: true},
	})

	_, err := o.Render(context.Background(), "nobody", ViewEquipped, FormatPNG)
	require.Error(t, err)
	assert.Equal(t, ReasonNotFound, ReasonOf(err))

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageFetch, pe.Stage)
}

func TestRenderMalformedPage(t *testing.T) {
	o, _ := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: "<html><body>no parameters here</body></html>"},
		Renderer: &stubRenderer{},
		Prober:   stubProber{up: true},
	})

	_, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatPNG)
	require.Error(t, err)
	assert.Equal(t, ReasonMalformedPage, ReasonOf(err))

	var pe *PipelineError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StageParse, pe.Stage)
}

func TestRenderHistoryFailureIsNonFatal(t *testing.T) {
	o, _ := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: samplePage},
		Renderer: &stubRenderer{img: []byte("x"), format: FormatPNG},
		Prober:   stubProber{up: true},
		History:  &stubHistory{err: errors.New("db down")},
	})

	_, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatPNG)
	assert.NoError(t, err)
}

func TestRenderLogsHiddenSlots(t *testing.T) {
	const page = `<html><body>
<embed flashvars="strName=Yenne&amp;intLevel=100&amp;ia1=5" />
</body></html>`

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	o := NewOrchestrator(Deps{
		Fetcher:  stubFetcher{page: page},
		Builder:  NewBuilder(config.Renderer{}, log),
		Renderer: &stubRenderer{img: []byte("x"), format: FormatPNG},
		Prober:   stubProber{up: true},
	}, t.TempDir(), log)

	_, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatPNG)
	require.NoError(t, err)

	entries := logs.FilterMessage("renderer will hide slots").All()
	require.Len(t, entries, 1)
	assert.Equal(t, []interface{}{"cape", "pet"}, entries[0].ContextMap()["slots"])
}

func TestRenderTranscodesToGIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	o, outDir := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: samplePage},
		Renderer: &stubRenderer{img: buf.Bytes(), format: FormatPNG},
		Prober:   stubProber{up: true},
	})

	res, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatGIF)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "yenne_equipped.gif"), res.Path)

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(written, []byte("GIF8")))
}

func TestRenderGIFTranscodeRejectsBadBytes(t *testing.T) {
	o, _ := testOrchestrator(t, Deps{
		Fetcher:  stubFetcher{page: samplePage},
		Renderer: &stubRenderer{img: []byte("not a png"), format: FormatPNG},
		Prober:   stubProber{up: true},
	})

	_, err := o.Render(context.Background(), "Yenne", ViewEquipped, FormatGIF)
	require.Error(t, err)
	assert.Equal(t, ReasonProtocolError, ReasonOf(err))
}
