package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/persist"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/render"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	renderCosmetics bool
	renderFormat    string
	renderOutDir    string
	renderAddress   string
	renderTimeout   time.Duration
)

// renderCmd runs the full pipeline for one character
var renderCmd = &cobra.Command{
	Use:   "render <username>",
	Short: "Render a character through the render service",
	Long: `Fetch the character page, build the equipment model, and send it to
the render service. The artifact lands in the output directory as
<username>_<view>.<ext>.

By default the equipped class is rendered; --cosmetics switches the
class slot to the custom armor the player is wearing over it.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderCosmetics, "cosmetics", false, "render the custom armor instead of the equipped class")
	renderCmd.Flags().StringVar(&renderFormat, "format", "png", "output format (png or gif)")
	renderCmd.Flags().StringVarP(&renderOutDir, "output-dir", "o", "", "output directory (default from config)")
	renderCmd.Flags().StringVar(&renderAddress, "address", "", "render service address (default from config)")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 0, "render request timeout (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if renderAddress != "" {
		cfg.Renderer.Address = renderAddress
	}
	if renderTimeout > 0 {
		cfg.Renderer.RequestTimeout = renderTimeout
	}
	if renderOutDir != "" {
		cfg.Output.Dir = renderOutDir
	}

	var format render.Format
	switch renderFormat {
	case "png":
		format = render.FormatPNG
	case "gif":
		format = render.FormatGIF
	default:
		return fmt.Errorf("unknown format %q (want png or gif)", renderFormat)
	}

	view := render.ViewEquipped
	if renderCosmetics {
		view = render.ViewCosmetic
	}

	// History is best effort: an unreachable database costs the history
	// row, never the render.
	var history render.HistoryRecorder
	if cfg.Database.DSN != "" {
		db, err := openDatabase(cmd.Context(), cfg, log)
		if err != nil {
			log.Warn("database unavailable, render history disabled", zap.Error(err))
		} else {
			defer db.Close()
			history = persist.NewRenderRepo(db)
		}
	}

	o := render.NewOrchestrator(render.Deps{
		Fetcher:  charpage.NewClient(cfg.Upstream, nil, log),
		Builder:  render.NewBuilder(cfg.Renderer, log),
		Renderer: render.NewProtocolClient(cfg.Renderer, log),
		Prober:   render.NewProber(cfg.Renderer, log),
		History:  history,
	}, cfg.Output.Dir, log)

	res, err := o.Render(cmd.Context(), args[0], view, format)
	if err != nil {
		var pe *render.PipelineError
		if errors.As(err, &pe) {
			return fmt.Errorf("render failed while %s: %s", pe.Stage, pe.Reason)
		}
		return err
	}

	fmt.Printf("rendered %s (%s, %d bytes) -> %s\n", args[0], view, res.Bytes, res.Path)
	return nil
}
