package main

import (
	"fmt"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/render"
	"github.com/spf13/cobra"
)

var probeAddress string

// probeCmd checks render service availability
var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check whether the render service is reachable",
	Long: `Dial the render service and report whether it accepts connections.
Exits non-zero when the service is offline.`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&probeAddress, "address", "", "render service address (default from config)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if probeAddress != "" {
		cfg.Renderer.Address = probeAddress
	}

	if !render.NewProber(cfg.Renderer, log).IsAvailable(cmd.Context()) {
		return fmt.Errorf("render service at %s is offline", cfg.Renderer.Address)
	}
	fmt.Printf("render service at %s is available\n", cfg.Renderer.Address)
	return nil
}
