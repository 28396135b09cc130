// aqwctl is the operator CLI: render characters, look up pages, query the
// wiki, and run verifications against the same internals charsvc serves.
package main

import (
	"fmt"
	"os"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "aqwctl",
	Short: "Character page tooling: render, inspect, verify, wiki lookup",
	Long: `aqwctl drives the character pipeline from the command line.

Available subcommands:
  render  - Render a character through the render service
  history - List recent renders for a character
  char    - Show a character's page profile
  wiki    - Look up an item or shop on the community wiki
  verify  - Check a claimed identity against the character page
  audit   - Inspect the verification audit trail
  probe   - Check whether the render service is reachable
  topics  - List or show help topics`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML); defaults apply when unset")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(charCmd)
	rootCmd.AddCommand(wikiCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(topicsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the CLI logger. Subcommand flags
// override config values after this returns.
func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Defaults()
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, nil, err
		}
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("bad log level %q", logLevel)
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	zapCfg.EncoderConfig.ConsoleSeparator = "  "
	zapCfg.DisableCaller = true
	zapCfg.DisableStacktrace = true
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
