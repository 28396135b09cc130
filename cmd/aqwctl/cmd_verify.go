package main

import (
	"fmt"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/persist"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/verify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyGuild string

// verifyCmd checks a claimed identity against the character page
var verifyCmd = &cobra.Command{
	Use:   "verify <ign>",
	Short: "Check a claimed identity against the character page",
	Long: `Compare a claimed in-game name (and optionally guild) against what the
character page shows. Comparison is case-insensitive and ignores extra
whitespace.

When a database is configured, every attempt is written to the audit
trail whether it matched or not.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyGuild, "guild", "", "claimed guild (leave empty for none)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	var recorder verify.Recorder
	if cfg.Database.DSN != "" {
		db, err := openDatabase(cmd.Context(), cfg, log)
		if err != nil {
			log.Warn("database unavailable, audit trail disabled", zap.Error(err))
		} else {
			defer db.Close()
			recorder = persist.NewVerificationRepo(db)
		}
	}

	svc := verify.NewService(charpage.NewClient(cfg.Upstream, nil, log), recorder, log)
	res, err := svc.Verify(cmd.Context(), verify.Claim{IGN: args[0], Guild: verifyGuild})
	if err != nil {
		return err
	}

	fmt.Printf("IGN:   %s (page shows %q)\n", matchMark(res.NameMatch), res.PageName)
	fmt.Printf("Guild: %s (page shows %q)\n", matchMark(res.GuildMatch), res.PageGuild)
	if res.Verified() {
		fmt.Println("verification successful")
		return nil
	}
	return fmt.Errorf("verification failed: details do not match the character page")
}

func matchMark(ok bool) string {
	if ok {
		return "MATCH"
	}
	return "MISMATCH"
}
