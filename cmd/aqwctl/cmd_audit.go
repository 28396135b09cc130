package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/persist"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/verify"
	"github.com/spf13/cobra"
)

var (
	auditRecent time.Duration
	auditForget string
)

// auditCmd inspects the stored verification attempts
var auditCmd = &cobra.Command{
	Use:   "audit [ign]",
	Short: "Inspect the verification audit trail",
	Long: `Query the stored verification attempts. With an in-game name, the most
recent attempt for that character is shown. --recent lists every
character that passed verification within the given window, and
--forget removes one stored attempt by its record id.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().DurationVar(&auditRecent, "recent", 0, "list characters verified within this window (e.g. 24h)")
	auditCmd.Flags().StringVar(&auditForget, "forget", "", "delete the stored attempt with this record id")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := openDatabase(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := persist.NewVerificationRepo(db)

	switch {
	case auditForget != "":
		id, err := uuid.Parse(auditForget)
		if err != nil {
			return fmt.Errorf("bad record id %q: %w", auditForget, err)
		}
		if err := repo.DeleteRecord(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("deleted record %s\n", id)
		return nil

	case auditRecent > 0:
		igns, err := repo.VerifiedSince(cmd.Context(), time.Now().Add(-auditRecent))
		if err != nil {
			return err
		}
		if len(igns) == 0 {
			fmt.Printf("no characters verified in the last %s\n", auditRecent)
			return nil
		}
		for _, ign := range igns {
			fmt.Println(ign)
		}
		return nil

	case len(args) == 1:
		rec, err := repo.LatestForIGN(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("no attempts recorded for %q", args[0])
		}
		fmt.Print(recordLines(rec))
		return nil
	}
	return fmt.Errorf("give an in-game name, --recent, or --forget")
}

// recordLines formats one stored verification attempt.
func recordLines(rec *verify.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Record:  %s\n", rec.ID)
	fmt.Fprintf(&b, "Checked: %s\n", rec.CheckedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "IGN:     %s (page showed %q) %s\n", rec.IGN, rec.PageName, matchMark(rec.NameMatch))
	fmt.Fprintf(&b, "Guild:   %s (page showed %q) %s\n", orNA(rec.Guild), rec.PageGuild, matchMark(rec.GuildMatch))
	if rec.Verified {
		b.WriteString("Result:  verified\n")
	} else {
		b.WriteString("Result:  not verified\n")
	}
	return b.String()
}
