package main

import (
	"fmt"
	"strings"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/persist"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists stored renders for a character
var historyCmd = &cobra.Command{
	Use:   "history <username>",
	Short: "List recent renders for a character",
	Long: `Show the render history rows recorded for a character, newest first.
Requires a configured database; the render command writes a row for
every artifact it produces.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum rows to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	rows, err := persist.NewRenderRepo(db).RecentForUser(cmd.Context(), args[0], historyLimit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Printf("no renders recorded for %s\n", args[0])
		return nil
	}
	fmt.Print(historyLines(rows))
	return nil
}

// historyLines formats history rows one per line, newest first, matching
// the repo's query order.
func historyLines(rows []persist.HistoryRow) string {
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s  %-8s %-3s %7d bytes  %s\n",
			row.RenderedAt.Format("2006-01-02 15:04:05"),
			row.View, row.Format, row.Bytes, row.Path,
		)
	}
	return b.String()
}
