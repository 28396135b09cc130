package main

import (
	"fmt"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/scanner"
	"github.com/spf13/cobra"
)

var (
	charService string
	charSummary bool
)

// charCmd shows a character's page profile
var charCmd = &cobra.Command{
	Use:   "char <username>",
	Short: "Show a character's page profile",
	Long: `Fetch and display the character page profile: level, class, faction,
guild, and badge counts.

With --summary the compact equipment listing is shown instead. With
--service the summary comes from a running charsvc instance rather than
a direct page fetch.`,
	Args: cobra.ExactArgs(1),
	RunE: runChar,
}

func init() {
	charCmd.Flags().BoolVar(&charSummary, "summary", false, "show the equipment summary instead of the profile")
	charCmd.Flags().StringVar(&charService, "service", "", "query a running summary service at this address")
}

func runChar(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()
	username := args[0]

	if charService != "" {
		c := scanner.NewClient(charService, cfg.CharData.RequestTimeout)
		sum, err := c.GetSummary(cmd.Context(), username)
		if err != nil {
			return err
		}
		printSummary(sum)
		return nil
	}

	pages := charpage.NewClient(cfg.Upstream, nil, log)

	if charSummary {
		sum, err := pages.LoadSummary(cmd.Context(), username)
		if err != nil {
			return err
		}
		printSummary(sum)
		return nil
	}

	p, err := pages.LoadProfile(cmd.Context(), username)
	if err != nil {
		return err
	}

	fmt.Printf("Name:      %s\n", p.Name)
	if p.Tagline != "" {
		fmt.Printf("Tagline:   %s\n", p.Tagline)
	}
	fmt.Printf("Level:     %s\n", orNA(p.Level))
	fmt.Printf("Class:     %s\n", orNA(p.Class))
	fmt.Printf("Faction:   %s\n", orNA(p.Faction))
	fmt.Printf("Guild:     %s\n", orNA(p.Guild))
	if p.CCID != 0 {
		fmt.Printf("Badges:    %d\n", p.BadgeCount)
		fmt.Printf("Inventory: %d items\n", p.InventoryCount)
	}
	return nil
}

func printSummary(sum charpage.Summary) {
	fmt.Printf("Name:   %s\n", sum.Name)
	fmt.Printf("Level:  %s\n", sum.Level)
	fmt.Printf("Class:  %s\n", sum.Class)
	fmt.Printf("Helm:   %s\n", sum.Helm)
	fmt.Printf("Armor:  %s\n", sum.Armor)
	fmt.Printf("Cape:   %s\n", sum.Cape)
	fmt.Printf("Weapon: %s\n", sum.Weapon)
	fmt.Printf("Pet:    %s\n", sum.Pet)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
