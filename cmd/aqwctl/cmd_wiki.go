package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/wiki"
	"github.com/spf13/cobra"
)

var wikiJSON bool

// wikiCmd groups the wiki lookups
var wikiCmd = &cobra.Command{
	Use:   "wiki",
	Short: "Look up an item or shop on the community wiki",
	Long: `Query the community wiki by display name.

Available subcommands:
  item - Look up one item page
  shop - List the inventory of a shop page`,
}

var wikiItemCmd = &cobra.Command{
	Use:   "item <name>",
	Short: "Look up one item page",
	Args:  cobra.ExactArgs(1),
	RunE:  runWikiItem,
}

var wikiShopCmd = &cobra.Command{
	Use:   "shop <name>",
	Short: "List the inventory of a shop page",
	Args:  cobra.ExactArgs(1),
	RunE:  runWikiShop,
}

func init() {
	wikiCmd.PersistentFlags().BoolVar(&wikiJSON, "json", false, "print the raw result as JSON")
	wikiCmd.AddCommand(wikiItemCmd)
	wikiCmd.AddCommand(wikiShopCmd)
}

func runWikiItem(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	page, err := wiki.NewClient(cfg.Wiki, nil, log).LookupItem(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if wikiJSON {
		return printJSON(page)
	}

	fmt.Printf("%s\n%s\n\n", page.Title, page.URL)
	if page.Disambiguation {
		fmt.Printf("%s\n\n", page.Description)
		for _, rel := range page.Related {
			fmt.Printf("  %s\n    %s\n", rel.Name, rel.URL)
		}
		return nil
	}

	printField("Type", page.Type)
	printField("Level", page.Level)
	printField("Damage", page.Damage)
	printField("Rarity", page.Rarity)
	printField("Price", page.Price)
	printField("Sellback", page.Sellback)
	printField("Location", page.Location)
	if len(page.Locations) > 0 {
		fmt.Println("Locations:")
		for _, loc := range page.Locations {
			fmt.Printf("  - %s\n", loc)
		}
	}
	for _, req := range page.Requirements {
		fmt.Printf("Requires: %s\n", req)
	}
	printField("Description", page.Description)
	if len(page.Notes) > 0 {
		fmt.Println("Notes:")
		for _, note := range page.Notes {
			fmt.Printf("  - %s\n", note)
		}
	}
	return nil
}

func runWikiShop(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	page, err := wiki.NewClient(cfg.Wiki, nil, log).LookupShop(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if wikiJSON {
		return printJSON(page)
	}

	fmt.Printf("%s (%d items)\n%s\n\n", page.Title, len(page.Items), page.URL)
	for _, item := range page.Items {
		if item.Price != "" {
			fmt.Printf("  %-40s %s\n", item.Name, item.Price)
		} else {
			fmt.Printf("  %s\n", item.Name)
		}
	}
	return nil
}

func printField(label, value string) {
	if value != "" {
		fmt.Printf("%s: %s\n", label, value)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
