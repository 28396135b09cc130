package main

import (
	"fmt"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/data"
	"github.com/spf13/cobra"
)

var topicsFile string

// topicsCmd lists or shows help topics
var topicsCmd = &cobra.Command{
	Use:   "topics [name]",
	Short: "List or show help topics",
	Long: `Without arguments, list the help topics the chat layer serves. With a
topic name, print its body. Names are matched case-insensitively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().StringVar(&topicsFile, "data", "data/help_topics.yaml", "help topics YAML file")
}

func runTopics(cmd *cobra.Command, args []string) error {
	table, err := data.LoadHelpTable(topicsFile)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, name := range table.Names() {
			topic := table.Get(name)
			fmt.Printf("%-20s %s\n", topic.Name, topic.Description)
		}
		return nil
	}

	topic := table.Get(args[0])
	if topic == nil {
		return fmt.Errorf("unknown topic %q", args[0])
	}
	fmt.Printf("%s\n\n%s\n", topic.Name, topic.Body)
	return nil
}
