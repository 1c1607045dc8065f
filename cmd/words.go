package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/catalog"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Browse the word list",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words (optionally filtered by category, level or text)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var f catalog.Filter
		f.Category, _ = cmd.Flags().GetString("category")
		f.Level, _ = cmd.Flags().GetString("level")
		f.Search, _ = cmd.Flags().GetString("search")

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		items := cat.Filter(f).Items()
		if len(items) == 0 {
			return errors.New("no words match the filter")
		}

		fmt.Printf("%-20s  %-24s  %-24s  %-14s  %s\n",
			"ID", "Term", "Translation", "Category", "Level")
		fmt.Println(strings.Repeat("─", 96))

		for _, it := range items {
			fmt.Printf("%-20s  %-24s  %-24s  %-14s  %s\n",
				truncate(it.ID, 20), truncate(it.Term, 24), truncate(it.Translation, 24),
				truncate(it.Category, 14), it.Level)
		}

		fmt.Printf("\n%d words\n", len(items))
		return nil
	},
}

var wordsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories in the word list",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		for _, c := range cat.Categories() {
			n := cat.Filter(catalog.Filter{Category: c}).Len()
			fmt.Printf("%-20s  %d\n", c, n)
		}
		return nil
	},
}

func init() {
	wordsListCmd.Flags().String("category", "", "Filter by category")
	wordsListCmd.Flags().String("level", "", "Filter by level (e.g. A1)")
	wordsListCmd.Flags().String("search", "", "Match term or translation")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsCategoriesCmd)
}
