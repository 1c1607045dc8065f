package cmd

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexiz/internal/catalog"
	"github.com/abhisek/lexiz/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Practise questions from the word list without saving progress",
	Long: `Ask questions from the word list in the plain terminal.

Nothing is scheduled or saved: no database, no XP, no events.
Useful for checking a new word list before studying it.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "", "Only ask words from this category")
	previewCmd.Flags().Int("count", 5, "Number of questions to ask")
	previewCmd.Flags().Int64("seed", 0, "Random seed (0 picks one)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	count, _ := cmd.Flags().GetInt("count")
	seed, _ := cmd.Flags().GetInt64("seed")

	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	if category != "" {
		cat = cat.Filter(catalog.Filter{Category: category})
	}
	if cat.Len() == 0 {
		return errors.Errorf("no words found for category %q", category)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	gen := quiz.NewGenerator(rng)
	gen.TypingRatio = cfg.Quiz.TypingRatio

	pool := cat.Items()
	count = min(count, len(pool))
	picks := rng.Perm(len(pool))[:count]
	scanner := bufio.NewScanner(os.Stdin)

	var correct int
	for i, idx := range picks {
		q := gen.Question(pool[idx], pool)

		fmt.Printf("── Question %d/%d ──\n", i+1, count)
		fmt.Println(q.Prompt)
		for j, c := range q.Choices {
			fmt.Printf("  %d) %s\n", j+1, c)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		if quiz.Check(q, answer) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
