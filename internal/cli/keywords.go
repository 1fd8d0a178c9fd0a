package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/classpulse/classpulse/internal/keywords"
)

var keywordCount int

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords <file>",
	Short: "Extract the top terms from a document by TF-IDF weight",
	Long: `Keywords ranks the terms of a document (e.g., a lesson plan) by TF-IDF
weight and prints the top ones, one per line. Useful for seeding an n-gram
rule table from a reference document.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeywords,
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	keywordsCmd.Flags().IntVarP(&keywordCount, "count", "n", 10, "number of terms to print")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	terms := keywords.Extract(string(data), keywordCount)
	if len(terms) == 0 {
		return fmt.Errorf("no rankable terms in %s", args[0])
	}

	fmt.Println(strings.Join(terms, "\n"))
	return nil
}
