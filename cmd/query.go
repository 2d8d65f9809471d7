package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docchat/internal/rag"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question against the indexed documents",
	Long: `Retrieves the most relevant chunks for the question, checks they are
topically related, and prints an answer grounded in them.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Int("k", 0, "number of candidate chunks (default: configured top_k)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]
	k, _ := cmd.Flags().GetInt("k")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	answer, err := engine.Answer(ctx, question, k)
	if err != nil {
		return err
	}

	fmt.Println(answer.Response)
	if answer.Kind == rag.KindAnswered && len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range answer.Sources {
			if src.Page > 0 {
				fmt.Printf("  - %s (page %d)\n", src.Source, src.Page)
			} else {
				fmt.Printf("  - %s\n", src.Source)
			}
		}
	}
	return nil
}
