package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docchat/internal/chunker"
	"docchat/internal/ingest"
	"docchat/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [roots...]",
	Short: "Extract, chunk, embed, and index documents",
	Long: `Walks the given directories (or the configured docs_dirs), extracts
text from PDF, text, and HTML files, and stores embedded chunks in the
vector index. Re-ingesting the same documents overwrites their entries.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.DocsDirs
	}
	if len(roots) == 0 {
		return fmt.Errorf("no document roots: pass directories or set docs_dirs in %s", cfgFile)
	}

	chk, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}

	embedder, err := createEmbedder(ctx, cfg)
	if err != nil {
		return err
	}

	// A fresh index is fine here; existing entries are loaded so unchanged
	// ids overwrite in place.
	index, err := openIndex(ctx, cfg, false)
	if err != nil {
		return err
	}

	pipeline := ingest.NewPipeline(chk, embedder, index)
	pipeline.SetReporter(progress.NewReporter())

	report, err := pipeline.Run(ctx, roots)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(vectorDir(cfg), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	if err := index.Persist(ctx, vectorDir(cfg)); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	fmt.Printf("Ingestion finished: %s\n", report)
	fmt.Printf("Index now holds %d entries in %s\n", index.Count(), vectorDir(cfg))
	return nil
}
