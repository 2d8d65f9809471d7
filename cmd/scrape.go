package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"docchat/internal/scraper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [base-url]",
	Short: "Crawl a documentation site into a text corpus",
	Long: `Crawls pages under the base URL breadth-first, saving each page's
visible text as a .txt file. The crawl stays on the base host under the base
path and stops at the configured depth and page limits. Run ` + "`docchat ingest`" + `
on the output directory afterwards.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("out", "docs/scraped", "output directory for page text files")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out")

	s, err := scraper.New(scraper.Config{
		BaseURL:  args[0],
		OutDir:   outDir,
		MaxDepth: cfg.Scrape.MaxDepth,
		MaxPages: cfg.Scrape.MaxPages,
		Delay:    time.Duration(cfg.Scrape.DelayMS) * time.Millisecond,
	})
	if err != nil {
		return err
	}

	saved, err := s.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d pages to %s\n", saved, outDir)
	return nil
}
