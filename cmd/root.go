package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Question answering over your document corpus",
	Long: `docchat ingests PDFs, text files, and scraped web pages into a
semantic vector index and answers natural-language questions grounded in
the retrieved content.`,
}

func Execute() error {
	// API keys commonly live in a .env file next to the config.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docchat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
