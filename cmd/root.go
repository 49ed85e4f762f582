package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mezotravel",
	Short: "RAG-powered tourism assistant for the Mezopotamya (GAP) region",
	Long: `Mezotravel serves a retrieval-augmented tourism assistant: ingest
travel documents into a semantic index, chat with visitors about the
region, and generate itineraries and routes grounded in the indexed
knowledge base.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".mezotravel.yml", "config file path")
}
