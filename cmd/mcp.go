package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mezotravel/backend/internal/destinations"
	"github.com/mezotravel/backend/internal/documents"
	"github.com/mezotravel/backend/internal/mcp"
	"github.com/mezotravel/backend/internal/rag"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long: `Starts a Model Context Protocol server exposing the assistant to
MCP clients: semantic document search, assistant questions, and the
destination catalogue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		embedder, err := newEmbedder(cfg)
		if err != nil {
			return fmt.Errorf("creating embedder: %w", err)
		}

		database, index, err := openStores(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		svc, ingestor, err := newRAGService(cfg, embedder, index)
		if err != nil {
			return err
		}

		docStore := documents.NewStore(database, ingestor, rag.NewRetriever(embedder, index), index)
		destStore := destinations.NewStore(database)

		mcp.Version = Version
		return mcp.NewServer(docStore, destStore, svc).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
