package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mezotravel/backend/internal/documents"
	"github.com/mezotravel/backend/internal/loader"
	"github.com/mezotravel/backend/internal/progress"
	"github.com/mezotravel/backend/internal/rag"
	"github.com/mezotravel/backend/internal/vectordb"
)

var (
	ingestType    string
	ingestInclude []string
	ingestExclude []string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Bulk-ingest a directory of documents into the knowledge base",
	Long: `Walks a directory of markdown and text files, strips markup,
chunks and embeds the content, and stores everything in the knowledge
base. Already ingested files are added again as new documents.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if ingestType != "" && !vectordb.ValidDocumentType(ingestType) {
			return fmt.Errorf("unknown document type %q", ingestType)
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

		_, ingestor, err := newRAGService(cfg, embedder, index)
		if err != nil {
			return err
		}
		docStore := documents.NewStore(database, ingestor, rag.NewRetriever(embedder, index), index)

		files, err := loader.Walk(loader.WalkConfig{
			RootDir: args[0],
			Include: ingestInclude,
			Exclude: ingestExclude,
		})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No documents found")
			return nil
		}

		reporter := progress.NewReporter()
		reporter.Start(len(files))

		ctx := context.Background()
		ingested, failed := 0, 0
		for i, f := range files {
			reporter.Update(i+1, f.RelPath)

			title, content, err := loader.Load(f.Path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nskipping %s: %v\n", f.RelPath, err)
				failed++
				continue
			}
			if content == "" {
				continue
			}

			_, err = docStore.Ingest(ctx, documents.Document{
				Title:   title,
				Content: content,
				Type:    vectordb.DocumentType(ingestType),
				Source:  f.RelPath,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "\nfailed to ingest %s: %v\n", f.RelPath, err)
				failed++
				continue
			}
			ingested++
		}
		reporter.Finish()

		fmt.Fprintf(os.Stderr, "Ingested %d documents (%d failed), %d vectors in collection %s\n",
			ingested, failed, index.Count(), cfg.Collection)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestType, "type", "t", "", "document type for all files (itinerary, route, destination_info, general)")
	ingestCmd.Flags().StringSliceVar(&ingestInclude, "include", nil, "glob patterns to include (default **/*.md, **/*.txt)")
	ingestCmd.Flags().StringSliceVar(&ingestExclude, "exclude", nil, "glob patterns to exclude")
	rootCmd.AddCommand(ingestCmd)
}
