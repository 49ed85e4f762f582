package cmd

import (
	"github.com/mezotravel/backend/internal/chat"
	"github.com/mezotravel/backend/internal/db"
	"github.com/mezotravel/backend/internal/destinations"
	"github.com/mezotravel/backend/internal/documents"
	"github.com/mezotravel/backend/internal/embeddings"
	"github.com/mezotravel/backend/internal/planner"
	"github.com/mezotravel/backend/internal/rag"
	"github.com/mezotravel/backend/internal/server"
	"github.com/mezotravel/backend/internal/vectordb"
)

// registerAllRoutes wires up all feature routes.
func registerAllRoutes(srv *server.Server, database *db.DB, svc *rag.Service, ingestor *rag.Ingestor, embedder embeddings.Embedder, index *vectordb.Index) {
	r := srv.Router()

	docStore := documents.NewStore(database, ingestor, rag.NewRetriever(embedder, index), index)
	documents.RegisterRoutes(r, docStore)

	destStore := destinations.NewStore(database)
	destinations.RegisterRoutes(r, destStore)

	chatStore := chat.NewStore(database)
	chat.RegisterRoutes(r, chatStore, svc)

	planStore := planner.NewStore(database)
	planner.RegisterRoutes(r, planStore, svc)
}
