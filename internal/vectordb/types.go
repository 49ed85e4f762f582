package vectordb

// DocumentType categorizes the kind of source document a vector belongs to.
type DocumentType string

const (
	DocTypeItinerary       DocumentType = "itinerary"
	DocTypeRoute           DocumentType = "route"
	DocTypeDestinationInfo DocumentType = "destination_info"
	DocTypeGeneral         DocumentType = "general"
)

// ValidDocumentType reports whether s names a known document type.
func ValidDocumentType(s string) bool {
	switch DocumentType(s) {
	case DocTypeItinerary, DocTypeRoute, DocTypeDestinationInfo, DocTypeGeneral:
		return true
	}
	return false
}

// Payload holds the structured metadata attached to a vector record,
// used for filtering and result presentation.
type Payload struct {
	DocumentID string
	ChunkIndex int
	Type       DocumentType
	Source     string
	Text       string
}

// Record pairs an embedding with its payload. VectorID is derived as
// "{document_id}_{chunk_index}" and joins relational chunk rows to
// index entries.
type Record struct {
	VectorID  string
	Embedding []float32
	Payload   Payload
}

// SearchResult is a scored match produced per query, never persisted.
// Score is cosine similarity; higher means more relevant.
type SearchResult struct {
	VectorID string
	Text     string
	Score    float32
	Payload  Payload
}

// Filter narrows search results by payload fields.
type Filter struct {
	Type *DocumentType
}

// Health reports index status for diagnostics. It is produced by a
// non-throwing probe: an unreachable index yields Connected=false,
// never an error.
type Health struct {
	Connected  bool   `json:"connected"`
	Collection string `json:"collection,omitempty"`
	Vectors    int    `json:"vectors"`
	Message    string `json:"message,omitempty"`
}
