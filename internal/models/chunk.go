package models

// ChunkType distinguishes what part of a role a chunk was cut from.
type ChunkType string

// Known chunk types.
const (
	ChunkTypeSummary   ChunkType = "summary"
	ChunkTypeHighlight ChunkType = "highlight"
)

// ChunkMetadata carries denormalized role fields alongside each chunk so
// search results can be rendered without a second lookup.
type ChunkMetadata struct {
	RoleID    string    `json:"role_id"`
	Company   string    `json:"company"`
	Title     string    `json:"title"`
	Timeframe Timeframe `json:"timeframe"`
	CoreTech  []string  `json:"core_tech,omitempty"`
	ChunkType ChunkType `json:"chunk_type"`
	Source    string    `json:"source,omitempty"`
	Page      int       `json:"page,omitempty"`
	Section   string    `json:"section,omitempty"`
}

// VectorChunk is a unit of source text prepared for retrieval.
type VectorChunk struct {
	ChunkID  string        `json:"chunk_id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// EmbeddingRecord is a VectorChunk plus its precomputed embedding vector.
// All embeddings compared against each other must share the same length.
type EmbeddingRecord struct {
	VectorChunk
	Embedding []float64 `json:"embedding"`
}
