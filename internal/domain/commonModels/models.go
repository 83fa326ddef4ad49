package commonModels

import "fmt"

// Page is one physical page of a source document. Text is either natively
// extracted or OCR-derived; immutable once produced.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// Chunk is the unit of retrieval: a bounded span of page text with provenance.
// Citation and Embedding are attached once during index append; an absent
// embedding is a valid state and such chunks are skipped at retrieval time.
type Chunk struct {
	ChunkId   string    `json:"chunk_id"`
	Page      int       `json:"page"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	Citation  string    `json:"citation,omitempty"`
	Embedding []float32 `json:"embedding,omitempty"`
}

// BuildCitation derives the human-readable origin label for a chunk.
func (c Chunk) BuildCitation() string {
	return fmt.Sprintf("%s | page %d", c.Source, c.Page)
}

// ScoredChunk is retrieval-time only, never persisted.
type ScoredChunk struct {
	Score    float64 `json:"score"`
	Text     string  `json:"text"`
	Citation string  `json:"citation"`
}

// ChatTurn is one entry of a teacher conversation.
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// TruncateRunes bounds s to at most n runes. Truncation limits in this
// codebase are character counts, not bytes, so multi-byte text stays intact.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

type DocType string

var (
	PDF   DocType = "PDF"
	DOCX  DocType = "DOCX"
	IMAGE DocType = "IMAGE"
	ERR   DocType = "ERROR"
)
