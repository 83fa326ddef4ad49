package vectorDB

import (
	"context"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

// IndexStore is the persisted home of a subject's chunk collection.
//
// Append attaches citations and missing embeddings (document mode, silently
// skipped when the embedding service is unavailable) before persisting; the
// whole collection is rewritten on every append. Load never fails on absent
// or corrupt data, it returns an empty collection instead.
type IndexStore interface {
	Append(ctx context.Context, subject string, chunks []commonModels.Chunk) error
	Load(ctx context.Context, subject string) []commonModels.Chunk
}
