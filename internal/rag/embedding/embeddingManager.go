package embedding

import (
	"context"
	"errors"
)

// Mode selects the task hint of the backing service: documents and queries
// are embedded asymmetrically.
type Mode string

const (
	ModeDocument Mode = "RETRIEVAL_DOCUMENT"
	ModeQuery    Mode = "RETRIEVAL_QUERY"
)

// ErrUnavailable is the typed signal for any embedding failure, including the
// hard call timeout. Callers treat missing embeddings as skippable, never
// fatal, so this is the only error an Embedder surfaces.
var ErrUnavailable = errors.New("embedding unavailable")

type Embedder interface {
	Embed(ctx context.Context, text string, mode Mode) ([]float32, error)
}
