package ocr

import "context"

// Extractor turns a stored image or document page into plain text through an
// external multimodal model. Implementations return only the extracted text.
type Extractor interface {
	ExtractImage(ctx context.Context, path string) (string, error)
	ExtractPage(ctx context.Context, path string, pageNumber int) (string, error)
}
