package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/lu4p/cat"
)

// ExtractDoc reads a .docx, .txt or .rtf file as a single-page document.
// Word pagination is not recoverable from these formats, so everything lands
// on page 1.
func (e *Extractor) ExtractDoc(path string) ([]commonModels.Page, error) {
	text, err := cat.File(path)
	if err != nil {
		e.logger.Error("Error extracting content from doc", "path", path)
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}

	return []commonModels.Page{{Number: 1, Text: NormalizeText(text)}}, nil
}

// ExtractImage runs a whole uploaded image through OCR as a one-page document.
func (e *Extractor) ExtractImage(ctx context.Context, path string) ([]commonModels.Page, error) {
	if e.ocr == nil {
		return nil, fmt.Errorf("no ocr extractor configured")
	}
	text, err := e.ocr.ExtractImage(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("image ocr failed: %w", err)
	}

	return []commonModels.Page{{Number: 1, Text: NormalizeText(text)}}, nil
}

// GetDocType maps an uploaded filename to the extraction route for it.
func GetDocType(docPath string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(docPath)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf":
		return commonModels.DOCX
	case ".png", ".jpg", ".jpeg":
		return commonModels.IMAGE
	default:
		return commonModels.ERR
	}
}

// ExtractPages dispatches on document type and returns normalized pages.
func (e *Extractor) ExtractPages(ctx context.Context, path string) ([]commonModels.Page, commonModels.DocType, error) {
	docType := GetDocType(path)
	switch docType {
	case commonModels.PDF:
		pages, err := e.ExtractPDF(ctx, path)
		return pages, docType, err
	case commonModels.DOCX:
		pages, err := e.ExtractDoc(path)
		return pages, docType, err
	case commonModels.IMAGE:
		pages, err := e.ExtractImage(ctx, path)
		return pages, docType, err
	default:
		return nil, commonModels.ERR, fmt.Errorf("unsupported content type: %s", filepath.Ext(path))
	}
}
