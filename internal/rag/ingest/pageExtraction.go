package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/ocr"
	"github.com/askmynotes/notes-api/pkg/logger_i"
	"github.com/dslipak/pdf"
)

// Extractor turns uploaded documents into normalized pages, routing pages
// with too little native text through the OCR fallback.
type Extractor struct {
	ocr    ocr.Extractor
	logger *logger_i.Logger
}

func NewExtractor(o ocr.Extractor) *Extractor {
	return &Extractor{
		ocr:    o,
		logger: logger_i.NewLogger("Document Extraction"),
	}
}

// ExtractPDF extracts one Page per physical page, in order starting at 1.
// A page whose normalized native text is shorter than the scanned-page cutoff
// is rendered to a temporary page artifact and sent through OCR; if OCR fails
// the whole extraction fails outward, there is no partial-page fallback.
func (e *Extractor) ExtractPDF(ctx context.Context, path string) ([]commonModels.Page, error) {
	f, err := pdf.Open(path)
	if err != nil {
		e.logger.Error("failed opening of pdf file", "path", path)
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []commonModels.Page
	numPages := f.NumPage()
	e.logger.Debug("ExtractPDF", "number of pages", numPages)

	for i := 1; i <= numPages; i++ {
		page := f.Page(i)

		content := ""
		if !page.V.IsNull() {
			extracted, err := protectExtract(page)
			if err != nil {
				// Unparseable native content is handled like a scanned page.
				e.logger.Warn("native extraction failed, treating page as scanned", "page", i, "error", err)
			} else {
				content = extracted
			}
		}

		text := NormalizeText(content)
		if utf8.RuneCountInString(text) < config.ScannedPageMinChars {
			e.logger.Info("page appears scanned, using OCR fallback", "page", i)

			ocrText, err := e.ocrPage(ctx, path, i)
			if err != nil {
				return nil, fmt.Errorf("ocr fallback for page %d: %w", i, err)
			}
			text = NormalizeText(ocrText)
		}

		pages = append(pages, commonModels.Page{Number: i, Text: text})
	}
	return pages, nil
}

// ocrPage snapshots the document into a per-page temp artifact, runs OCR on
// it and guarantees the artifact is gone afterwards, success or failure.
func (e *Extractor) ocrPage(ctx context.Context, path string, pageNum int) (string, error) {
	artifact := PageArtifactPath(path, pageNum)
	if err := copyFile(path, artifact); err != nil {
		return "", fmt.Errorf("writing page artifact: %w", err)
	}
	defer func() {
		if err := os.Remove(artifact); err != nil {
			e.logger.Error("Error removing page artifact", "path", artifact, "error", err)
		}
	}()

	if e.ocr == nil {
		return "", errors.New("no ocr extractor configured")
	}
	return e.ocr.ExtractPage(ctx, artifact, pageNum)
}

// PageArtifactPath names the temporary per-page artifact next to the source
// document. Exported so tests can assert cleanup.
func PageArtifactPath(path string, pageNum int) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("temp_page_%d.pdf", pageNum))
}

func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		return "", errors.New("timeout")
	}
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
