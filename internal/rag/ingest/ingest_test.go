package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

// --- Mock OCR ---

type mockOCR struct {
	extractImageFunc func(ctx context.Context, path string) (string, error)
	extractPageFunc  func(ctx context.Context, path string, pageNumber int) (string, error)
}

func (m *mockOCR) ExtractImage(ctx context.Context, path string) (string, error) {
	if m.extractImageFunc != nil {
		return m.extractImageFunc(ctx, path)
	}
	return "ocr text", nil
}

func (m *mockOCR) ExtractPage(ctx context.Context, path string, pageNumber int) (string, error) {
	if m.extractPageFunc != nil {
		return m.extractPageFunc(ctx, path, pageNumber)
	}
	return "ocr text", nil
}

// --- Unit Tests ---

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"collapses whitespace runs", "hello   world\n\ttwo", "hello world two"},
		{"removes space before punctuation", "wait , what ? yes .", "wait, what? yes."},
		{"trims edges", "  padded  ", "padded"},
		{"empty input", "   \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q; want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	in := "A  sentence .  With   gaps !"
	once := NormalizeText(in)
	twice := NormalizeText(once)
	if once != twice {
		t.Errorf("normalization is not idempotent: %q vs %q", once, twice)
	}
}

func TestGetDocType(t *testing.T) {
	tests := []struct {
		path     string
		expected commonModels.DocType
	}{
		{"test.pdf", commonModels.PDF},
		{"DOC.DOCX", commonModels.DOCX},
		{"notes.txt", commonModels.DOCX},
		{"notes.rtf", commonModels.DOCX},
		{"image.png", commonModels.IMAGE},
		{"photo.JPG", commonModels.IMAGE},
		{"archive.zip", commonModels.ERR},
	}

	for _, tt := range tests {
		if got := GetDocType(tt.path); got != tt.expected {
			t.Errorf("GetDocType(%s) = %v; want %v", tt.path, got, tt.expected)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	text := "First sentence. Second one! Third? Trailing fragment"
	sentences := SplitSentences(text)

	if len(sentences) != 4 {
		t.Fatalf("Expected 4 sentences, got %d: %v", len(sentences), sentences)
	}
	if sentences[0] != "First sentence." {
		t.Errorf("Punctuation should stay with the sentence, got %q", sentences[0])
	}
	if sentences[3] != "Trailing fragment" {
		t.Errorf("Trailing fragment lost, got %q", sentences[3])
	}

	if got := SplitSentences("   "); got != nil {
		t.Errorf("Blank text should yield no sentences, got %v", got)
	}
}

func TestBuildChunks_IdsAndPages(t *testing.T) {
	pages := []commonModels.Page{
		{Number: 1, Text: "One two three. Four five six. Seven eight nine."},
		{Number: 2, Text: "Alpha beta gamma. Delta epsilon zeta."},
	}

	chunks := BuildChunks(pages, "notes.pdf", 6, 1)

	if len(chunks) < 3 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}

	// ids are zero-based and contiguous across pages
	for i, chunk := range chunks {
		expectedId := "notes.pdf_" + strconv.Itoa(i)
		if chunk.ChunkId != expectedId {
			t.Errorf("chunk %d id = %s; want %s", i, chunk.ChunkId, expectedId)
		}
		if chunk.Source != "notes.pdf" {
			t.Errorf("chunk %d source = %s", i, chunk.Source)
		}
	}

	// no chunk mixes text from both pages
	for _, chunk := range chunks {
		onPageOne := strings.Contains(chunk.Text, "three")
		onPageTwo := strings.Contains(chunk.Text, "gamma")
		if onPageOne && onPageTwo {
			t.Errorf("chunk spans pages: %q", chunk.Text)
		}
		if onPageTwo && chunk.Page != 2 {
			t.Errorf("page-2 text labeled page %d", chunk.Page)
		}
	}
}

func TestBuildChunks_Overlap(t *testing.T) {
	pages := []commonModels.Page{
		{Number: 1, Text: "One two three four. Five six seven eight. Nine ten eleven twelve."},
	}

	chunks := BuildChunks(pages, "n.txt", 8, 1)

	if len(chunks) < 2 {
		t.Fatalf("Expected overlap to produce multiple chunks, got %d", len(chunks))
	}
	// the second chunk starts with the last sentence of the first
	lastSentence := "Five six seven eight."
	if !strings.Contains(chunks[0].Text, lastSentence) {
		t.Fatalf("setup wrong, first chunk %q", chunks[0].Text)
	}
	if !strings.HasPrefix(chunks[1].Text, lastSentence) {
		t.Errorf("second chunk should start with the overlap seed, got %q", chunks[1].Text)
	}
}

func TestBuildChunks_EmptyPages(t *testing.T) {
	pages := []commonModels.Page{
		{Number: 1, Text: ""},
		{Number: 2, Text: "   "},
	}
	if chunks := BuildChunks(pages, "empty.pdf", 400, 50); len(chunks) != 0 {
		t.Errorf("Expected no chunks from blank pages, got %d", len(chunks))
	}
}

func TestBuildChunks_Reconstruction(t *testing.T) {
	text := "Aaa bbb ccc. Ddd eee fff. Ggg hhh iii."
	pages := []commonModels.Page{{Number: 1, Text: text}}

	chunks := BuildChunks(pages, "r.txt", 400, 50)

	if len(chunks) != 1 {
		t.Fatalf("Short page should fit one chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("Reconstructed text mismatch: %q", chunks[0].Text)
	}
}

func TestExtractImage(t *testing.T) {
	o := &mockOCR{
		extractImageFunc: func(ctx context.Context, path string) (string, error) {
			return "  Photosynthesis   converts light .", nil
		},
	}
	e := NewExtractor(o)

	pages, err := e.ExtractImage(context.Background(), "diagram.png")
	if err != nil {
		t.Fatalf("ExtractImage failed: %v", err)
	}
	if len(pages) != 1 || pages[0].Number != 1 {
		t.Fatalf("Expected one page numbered 1, got %+v", pages)
	}
	if pages[0].Text != "Photosynthesis converts light." {
		t.Errorf("OCR text not normalized: %q", pages[0].Text)
	}
}

func TestOcrPage_ArtifactCleanup(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "scan.pdf")
	if err := os.WriteFile(source, []byte("%PDF-1.4 fake"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ocr     *mockOCR
		wantErr bool
	}{
		{
			name: "Success",
			ocr: &mockOCR{extractPageFunc: func(ctx context.Context, path string, n int) (string, error) {
				if _, err := os.Stat(path); err != nil {
					t.Errorf("artifact missing during OCR call: %v", err)
				}
				return "recovered text", nil
			}},
		},
		{
			name: "Failure",
			ocr: &mockOCR{extractPageFunc: func(ctx context.Context, path string, n int) (string, error) {
				return "", errors.New("ocr down")
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewExtractor(tt.ocr)
			_, err := e.ocrPage(context.Background(), source, 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ocrPage err = %v, wantErr %v", err, tt.wantErr)
			}

			artifact := PageArtifactPath(source, 3)
			if _, statErr := os.Stat(artifact); !os.IsNotExist(statErr) {
				t.Errorf("artifact %s survived ocrPage", artifact)
			}
		})
	}
}

