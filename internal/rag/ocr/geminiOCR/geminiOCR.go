package geminiOCR

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/askmynotes/notes-api/internal/rag/ocr"
	"github.com/askmynotes/notes-api/pkg/logger_i"
	"google.golang.org/genai"
)

const extractPrompt = `Extract ALL readable text from this image.
Preserve headings and structure.
Do NOT explain anything.
Return ONLY the extracted text.`

var logger *logger_i.Logger
var ocrClient *client
var once sync.Once

type client struct {
	genAi *genai.Client
	model string
}

func GetGeminiOCRClient(ctx context.Context, modelName string, apikey string) ocr.Extractor {
	once.Do(func() {
		logger = logger_i.NewLogger("gemini_ocr")
		newGeminiOCR(ctx, modelName, apikey)
	})

	if ocrClient == nil {
		return nil
	}
	return &client{genAi: ocrClient.genAi, model: ocrClient.model}
}

func newGeminiOCR(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini OCR client:", "error", err)
	}
	if c != nil {
		ocrClient = &client{genAi: c, model: modelName}
		logger.Info("Gemini OCR client created")
		go closeClient(ctx, ocrClient)
	}
}

func closeClient(ctx context.Context, c *client) {
	<-ctx.Done()
	logger.Info("Closing Gemini OCR client")
	c.genAi = nil
	c.model = ""
}

// ExtractImage reads a stored png/jpg and returns the text Gemini sees in it.
func (c *client) ExtractImage(ctx context.Context, path string) (string, error) {
	return c.extract(ctx, path, mimeForImage(path), extractPrompt)
}

// ExtractPage sends a page document to Gemini and asks for the text of one
// page only. Used as the scanned-page fallback during PDF extraction.
func (c *client) ExtractPage(ctx context.Context, path string, pageNumber int) (string, error) {
	prompt := fmt.Sprintf("From the attached document, extract ALL readable text of page %d.\n%s", pageNumber, extractPrompt)
	return c.extract(ctx, path, "application/pdf", prompt)
}

func (c *client) extract(ctx context.Context, path string, mimeType string, prompt string) (string, error) {
	log := logger.With("path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading ocr input: %w", err)
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			{Text: prompt},
		},
	}}

	result, err := c.genAi.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		log.Error("Gemini OCR call failed", "error", err)
		return "", err
	}

	text := result.Text()
	if text == "" {
		log.Error("Gemini OCR returned no text")
		return "", errors.New("ocr returned empty text")
	}
	return text, nil
}

func mimeForImage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
