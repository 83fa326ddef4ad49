package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/llm"
	"github.com/askmynotes/notes-api/pkg/logger_i"
)

const groundedSystemPrompt = `You are AskMyNotes.

Answer ONLY using the provided context.
Do NOT invent information.

If the answer is not found in the context, return EXACTLY:
"Not found in your notes."

Return concise educational answers.`

// Evidence is one supporting excerpt returned alongside a grounded answer.
type Evidence struct {
	Citation string `json:"citation"`
	Snippet  string `json:"snippet"`
}

// Grounded is a composed answer with its confidence label, supporting
// evidence and the exact prompt sent to the model.
type Grounded struct {
	Answer     string     `json:"answer"`
	Confidence string     `json:"confidence"`
	Evidence   []Evidence `json:"evidence"`
	Prompt     string     `json:"prompt,omitempty"`
}

// Composer turns retrieved chunks into final answers via an LLM, with a
// deterministic fallback when the model is unreachable.
type Composer struct {
	llm    llm.Provider
	logger *logger_i.Logger
}

func NewComposer(provider llm.Provider) *Composer {
	return &Composer{
		llm:    provider,
		logger: logger_i.NewLogger("AnswerComposer"),
	}
}

// ComposeGrounded answers question from the scored chunks. With no chunks it
// short-circuits to the fixed not-found answer without calling the model.
func (c *Composer) ComposeGrounded(ctx context.Context, question string, scored []commonModels.ScoredChunk) Grounded {
	if len(scored) == 0 {
		return Grounded{
			Answer:     config.NotFoundAnswer,
			Confidence: "Low",
			Evidence:   []Evidence{},
		}
	}

	strong := scored
	if len(strong) > config.ContextChunkCount {
		strong = strong[:config.ContextChunkCount]
	}

	contextBlock := BuildContext(strong)
	userPrompt := fmt.Sprintf("CONTEXT:\n%s\n\nQUESTION:\n%s", contextBlock, question)
	fullPrompt := fmt.Sprintf("SYSTEM:\n%s\n\nUSER:\n%s", groundedSystemPrompt, userPrompt)

	answerText, err := c.llm.Generate(ctx, groundedSystemPrompt, userPrompt, llm.Options{
		Temperature: config.GroundedTemperature,
		MaxTokens:   config.GroundedMaxTokens,
	})
	if err != nil {
		c.logger.Warn("LLM unavailable, answering with best chunk", "error", err)
		answerText = commonModels.TruncateRunes(strong[0].Text, config.FallbackAnswerRunes)
		if answerText == "" {
			answerText = config.RetryAnswer
		}
	}

	evidence := make([]Evidence, 0, len(strong))
	for _, chunk := range strong {
		evidence = append(evidence, Evidence{
			Citation: chunk.Citation,
			Snippet:  commonModels.TruncateRunes(chunk.Text, config.EvidenceSnippetRunes),
		})
	}

	return Grounded{
		Answer:     answerText,
		Confidence: ConfidenceLabel(scored[0].Score),
		Evidence:   evidence,
		Prompt:     fullPrompt,
	}
}

// BuildContext renders at most the first three chunks as SOURCE/TEXT blocks
// separated by blank lines.
func BuildContext(chunks []commonModels.ScoredChunk) string {
	limit := len(chunks)
	if limit > config.ContextChunkCount {
		limit = config.ContextChunkCount
	}
	parts := make([]string, 0, limit)
	for _, chunk := range chunks[:limit] {
		parts = append(parts, fmt.Sprintf("SOURCE: %s\nTEXT: %s", chunk.Citation, chunk.Text))
	}
	return strings.Join(parts, "\n\n")
}

// ConfidenceLabel maps the best similarity score to High, Medium or Low.
func ConfidenceLabel(score float64) string {
	switch {
	case score >= config.ConfidenceHighCutoff:
		return "High"
	case score >= config.ConfidenceMedCutoff:
		return "Medium"
	default:
		return "Low"
	}
}
