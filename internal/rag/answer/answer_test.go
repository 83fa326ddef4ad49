package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/llm"
)

type mockLLM struct {
	generateFunc func(ctx context.Context, systemPrompt string, userPrompt string, opts llm.Options) (string, error)
	calls        int
}

func (m *mockLLM) Generate(ctx context.Context, systemPrompt string, userPrompt string, opts llm.Options) (string, error) {
	m.calls++
	if m.generateFunc != nil {
		return m.generateFunc(ctx, systemPrompt, userPrompt, opts)
	}
	return "mocked answer", nil
}

func scored(pairs ...float64) []commonModels.ScoredChunk {
	chunks := make([]commonModels.ScoredChunk, 0, len(pairs))
	for i, score := range pairs {
		chunks = append(chunks, commonModels.ScoredChunk{
			Score:    score,
			Text:     strings.Repeat("fact ", 10) + "and more",
			Citation: "notes.pdf | page " + string(rune('1'+i)),
		})
	}
	return chunks
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0.95, "High"},
		{0.72, "High"},
		{0.71, "Medium"},
		{0.60, "Medium"},
		{0.59, "Low"},
		{0.10, "Low"},
	}

	for _, tt := range tests {
		if got := ConfidenceLabel(tt.score); got != tt.expected {
			t.Errorf("ConfidenceLabel(%f) = %s; want %s", tt.score, got, tt.expected)
		}
	}
}

func TestBuildContext(t *testing.T) {
	chunks := []commonModels.ScoredChunk{
		{Text: "first", Citation: "a.pdf | page 1"},
		{Text: "second", Citation: "b.pdf | page 2"},
		{Text: "third", Citation: "c.pdf | page 3"},
		{Text: "fourth, never included", Citation: "d.pdf | page 4"},
	}

	ctxBlock := BuildContext(chunks)

	if !strings.HasPrefix(ctxBlock, "SOURCE: a.pdf | page 1\nTEXT: first") {
		t.Errorf("unexpected context start: %q", ctxBlock)
	}
	if strings.Count(ctxBlock, "SOURCE:") != 3 {
		t.Errorf("context should hold at most 3 blocks, got %d", strings.Count(ctxBlock, "SOURCE:"))
	}
	if strings.Contains(ctxBlock, "fourth") {
		t.Error("fourth chunk leaked into context")
	}
	if !strings.Contains(ctxBlock, "\n\n") {
		t.Error("blocks should be separated by blank lines")
	}
}

func TestComposeGrounded_NoMatches(t *testing.T) {
	m := &mockLLM{}
	c := NewComposer(m)

	result := c.ComposeGrounded(context.Background(), "anything", nil)

	if result.Answer != config.NotFoundAnswer {
		t.Errorf("answer = %q; want %q", result.Answer, config.NotFoundAnswer)
	}
	if result.Confidence != "Low" {
		t.Errorf("confidence = %s; want Low", result.Confidence)
	}
	if len(result.Evidence) != 0 {
		t.Errorf("expected empty evidence, got %d", len(result.Evidence))
	}
	if m.calls != 0 {
		t.Errorf("LLM must not be called with no matches, got %d calls", m.calls)
	}
}

func TestComposeGrounded_Success(t *testing.T) {
	var seenUserPrompt string
	m := &mockLLM{
		generateFunc: func(ctx context.Context, sys string, user string, opts llm.Options) (string, error) {
			seenUserPrompt = user
			if opts.Temperature != config.GroundedTemperature || opts.MaxTokens != config.GroundedMaxTokens {
				t.Errorf("unexpected options: %+v", opts)
			}
			return "Osmosis moves water across membranes.", nil
		},
	}
	c := NewComposer(m)

	result := c.ComposeGrounded(context.Background(), "what is osmosis?", scored(0.85, 0.70, 0.60, 0.58))

	if result.Answer != "Osmosis moves water across membranes." {
		t.Errorf("answer = %q", result.Answer)
	}
	if result.Confidence != "High" {
		t.Errorf("confidence = %s; want High from best score 0.85", result.Confidence)
	}
	if len(result.Evidence) != 3 {
		t.Errorf("evidence should cover the top 3 chunks, got %d", len(result.Evidence))
	}
	if !strings.Contains(seenUserPrompt, "CONTEXT:") || !strings.Contains(seenUserPrompt, "QUESTION:\nwhat is osmosis?") {
		t.Errorf("user prompt malformed: %q", seenUserPrompt)
	}
	if !strings.Contains(result.Prompt, "SYSTEM:") {
		t.Error("full prompt should carry the system section")
	}
}

func TestComposeGrounded_LLMFallback(t *testing.T) {
	m := &mockLLM{
		generateFunc: func(ctx context.Context, sys string, user string, opts llm.Options) (string, error) {
			return "", errors.New("provider down")
		},
	}
	c := NewComposer(m)

	chunks := scored(0.80)
	result := c.ComposeGrounded(context.Background(), "q", chunks)

	expected := commonModels.TruncateRunes(chunks[0].Text, config.FallbackAnswerRunes)
	if result.Answer != expected {
		t.Errorf("fallback should be the truncated best chunk, got %q", result.Answer)
	}
	if result.Confidence != "High" {
		t.Errorf("confidence still reflects retrieval score, got %s", result.Confidence)
	}
}

func TestComposeGrounded_EvidenceSnippetBound(t *testing.T) {
	long := strings.Repeat("x", 500)
	chunks := []commonModels.ScoredChunk{{Score: 0.8, Text: long, Citation: "big.pdf | page 1"}}
	c := NewComposer(&mockLLM{})

	result := c.ComposeGrounded(context.Background(), "q", chunks)

	if len([]rune(result.Evidence[0].Snippet)) != config.EvidenceSnippetRunes {
		t.Errorf("snippet length = %d; want %d", len([]rune(result.Evidence[0].Snippet)), config.EvidenceSnippetRunes)
	}
}

func TestComposeTeacher_HistoryFolding(t *testing.T) {
	var seenUserPrompt string
	m := &mockLLM{
		generateFunc: func(ctx context.Context, sys string, user string, opts llm.Options) (string, error) {
			seenUserPrompt = user
			return "A cell is the smallest living unit. What do you think organelles do?", nil
		},
	}
	c := NewComposer(m)

	history := []commonModels.ChatTurn{
		{Role: "user", Content: "turn one, should be dropped"},
		{Role: "assistant", Content: "reply one"},
		{Role: "user", Content: "what is a cell?"},
		{Role: "assistant", Content: "a cell is..."},
		{Role: "user", Content: "simplify it"},
	}

	c.ComposeTeacher(context.Background(), "simplify it", scored(0.7), history)

	if strings.Contains(seenUserPrompt, "turn one") {
		t.Error("history should be trimmed to the last turns")
	}
	if !strings.Contains(seenUserPrompt, "USER: simplify it") {
		t.Errorf("history not rendered as ROLE: content lines: %q", seenUserPrompt)
	}
	if !strings.Contains(seenUserPrompt, "ASSISTANT: a cell is...") {
		t.Error("assistant turns missing from rendered history")
	}
}

func TestComposeTeacher_NoHistory(t *testing.T) {
	var seenUserPrompt string
	m := &mockLLM{
		generateFunc: func(ctx context.Context, sys string, user string, opts llm.Options) (string, error) {
			seenUserPrompt = user
			return "reply", nil
		},
	}
	c := NewComposer(m)

	c.ComposeTeacher(context.Background(), "q", scored(0.7), nil)

	if !strings.Contains(seenUserPrompt, "No previous history.") {
		t.Errorf("empty history placeholder missing: %q", seenUserPrompt)
	}
}

func TestComposeTeacher_Fallbacks(t *testing.T) {
	down := &mockLLM{
		generateFunc: func(ctx context.Context, sys string, user string, opts llm.Options) (string, error) {
			return "", errors.New("provider down")
		},
	}
	c := NewComposer(down)

	t.Run("with matches", func(t *testing.T) {
		reply := c.ComposeTeacher(context.Background(), "q", scored(0.7), nil)
		if !strings.HasPrefix(reply, "Here's what I found: ") {
			t.Errorf("fallback reply = %q", reply)
		}
		if !strings.HasSuffix(reply, "... What part of that is most interesting to you?") {
			t.Errorf("fallback reply missing follow-up suffix: %q", reply)
		}
	})

	t.Run("without matches", func(t *testing.T) {
		reply := c.ComposeTeacher(context.Background(), "q", nil, nil)
		if reply != config.TeacherUnavailableReply {
			t.Errorf("reply = %q; want %q", reply, config.TeacherUnavailableReply)
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	history := []commonModels.ChatTurn{
		{Role: "user", Content: "explain osmosis"},
		{Role: "assistant", Content: "osmosis is..."},
	}

	tests := []struct {
		name     string
		question string
		history  []commonModels.ChatTurn
		expected string
	}{
		{"short follow-up widened", "simplify it", history, "explain osmosis simplify it"},
		{"long question untouched", "explain the difference between osmosis and diffusion in detail", history, "explain the difference between osmosis and diffusion in detail"},
		{"no history untouched", "simplify it", nil, "simplify it"},
		{"assistant-only history untouched", "simplify it", []commonModels.ChatTurn{{Role: "assistant", Content: "hi"}}, "simplify it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteQuery(tt.question, tt.history); got != tt.expected {
				t.Errorf("RewriteQuery = %q; want %q", got, tt.expected)
			}
		})
	}
}
