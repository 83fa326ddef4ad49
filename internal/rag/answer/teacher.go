package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
	"github.com/askmynotes/notes-api/internal/rag/llm"
)

const teacherSystemPrompt = `You are AskMyNotes, an encouraging and interactive AI Teacher.

RULES:
1. Answer the student's question concisely using the provided CONTEXT. If the user is asking a follow-up (like "simplify it", "give an example", "compare"), use the CONVERSATION HISTORY to understand what they are referring to.
2. Do NOT invent information that is not in the context or history.
3. If the answer is not in the context or history, say "I couldn't find that in your notes, but..." and give a brief general answer if appropriate.
4. Speak naturally and conversationally, suitable for text-to-speech.
5. MOST IMPORTANT: ALWAYS end your response with ONE relevant, thought-provoking follow-up question to test the student's understanding or guide them deeper into the topic. Do not just ask "does that make sense?" Ask a specific, content-related question.

HISTORY contains previous messages in the conversation to help you maintain context.`

// ComposeTeacher answers conversationally, folding in recent history, and
// always nudges the student with a follow-up. Runs hotter than the grounded
// composer and tolerates empty context, leaning on history instead.
func (c *Composer) ComposeTeacher(ctx context.Context, question string, scored []commonModels.ScoredChunk, history []commonModels.ChatTurn) string {
	contextBlock := ""
	fallback := ""
	if len(scored) > 0 {
		contextBlock = BuildContext(scored)
		fallback = "Here's what I found: " + commonModels.TruncateRunes(scored[0].Text, config.EvidenceSnippetRunes) + "... What part of that is most interesting to you?"
	}

	userPrompt := fmt.Sprintf("CONTEXT:\n%s\n\nCONVERSATION HISTORY:\n%s\n\nSTUDENT QUESTION:\n%s",
		contextBlock, formatHistory(history), question)

	reply, err := c.llm.Generate(ctx, teacherSystemPrompt, userPrompt, llm.Options{
		Temperature: config.TeacherTemperature,
		MaxTokens:   config.TeacherMaxTokens,
	})
	if err != nil {
		c.logger.Warn("LLM unavailable for teacher reply", "error", err)
		if fallback != "" {
			return fallback
		}
		return config.TeacherUnavailableReply
	}
	return reply
}

// formatHistory renders the last turns as "ROLE: content" lines, newest last.
func formatHistory(history []commonModels.ChatTurn) string {
	if len(history) == 0 {
		return "No previous history."
	}
	tail := history
	if len(tail) > config.HistoryPromptTurns {
		tail = tail[len(tail)-config.HistoryPromptTurns:]
	}
	lines := make([]string, 0, len(tail))
	for _, turn := range tail {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(turn.Role), turn.Content))
	}
	return strings.Join(lines, "\n")
}
