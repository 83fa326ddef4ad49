package answer

import (
	"strings"

	"github.com/askmynotes/notes-api/internal/config"
	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

// RewriteQuery widens short follow-up questions ("simplify it", "give an
// example") for semantic search by prepending the most recent user turn.
// Longer questions pass through untouched.
func RewriteQuery(question string, history []commonModels.ChatTurn) string {
	if len(strings.Fields(question)) >= config.ShortQuestionTokenLimit || len(history) == 0 {
		return question
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" && history[i].Content != "" {
			return history[i].Content + " " + question
		}
	}
	return question
}
