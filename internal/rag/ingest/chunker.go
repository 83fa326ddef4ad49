package ingest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/askmynotes/notes-api/internal/domain/commonModels"
)

// sentenceEnd marks a boundary after . ! ? followed by whitespace. This is a
// heuristic splitter, not a full sentence-boundary parser; abbreviations like
// "e.g." will split. Good enough for chunking study notes.
var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences cuts text after terminal punctuation, keeping the
// punctuation with the preceding sentence.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var sentences []string
	prev := 0
	for _, m := range sentenceEnd.FindAllStringIndex(text, -1) {
		// m[0] is the punctuation rune, keep it
		sentences = append(sentences, text[prev:m[0]+1])
		prev = m[1]
	}
	if prev < len(text) {
		sentences = append(sentences, text[prev:])
	}
	return sentences
}

// BuildChunks accumulates sentences into chunks of at most chunkSize words,
// seeding each new chunk with the last overlap sentences of the previous one.
// Chunks never span pages; ids are zero-based and contiguous per source, the
// counter running across pages.
func BuildChunks(pages []commonModels.Page, sourceName string, chunkSize int, overlap int) []commonModels.Chunk {
	var chunks []commonModels.Chunk
	counter := 0

	flush := func(buffer []string, pageNum int) bool {
		text := strings.Join(buffer, " ")
		if strings.TrimSpace(text) == "" {
			return false
		}
		chunks = append(chunks, commonModels.Chunk{
			ChunkId: fmt.Sprintf("%s_%d", sourceName, counter),
			Page:    pageNum,
			Source:  sourceName,
			Text:    text,
		})
		counter++
		return true
	}

	for _, page := range pages {
		sentences := SplitSentences(page.Text)

		var buffer []string
		words := 0

		for _, sentence := range sentences {
			wordCount := len(strings.Fields(sentence))

			if words+wordCount > chunkSize && len(buffer) > 0 {
				flush(buffer, page.Number)

				// Seed the next buffer with the tail of the flushed one and
				// recount words from that seed rather than carrying them over.
				if overlap < len(buffer) {
					buffer = append([]string(nil), buffer[len(buffer)-overlap:]...)
				}
				words = len(strings.Fields(strings.Join(buffer, " ")))
			}

			buffer = append(buffer, sentence)
			words += wordCount
		}

		if len(buffer) > 0 {
			flush(buffer, page.Number)
		}
	}

	return chunks
}
