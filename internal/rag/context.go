package rag

import (
	"fmt"
	"strings"
)

// NoContextSentinel is returned by ContextString when retrieval produced
// no hits. Prompt builders compare against it to decide whether the
// model should be told curriculum context is missing.
const NoContextSentinel = "No specific curriculum content found for this query."

// blockSeparator visually divides sources inside the assembled prompt
// context.
const blockSeparator = "\n\n---\n\n"

// FormatContext renders retrieval hits as a single prompt-ready string.
// Each hit becomes a numbered source block carrying its topic and
// subtopic so the model can attribute answers.
func FormatContext(hits []Hit) string {
	if len(hits) == 0 {
		return NoContextSentinel
	}

	blocks := make([]string, 0, len(hits))
	for i, hit := range hits {
		blocks = append(blocks, fmt.Sprintf("[Source %d: %s — %s]\n%s",
			i+1, hit.Metadata.TopicName, hit.Metadata.Subtopic, hit.Content))
	}
	return strings.Join(blocks, blockSeparator)
}
