package rag

import "strings"

// defaultSeparators is the priority order for recursive splitting: prefer
// paragraph breaks, then line breaks, then sentence and phrase boundaries,
// then words, then raw characters. The "**" entry keeps markdown bold
// headings from being fractured mid-marker.
// Defaults mirror the service configuration so a zero-option Service
// behaves like the configured production one.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
	DefaultTopK         = 5
)

var defaultSeparators = []string{"\n\n", "\n", "**", ". ", ", ", " ", ""}

// Splitter breaks long documents into bounded, overlapping chunks for
// vector-mode storage. It tries separators in priority order so chunks end
// on semantic boundaries whenever the text allows it.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewSplitter creates a Splitter with the given target chunk size and
// overlap (both in bytes). Overlap must be smaller than the chunk size;
// config validation enforces this upstream.
func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   defaultSeparators,
	}
}

// Split breaks text into chunks of at most chunkSize bytes, overlapping by
// roughly chunkOverlap. Whitespace-only fragments are dropped.
func (s *Splitter) Split(text string) []string {
	pieces := s.split(text, s.separators)
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// split recursively divides text using the first separator present in it,
// descending to finer separators for fragments still over the size limit.
func (s *Splitter) split(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		return []string{text}
	}

	// Pick the first separator that occurs in the text; the final ""
	// entry always matches and means character-level splitting.
	sep := ""
	var finer []string
	for i, candidate := range separators {
		if candidate == "" {
			sep = ""
			finer = nil
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			finer = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return s.splitByLength(text)
	}

	var final []string
	var pending []string
	for _, piece := range strings.Split(text, sep) {
		if len(piece) <= s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			final = append(final, s.merge(pending, sep)...)
			pending = nil
		}
		final = append(final, s.split(piece, finer)...)
	}
	if len(pending) > 0 {
		final = append(final, s.merge(pending, sep)...)
	}
	return final
}

// merge greedily joins small pieces back together up to chunkSize,
// carrying a tail of up to chunkOverlap bytes into the next chunk.
func (s *Splitter) merge(pieces []string, sep string) []string {
	var chunks []string
	var current []string
	total := 0

	joinedLen := func(addition int) int {
		if len(current) == 0 {
			return total + addition
		}
		return total + addition + len(sep)
	}

	for _, piece := range pieces {
		if joinedLen(len(piece)) > s.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, sep))
			// Shrink the window until it fits inside the overlap budget
			// and leaves room for the incoming piece.
			for len(current) > 0 &&
				(total > s.chunkOverlap || joinedLen(len(piece)) > s.chunkSize) {
				total -= len(current[0])
				if len(current) > 1 {
					total -= len(sep)
				}
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += len(piece)
		if len(current) > 1 {
			total += len(sep)
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, sep))
	}
	return chunks
}

// splitByLength is the character-level last resort for text with no usable
// separators. Boundaries respect rune starts so multi-byte characters are
// never torn.
func (s *Splitter) splitByLength(text string) []string {
	step := s.chunkSize - s.chunkOverlap
	if step <= 0 {
		step = s.chunkSize
	}

	var chunks []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// SplitParagraphs breaks text on blank lines and returns the trimmed,
// non-empty paragraphs. This is the keyword-mode splitter.
func SplitParagraphs(text string) []string {
	var out []string
	for _, para := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(para); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
