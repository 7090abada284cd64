package retrieval

import "strings"

// AssembleContext joins hit texts into a single context block for prompt
// assembly. Hits are deduplicated by exact text value, kept in score order
// and the result is truncated at a word boundary near maxChars. No hits
// yields "".
func AssembleContext(hits []Hit, maxChars int) string {
	if len(hits) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(hits))
	var b strings.Builder
	for _, h := range hits {
		if h.Chunk == nil || h.Chunk.Text == "" {
			continue
		}
		if _, dup := seen[h.Chunk.Text]; dup {
			continue
		}
		seen[h.Chunk.Text] = struct{}{}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(h.Chunk.Text)
	}

	text := b.String()
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if i := strings.LastIndexAny(cut, " \n"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \n")
}
