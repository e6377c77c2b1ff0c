package rag

import (
	"strings"
	"unicode"

	"github.com/hirescope/hirescope/internal/model"
)

const maxHeaderRunes = 50

// Section header vocabulary. A line that starts with one of these words and
// looks like a header opens a new chunk with the canonical label.
var sectionKeywords = []struct {
	label string
	words []string
}{
	{"summary", []string{"summary", "objective", "profile", "about"}},
	{"skills", []string{"skills", "technical skills", "competencies", "expertise", "technologies"}},
	{"experience", []string{"experience", "work experience", "work history", "employment"}},
	{"education", []string{"education", "academic", "qualifications"}},
	{"projects", []string{"projects", "portfolio"}},
	{"certifications", []string{"certifications", "achievements", "awards"}},
}

// ChunkDocument partitions a document's text into section-aligned chunks.
// Deterministic for identical input; never drops or rewrites content. Text
// before the first detected header (or all text when no header is found)
// becomes a single unlabelled fallback chunk. Empty input yields no chunks.
func ChunkDocument(doc model.Document) []model.Chunk {
	if strings.TrimSpace(doc.Text) == "" {
		return nil
	}

	text := strings.ReplaceAll(doc.Text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")

	var chunks []model.Chunk
	var buf []string
	section := ""

	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		buf = buf[:0]
		if content == "" {
			return
		}
		chunks = append(chunks, model.Chunk{
			ID:         len(chunks),
			Section:    section,
			Text:       content,
			DocumentID: doc.ID,
		})
	}

	for _, line := range lines {
		if label, ok := headerLabel(line); ok {
			flush()
			section = label
		}
		buf = append(buf, line)
	}
	flush()

	return chunks
}

// headerLabel reports whether the line reads as a section header and, if so,
// the normalized section label.
func headerLabel(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len([]rune(trimmed)) >= maxHeaderRunes {
		return "", false
	}
	lower := strings.ToLower(trimmed)
	for _, group := range sectionKeywords {
		for _, word := range group.words {
			if !strings.HasPrefix(lower, word) {
				continue
			}
			rest := lower[len(word):]
			if rest == "" || strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, " ") {
				return group.label, true
			}
		}
	}
	if isUpperHeader(trimmed) || strings.HasSuffix(trimmed, ":") {
		return normalizeLabel(trimmed), true
	}
	return "", false
}

// isUpperHeader matches ALL CAPS header lines like "WORK HISTORY".
func isUpperHeader(line string) bool {
	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func normalizeLabel(header string) string {
	label := strings.ToLower(strings.TrimRight(strings.TrimSpace(header), ":"))
	label = strings.Join(strings.Fields(label), "_")
	if runes := []rune(label); len(runes) > maxHeaderRunes {
		label = string(runes[:maxHeaderRunes])
	}
	return label
}
