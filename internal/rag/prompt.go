package rag

import (
	"strings"

	"github.com/hirescope/hirescope/internal/model"
)

// HistoryWindow bounds how many trailing conversation messages are carried
// into the prompt.
const HistoryWindow = 6

// SystemDirective is the fixed grounding instruction for every chat
// generation. It is not caller-overridable.
const SystemDirective = `You are a resume screening assistant. You answer questions about a candidate based ONLY on the provided resume context.

Rules:
- Answer ONLY using the given context. If the context does not contain enough information, say so.
- Do NOT invent or assume facts not in the context.
- Be concise and professional.
- If asked about skills, experience, education, etc., base your answer strictly on the context.`

type Prompt struct {
	System string
	User   string
}

// BuildPrompt assembles the generation payload from retrieved chunks, the
// question and the trailing conversation window. A non-positive window
// falls back to HistoryWindow. Only chunk text goes in as factual context;
// the full document never does.
func BuildPrompt(chunks []model.Chunk, question string, history []model.ChatMessage, windowSize int) Prompt {
	if windowSize <= 0 {
		windowSize = HistoryWindow
	}
	var sb strings.Builder
	sb.WriteString("Resume context (retrieved sections only):\n\n")
	sb.WriteString(renderContext(chunks))
	sb.WriteString("\n\n---\n")

	if window := trailingWindow(history, windowSize); len(window) > 0 {
		sb.WriteString("\nConversation so far:\n")
		for _, msg := range window {
			role := "User"
			if msg.Role == model.RoleAssistant {
				role = "Assistant"
			}
			sb.WriteString(role)
			sb.WriteString(": ")
			sb.WriteString(msg.Content)
			sb.WriteString("\n")
		}
		sb.WriteString("\n---\n")
	}

	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)

	return Prompt{System: SystemDirective, User: sb.String()}
}

func renderContext(chunks []model.Chunk) string {
	if len(chunks) == 0 {
		return "No relevant resume content found."
	}
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Section != "" {
			parts = append(parts, "["+chunk.Section+"] "+chunk.Text)
			continue
		}
		parts = append(parts, chunk.Text)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func trailingWindow(history []model.ChatMessage, n int) []model.ChatMessage {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
