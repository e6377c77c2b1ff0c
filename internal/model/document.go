package model

import "time"

type DocumentKind string

const (
	KindResume         DocumentKind = "resume"
	KindJobDescription DocumentKind = "job_description"
)

type Document struct {
	ID         string       `json:"id"`
	Kind       DocumentKind `json:"kind"`
	Filename   string       `json:"filename"`
	Text       string       `json:"text"`
	UploadedAt time.Time    `json:"uploaded_at"`
}

// Chunk is the smallest retrievable unit of a document. IDs are assigned in
// document order and are stable within one document generation; Section is
// empty for the fallback chunk produced when no header was detected.
type Chunk struct {
	ID         int    `json:"id"`
	Section    string `json:"section"`
	Text       string `json:"text"`
	DocumentID string `json:"document_id"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
