package errcode

const (
	ErrUnknown = 20000000 + iota
	ErrInvalid
	ErrTooMany
	ErrInternal
	ErrUnsupportedFormat
	ErrEmptyDocument
	ErrEmbeddingUnavailable
	ErrNoDocumentIndexed
	ErrGenerationFailed
	ErrMissingDocument
)
