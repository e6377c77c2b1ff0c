package errors

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat    = errors.New("unsupported format")
	ErrEmptyDocument        = errors.New("empty document")
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	ErrNoDocumentIndexed    = errors.New("no document indexed")
	ErrInvalidQuery         = errors.New("invalid query")
	ErrGenerationFailed     = errors.New("generation failed")
	ErrMissingDocument      = errors.New("missing document")
	ErrInvalid              = errors.New("invalid")
	ErrInternal             = errors.New("internal")
)

type kindError struct {
	kind  error
	cause error
}

func (e *kindError) Error() string {
	if e.cause == nil {
		return e.kind.Error()
	}
	return fmt.Sprintf("%s: %v", e.kind.Error(), e.cause)
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.cause
}

// Kind tags cause with one of the sentinel error kinds above. The cause
// stays reachable through Unwrap for logging; errors.Is matches the kind.
func Kind(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &kindError{kind: kind, cause: cause}
}

func IsEmbeddingUnavailable(err error) bool {
	return errors.Is(err, ErrEmbeddingUnavailable)
}

func IsGenerationFailed(err error) bool {
	return errors.Is(err, ErrGenerationFailed)
}

func IsNoDocumentIndexed(err error) bool {
	return errors.Is(err, ErrNoDocumentIndexed)
}
