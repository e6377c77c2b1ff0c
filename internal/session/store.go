package session

import (
	"sync/atomic"

	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/rag"
)

// State describes which documents the session currently holds.
type State string

const (
	StateEmpty      State = "empty"
	StateResumeOnly State = "resume_only"
	StateJDOnly     State = "jd_only"
	StateBoth       State = "both"
)

// Snapshot is an immutable view of the session. Readers that grab a
// snapshot keep a consistent resume/chunks/index triple even if an upload
// replaces the session mid-request.
type Snapshot struct {
	Resume      *model.Document
	Chunks      []model.Chunk
	Index       *rag.Index
	Fingerprint string

	JobDescription *model.Document

	// Generation increments on every swap, for logging.
	Generation int64
}

func (s *Snapshot) State() State {
	switch {
	case s == nil:
		return StateEmpty
	case s.Resume != nil && s.JobDescription != nil:
		return StateBoth
	case s.Resume != nil:
		return StateResumeOnly
	case s.JobDescription != nil:
		return StateJDOnly
	default:
		return StateEmpty
	}
}

// Store holds the single active session. Writers prepare a full replacement
// snapshot off to the side and publish it with one atomic swap, so readers
// never observe a resume paired with another resume's index.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Current returns the active snapshot, or nil when nothing was uploaded yet.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// SetResume replaces the resume, its chunks and its index in one swap. The
// job description, if any, carries over unchanged.
func (s *Store) SetResume(doc *model.Document, chunks []model.Chunk, index *rag.Index, fingerprint string) *Snapshot {
	for {
		old := s.current.Load()
		next := &Snapshot{
			Resume:      doc,
			Chunks:      chunks,
			Index:       index,
			Fingerprint: fingerprint,
		}
		if old != nil {
			next.JobDescription = old.JobDescription
			next.Generation = old.Generation + 1
		}
		if s.current.CompareAndSwap(old, next) {
			return next
		}
	}
}

// SetJobDescription replaces the job description, carrying the resume and
// its derived state over unchanged.
func (s *Store) SetJobDescription(doc *model.Document) *Snapshot {
	for {
		old := s.current.Load()
		next := &Snapshot{JobDescription: doc}
		if old != nil {
			next.Resume = old.Resume
			next.Chunks = old.Chunks
			next.Index = old.Index
			next.Fingerprint = old.Fingerprint
			next.Generation = old.Generation + 1
		}
		if s.current.CompareAndSwap(old, next) {
			return next
		}
	}
}

// Reset drops the session entirely.
func (s *Store) Reset() {
	s.current.Store(nil)
}
