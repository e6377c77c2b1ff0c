package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/hirescope/hirescope/internal/ai"
	"github.com/hirescope/hirescope/internal/extract"
	"github.com/hirescope/hirescope/internal/model"
	appErr "github.com/hirescope/hirescope/internal/pkg/errors"
	"github.com/hirescope/hirescope/internal/rag"
	"github.com/hirescope/hirescope/internal/scoring"
	"github.com/hirescope/hirescope/internal/session"
)

type Options struct {
	TopK             int
	HistoryWindow    int
	MaxQuestionChars int
	MaxInputChars    int
	GenerateTimeout  time.Duration
}

func (o *Options) applyDefaults() {
	if o.TopK <= 0 {
		o.TopK = 5
	}
	if o.HistoryWindow <= 0 {
		o.HistoryWindow = rag.HistoryWindow
	}
	if o.MaxQuestionChars <= 0 {
		o.MaxQuestionChars = 2000
	}
	if o.MaxInputChars <= 0 {
		o.MaxInputChars = 200000
	}
	if o.GenerateTimeout <= 0 {
		o.GenerateTimeout = 60 * time.Second
	}
}

type UploadResult struct {
	Success    bool          `json:"success"`
	Message    string        `json:"message"`
	Filename   string        `json:"filename"`
	TextLength int           `json:"text_length"`
	DocumentID string        `json:"document_id"`
	Kind       string        `json:"kind"`
	Chunks     int           `json:"chunks,omitempty"`
	State      session.State `json:"state"`
}

type ChatResult struct {
	Answer   string   `json:"answer"`
	Sections []string `json:"sections"`
}

// ScreeningService wires the session store, the retrieval pipeline, the
// scoring engine and the text generator behind the HTTP surface.
type ScreeningService struct {
	store     *session.Store
	embedder  ai.IEmbedder
	generator ai.IGenerator
	retriever *rag.Retriever
	engine    *scoring.Engine
	opts      Options
}

func NewScreeningService(store *session.Store, embedder ai.IEmbedder, generator ai.IGenerator, opts Options) *ScreeningService {
	opts.applyDefaults()
	return &ScreeningService{
		store:     store,
		embedder:  embedder,
		generator: generator,
		retriever: rag.NewRetriever(embedder),
		engine:    scoring.NewEngine(),
		opts:      opts,
	}
}

// UploadResume extracts, chunks, embeds and indexes the resume, then swaps
// it into the session. All the expensive work happens before the swap, so a
// concurrent reader sees either the old session or the fully built new one.
func (s *ScreeningService) UploadResume(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	logger := logutil.GetLogger(ctx).With(zap.String("filename", filename))

	text, err := extract.FromUpload(filename, data)
	if err != nil {
		return nil, err
	}
	doc := &model.Document{
		ID:         uuid.NewString(),
		Kind:       model.KindResume,
		Filename:   filename,
		Text:       text,
		UploadedAt: time.Now(),
	}
	chunks := rag.ChunkDocument(*doc)
	if len(chunks) == 0 {
		return nil, appErr.ErrEmptyDocument
	}

	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		logger.Error("failed to embed resume chunks", zap.Error(err))
		return nil, err
	}
	entries := make([]rag.Entry, 0, len(chunks))
	for i, chunk := range chunks {
		entries = append(entries, rag.Entry{Chunk: chunk, Vector: vectors[i]})
	}
	index, err := rag.BuildIndex(entries)
	if err != nil {
		logger.Error("failed to build resume index", zap.Error(err))
		return nil, err
	}

	snap := s.store.SetResume(doc, chunks, index, s.embedder.Fingerprint())
	logger.Info("resume indexed",
		zap.String("document_id", doc.ID),
		zap.Int("chunks", len(chunks)),
		zap.Int64("generation", snap.Generation))
	return &UploadResult{
		Success:    true,
		Message:    fmt.Sprintf("resume indexed into %d chunks", len(chunks)),
		Filename:   filename,
		TextLength: len(text),
		DocumentID: doc.ID,
		Kind:       string(doc.Kind),
		Chunks:     len(chunks),
		State:      snap.State(),
	}, nil
}

// UploadJobDescription stores the JD text. It is not chunked or embedded;
// scoring and prompting consume it whole.
func (s *ScreeningService) UploadJobDescription(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	text, err := extract.FromUpload(filename, data)
	if err != nil {
		return nil, err
	}
	doc := &model.Document{
		ID:         uuid.NewString(),
		Kind:       model.KindJobDescription,
		Filename:   filename,
		Text:       text,
		UploadedAt: time.Now(),
	}
	snap := s.store.SetJobDescription(doc)
	logutil.GetLogger(ctx).Info("job description stored",
		zap.String("filename", filename),
		zap.String("document_id", doc.ID),
		zap.Int64("generation", snap.Generation))
	return &UploadResult{
		Success:    true,
		Message:    "job description stored",
		Filename:   filename,
		TextLength: len(text),
		DocumentID: doc.ID,
		Kind:       string(doc.Kind),
		State:      snap.State(),
	}, nil
}

// Analyze scores the current resume against the current job description.
// It recomputes on every call so a replaced document is always reflected.
func (s *ScreeningService) Analyze(ctx context.Context) (*model.MatchAnalysis, error) {
	snap := s.store.Current()
	if snap.State() != session.StateBoth {
		return nil, appErr.Kind(appErr.ErrMissingDocument, nil)
	}
	analysis := s.engine.Score(snap.Resume.Text, snap.JobDescription.Text)
	logutil.GetLogger(ctx).Info("analysis computed",
		zap.Float64("match_score", analysis.MatchScore),
		zap.Int("skill_overlap", len(analysis.SkillOverlap)),
		zap.Int("missing_skills", len(analysis.MissingSkills)))
	return &analysis, nil
}

// Chat answers a question about the indexed resume. Retrieval and prompt
// assembly run against one snapshot, so an upload racing this call cannot
// mix documents.
func (s *ScreeningService) Chat(ctx context.Context, question string, history []model.ChatMessage) (*ChatResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, appErr.Kind(appErr.ErrInvalidQuery, nil)
	}
	if len([]rune(question)) > s.opts.MaxQuestionChars {
		return nil, appErr.Kind(appErr.ErrInvalidQuery, nil)
	}
	snap := s.store.Current()
	if snap == nil || snap.Index == nil {
		return nil, appErr.Kind(appErr.ErrNoDocumentIndexed, nil)
	}

	chunks, err := s.retriever.Retrieve(ctx, snap.Index, snap.Fingerprint, question, s.opts.TopK)
	if err != nil {
		return nil, err
	}
	prompt := rag.BuildPrompt(chunks, question, history, s.opts.HistoryWindow)

	genCtx, cancel := context.WithTimeout(ctx, s.opts.GenerateTimeout)
	defer cancel()
	answer, err := s.generator.Generate(genCtx, prompt.System, truncate(prompt.User, s.opts.MaxInputChars))
	if err != nil {
		logutil.GetLogger(ctx).Error("failed to generate answer", zap.Error(err))
		return nil, err
	}

	sections := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.Section != "" {
			sections = append(sections, chunk.Section)
		}
	}
	return &ChatResult{Answer: answer, Sections: sections}, nil
}

// Ask is a bare passthrough to the generator with no retrieval or history.
func (s *ScreeningService) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", appErr.Kind(appErr.ErrInvalidQuery, nil)
	}
	genCtx, cancel := context.WithTimeout(ctx, s.opts.GenerateTimeout)
	defer cancel()
	return s.generator.Generate(genCtx, "", truncate(prompt, s.opts.MaxInputChars))
}

// truncate bounds generator input on rune boundaries.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// State reports which documents the session holds, for the health endpoint.
func (s *ScreeningService) State() session.State {
	return s.store.Current().State()
}
