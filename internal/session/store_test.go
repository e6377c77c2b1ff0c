package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hirescope/hirescope/internal/model"
	"github.com/hirescope/hirescope/internal/rag"
)

func buildTestIndex(t *testing.T, docID string) ([]model.Chunk, *rag.Index) {
	t.Helper()
	chunks := []model.Chunk{
		{ID: 0, Section: "skills", Text: "Go", DocumentID: docID},
		{ID: 1, Section: "education", Text: "BSc", DocumentID: docID},
	}
	idx, err := rag.BuildIndex([]rag.Entry{
		{Chunk: chunks[0], Vector: []float32{1, 0}},
		{Chunk: chunks[1], Vector: []float32{0, 1}},
	})
	require.NoError(t, err)
	return chunks, idx
}

func TestStoreStateMachine(t *testing.T) {
	store := NewStore()
	require.Equal(t, StateEmpty, store.Current().State())

	chunks, idx := buildTestIndex(t, "r1")
	store.SetResume(&model.Document{ID: "r1", Kind: model.KindResume}, chunks, idx, "local:")
	require.Equal(t, StateResumeOnly, store.Current().State())

	store.SetJobDescription(&model.Document{ID: "j1", Kind: model.KindJobDescription})
	require.Equal(t, StateBoth, store.Current().State())

	store.Reset()
	require.Equal(t, StateEmpty, store.Current().State())

	store.SetJobDescription(&model.Document{ID: "j2", Kind: model.KindJobDescription})
	require.Equal(t, StateJDOnly, store.Current().State())
}

func TestSetResume_PreservesJobDescription(t *testing.T) {
	store := NewStore()
	store.SetJobDescription(&model.Document{ID: "j1"})

	chunks, idx := buildTestIndex(t, "r1")
	snap := store.SetResume(&model.Document{ID: "r1"}, chunks, idx, "local:")

	require.NotNil(t, snap.JobDescription)
	require.Equal(t, "j1", snap.JobDescription.ID)
	require.Equal(t, "r1", snap.Resume.ID)
}

func TestSetJobDescription_PreservesResumeAndIndex(t *testing.T) {
	store := NewStore()
	chunks, idx := buildTestIndex(t, "r1")
	store.SetResume(&model.Document{ID: "r1"}, chunks, idx, "local:")

	snap := store.SetJobDescription(&model.Document{ID: "j1"})
	require.Equal(t, "r1", snap.Resume.ID)
	require.Equal(t, idx, snap.Index)
	require.Equal(t, "local:", snap.Fingerprint)
}

func TestSnapshot_NeverMixesGenerations(t *testing.T) {
	store := NewStore()
	for i := 0; i < 100; i++ {
		docID := fmt.Sprintf("r%d", i)
		chunks, idx := buildTestIndex(t, docID)
		store.SetResume(&model.Document{ID: docID}, chunks, idx, "local:")
		snap := store.Current()
		for _, chunk := range snap.Chunks {
			require.Equal(t, snap.Resume.ID, chunk.DocumentID)
		}
	}
}

func TestStore_ConcurrentSwapsStayConsistent(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				docID := fmt.Sprintf("g%d-r%d", g, i)
				chunks, idx := buildTestIndex(t, docID)
				store.SetResume(&model.Document{ID: docID}, chunks, idx, "local:")
				store.SetJobDescription(&model.Document{ID: fmt.Sprintf("g%d-j%d", g, i)})
			}
		}(g)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		wg.Wait()
	}()
	for {
		select {
		case <-done:
			snap := store.Current()
			require.Equal(t, StateBoth, snap.State())
			return
		default:
			snap := store.Current()
			if snap != nil && snap.Resume != nil {
				for _, chunk := range snap.Chunks {
					require.Equal(t, snap.Resume.ID, chunk.DocumentID)
				}
			}
		}
	}
}

func TestGenerationIncrements(t *testing.T) {
	store := NewStore()
	chunks, idx := buildTestIndex(t, "r1")
	first := store.SetResume(&model.Document{ID: "r1"}, chunks, idx, "local:")
	second := store.SetJobDescription(&model.Document{ID: "j1"})
	require.Greater(t, second.Generation, first.Generation)
}
