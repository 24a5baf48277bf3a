package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutor-api/internal/domain"
	"tutor-api/internal/store"
)

// mockDocumentStore is an in-memory DocumentStore for service tests.
type mockDocumentStore struct {
	docs map[uuid.UUID]*domain.Document
}

func newMockDocumentStore(docs ...*domain.Document) *mockDocumentStore {
	m := &mockDocumentStore{docs: make(map[uuid.UUID]*domain.Document)}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

func (m *mockDocumentStore) Create(ctx context.Context, doc *domain.Document) error {
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocumentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *mockDocumentStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Document, error) {
	var out []*domain.Document
	for _, d := range m.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockDocumentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	doc, ok := m.docs[id]
	if !ok {
		return store.ErrDocumentNotFound
	}
	doc.Status = status
	return nil
}

func (m *mockDocumentStore) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	doc, ok := m.docs[id]
	if !ok {
		return store.ErrDocumentNotFound
	}
	doc.Summary = summary
	return nil
}

func (m *mockDocumentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.docs[id]; !ok {
		return store.ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *mockDocumentStore) WithTx(tx *sql.Tx) store.DocumentStore { return m }

func newTestDocumentService(docs *mockDocumentStore, gen *mockGenerator) *documentServiceImpl {
	// Transactions are only entered when flashcards are stored; the paths
	// under test return before that.
	return &documentServiceImpl{
		documents:   docs,
		generator:   gen,
		temperature: 0.7,
		logger:      slog.Default(),
	}
}

func TestAssembleChunks(t *testing.T) {
	t.Parallel()

	t.Run("no chunks yields empty text", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, assembleChunks(nil, 100))
	})

	t.Run("chunks within budget are joined with blank lines", func(t *testing.T) {
		t.Parallel()
		got := assembleChunks([]string{"one", "two"}, 100)
		assert.Equal(t, "one\n\ntwo", got)
	})

	t.Run("stops before the chunk that would exceed the budget", func(t *testing.T) {
		t.Parallel()
		got := assembleChunks([]string{"aaaa", "bbbb", "cccc"}, 10)
		assert.Equal(t, "aaaa\n\nbbbb", got)
	})

	t.Run("the first chunk is always kept", func(t *testing.T) {
		t.Parallel()
		got := assembleChunks([]string{"aaaaaaaaaa"}, 4)
		assert.Equal(t, "aaaaaaaaaa", got)
	})
}

func TestDocumentServiceDiscussUsesChunkedContent(t *testing.T) {
	t.Parallel()

	// Seven paragraphs of ~3.9k characters each: every paragraph fits in one
	// chunk, and the per-document budget admits only the first six.
	var paras []string
	for i := 1; i <= 7; i++ {
		paras = append(paras, fmt.Sprintf("paragraph-%d %s", i, strings.Repeat("x", 3880)))
	}
	content := strings.Join(paras, "\n\n")

	userID := uuid.New()
	doc, err := domain.NewDocument(userID, "notes.pdf", content, 12)
	require.NoError(t, err)

	gen := &mockGenerator{reply: "It covers osmosis."}
	svc := newTestDocumentService(newMockDocumentStore(doc), gen)

	reply, err := svc.Discuss(context.Background(), userID, doc.ID, "What does it cover?")
	require.NoError(t, err)
	assert.Equal(t, "It covers osmosis.", reply)

	assert.Contains(t, gen.lastReq.Prompt, "paragraph-1")
	assert.Contains(t, gen.lastReq.Prompt, "paragraph-6")
	assert.NotContains(t, gen.lastReq.Prompt, "paragraph-7",
		"content past the budget should be dropped at a paragraph boundary")
	assert.Contains(t, gen.lastReq.Prompt, "What does it cover?")
}
