package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"tutor-api/internal/domain"
	"tutor-api/internal/generation"
	"tutor-api/internal/platform/logger"
	"tutor-api/internal/platform/pdfext"
	"tutor-api/internal/store"
)

// DocumentService provides the upload-to-study-material pipeline: PDF text
// extraction, summarization, flashcard generation, and grounded discussion.
type DocumentService interface {
	// ProcessUpload extracts text from the PDF bytes, stores the document,
	// and generates a summary and flashcards for it. Partial failures
	// (summary or flashcards) leave the document in the
	// completed_with_errors status rather than failing the upload.
	ProcessUpload(ctx context.Context, userID uuid.UUID, filename string, data []byte) (*domain.Document, []*domain.Card, error)

	// GetDocument retrieves one of the user's documents with its cards.
	// Returns ErrDocumentNotFound or ErrNotOwned as appropriate.
	GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, []*domain.Card, error)

	// ListDocuments retrieves the user's documents, newest first.
	ListDocuments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Document, error)

	// Discuss answers a question using only the stored document's content.
	// When the model provider is unreachable it returns the static fallback
	// message instead of an error.
	Discuss(ctx context.Context, userID, documentID uuid.UUID, question string) (string, error)

	// DeleteDocument removes one of the user's documents and its cards.
	DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error
}

// Chunk sizing for prompt assembly. Extracted text is split into
// paragraph-aware chunks and reassembled up to a per-document budget, so an
// oversized document is cut at a passage boundary rather than mid-sentence.
const (
	promptChunkChars   = 4000
	promptContentChars = 24000
)

// promptText assembles the document text handed to the prompt builders from
// whole chunks, stopping once the per-document budget is reached.
func promptText(content string) string {
	return assembleChunks(pdfext.Chunk(content, promptChunkChars), promptContentChars)
}

func assembleChunks(chunks []string, budget int) string {
	var b strings.Builder
	for _, chunk := range chunks {
		if b.Len() > 0 && b.Len()+len(chunk)+2 > budget {
			break
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(chunk)
	}
	return b.String()
}

// documentServiceImpl implements the DocumentService interface.
type documentServiceImpl struct {
	db          *sql.DB
	documents   store.DocumentStore
	cards       store.CardStore
	generator   generation.Generator
	temperature float32
	logger      *slog.Logger
}

// NewDocumentService creates a DocumentService. db is used for transactional
// writes spanning the document and card stores.
func NewDocumentService(
	db *sql.DB,
	documents store.DocumentStore,
	cards store.CardStore,
	generator generation.Generator,
	temperature float32,
	log *slog.Logger,
) DocumentService {
	if db == nil {
		panic("db cannot be nil")
	}
	if documents == nil || cards == nil {
		panic("stores cannot be nil")
	}
	if generator == nil {
		panic("generator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &documentServiceImpl{
		db:          db,
		documents:   documents,
		cards:       cards,
		generator:   generator,
		temperature: temperature,
		logger:      log.With(slog.String("component", "document_service")),
	}
}

// ProcessUpload implements DocumentService.ProcessUpload.
func (s *documentServiceImpl) ProcessUpload(
	ctx context.Context,
	userID uuid.UUID,
	filename string,
	data []byte,
) (*domain.Document, []*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	extraction, err := pdfext.Extract(data)
	if err != nil {
		log.Warn("PDF extraction failed",
			slog.String("error", err.Error()),
			slog.String("filename", filename))
		return nil, nil, err
	}

	doc, err := domain.NewDocument(userID, filename, extraction.Content, extraction.PageCount)
	if err != nil {
		return nil, nil, err
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		log.Error("failed to store document",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return nil, nil, err
	}

	summaryOK := s.summarize(ctx, doc)
	cards, cardsOK := s.generateCards(ctx, doc)

	status := domain.DocumentStatusCompleted
	if !summaryOK || !cardsOK {
		status = domain.DocumentStatusCompletedWithErrors
	}
	if err := s.documents.UpdateStatus(ctx, doc.ID, status); err != nil {
		log.Error("failed to update document status",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
	}
	doc.Status = status

	log.Info("document processed",
		slog.String("document_id", doc.ID.String()),
		slog.String("status", string(status)),
		slog.Int("page_count", doc.PageCount),
		slog.Int("cards", len(cards)))
	return doc, cards, nil
}

// summarize generates and stores the document summary. Returns false when
// the summary could not be produced; the document itself is unaffected.
func (s *documentServiceImpl) summarize(ctx context.Context, doc *domain.Document) bool {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := generation.SummaryPrompt(promptText(doc.Content))
	if err != nil {
		return false
	}

	summary, err := s.generator.Generate(ctx, generation.Request{
		System:      generation.SummarySystem,
		Prompt:      prompt,
		Temperature: s.temperature,
	})
	if err != nil {
		log.Warn("summary generation failed",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return false
	}

	if err := s.documents.UpdateSummary(ctx, doc.ID, summary); err != nil {
		log.Error("failed to store summary",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return false
	}
	doc.Summary = summary
	return true
}

// generateCards generates and stores flashcards for the document. Returns
// the stored cards and whether generation fully succeeded.
func (s *documentServiceImpl) generateCards(ctx context.Context, doc *domain.Document) ([]*domain.Card, bool) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	prompt, err := generation.FlashcardPrompt(promptText(doc.Content))
	if err != nil {
		return nil, false
	}

	reply, err := s.generator.Generate(ctx, generation.Request{
		System:      generation.FlashcardSystem,
		Prompt:      prompt,
		Temperature: s.temperature,
	})
	if err != nil {
		log.Warn("flashcard generation failed",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return nil, false
	}

	fields, err := generation.ParseFlashcards(reply)
	if err != nil {
		log.Warn("flashcard reply could not be parsed",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return nil, false
	}

	cards := make([]*domain.Card, 0, len(fields))
	for _, f := range fields {
		card, err := domain.NewCard(doc.UserID, doc.ID, f.Topic, f.Question, f.Answer)
		if err != nil {
			log.Warn("skipping invalid flashcard",
				slog.String("error", err.Error()),
				slog.String("document_id", doc.ID.String()))
			continue
		}
		cards = append(cards, card)
	}
	if len(cards) == 0 {
		return nil, false
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cards.WithTx(tx).CreateMany(ctx, cards)
	})
	if err != nil {
		log.Error("failed to store flashcards",
			slog.String("error", err.Error()),
			slog.String("document_id", doc.ID.String()))
		return nil, false
	}

	return cards, true
}

// GetDocument implements DocumentService.GetDocument.
func (s *documentServiceImpl) GetDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, []*domain.Card, error) {
	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return nil, nil, err
	}

	cards, err := s.cards.ListByDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	return doc, cards, nil
}

// ListDocuments implements DocumentService.ListDocuments.
func (s *documentServiceImpl) ListDocuments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Document, error) {
	return s.documents.ListByUser(ctx, userID, limit, offset)
}

// Discuss implements DocumentService.Discuss.
func (s *documentServiceImpl) Discuss(ctx context.Context, userID, documentID uuid.UUID, question string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	doc, err := s.ownedDocument(ctx, userID, documentID)
	if err != nil {
		return "", err
	}

	prompt, err := generation.DiscussionPrompt(promptText(doc.Content), doc.Summary, question)
	if err != nil {
		return "", err
	}

	reply, err := s.generator.Generate(ctx, generation.Request{
		System:      generation.DiscussionSystem,
		Prompt:      prompt,
		Temperature: s.temperature,
	})
	if err != nil {
		log.Warn("discussion generation failed, returning fallback",
			slog.String("error", err.Error()),
			slog.String("document_id", documentID.String()))
		return generation.FallbackMessage, nil
	}

	return reply, nil
}

// DeleteDocument implements DocumentService.DeleteDocument.
func (s *documentServiceImpl) DeleteDocument(ctx context.Context, userID, documentID uuid.UUID) error {
	if _, err := s.ownedDocument(ctx, userID, documentID); err != nil {
		return err
	}
	return s.documents.Delete(ctx, documentID)
}

// ownedDocument fetches the document and verifies ownership.
func (s *documentServiceImpl) ownedDocument(ctx context.Context, userID, documentID uuid.UUID) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("fetching document: %w", err)
	}
	if doc.UserID != userID {
		return nil, ErrNotOwned
	}
	return doc, nil
}
