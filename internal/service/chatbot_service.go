package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"time"

	"documind-be/internal/constant"
	"documind-be/internal/dto"
	"documind-be/internal/entity"
	"documind-be/internal/pkg/logger"
	"documind-be/internal/repository/memory"
	"documind-be/pkg/answer"
	"documind-be/pkg/embedding"
	"documind-be/pkg/events"
	"documind-be/pkg/llm"
	"documind-be/pkg/pdf"
	"documind-be/pkg/store"
	"documind-be/pkg/utils"
	"documind-be/pkg/vectorindex"

	"github.com/google/uuid"
)

type IChatbotService interface {
	ProcessDocuments(ctx context.Context, req *dto.ProcessDocumentsRequest, files []pdf.File) (*dto.ProcessDocumentsResponse, error)
	Chat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	Warm(ctx context.Context, id uuid.UUID) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
	ExportHistoryCSV(ctx context.Context, id uuid.UUID) (string, []byte, error)
	Suggestions(ctx context.Context, id uuid.UUID, n int) (*dto.SuggestionsResponse, error)
}

type ChatbotOptions struct {
	IndexDir        string
	AllowedExts     []string
	ChunkSize       int
	ChunkOverlap    int
	RetrievalTopK   int
	DefaultProvider string
	DefaultVariant  answer.PromptVariant
}

// chatbotService orchestrates ingestion, retrieval and persistence around
// the answer engine.
type chatbotService struct {
	opts      ChatbotOptions
	sessions  ISessionService
	cache     *memory.ActiveSessionCache
	extractor pdf.Extractor
	embedder  embedding.EmbeddingProvider
	llmFor    LLMFactoryFunc
	publisher IPublisherService
	logger    logger.ILogger
}

func NewChatbotService(
	opts ChatbotOptions,
	sessions ISessionService,
	cache *memory.ActiveSessionCache,
	extractor pdf.Extractor,
	embedder embedding.EmbeddingProvider,
	llmFor LLMFactoryFunc,
	publisher IPublisherService,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		opts:      opts,
		sessions:  sessions,
		cache:     cache,
		extractor: extractor,
		embedder:  embedder,
		llmFor:    llmFor,
		publisher: publisher,
		logger:    log,
	}
}

func (c *chatbotService) ProcessDocuments(ctx context.Context, req *dto.ProcessDocumentsRequest, files []pdf.File) (*dto.ProcessDocumentsResponse, error) {
	variant := c.opts.DefaultVariant
	if req.PromptVariant != "" {
		v, err := answer.ParseVariant(req.PromptVariant)
		if err != nil {
			return nil, err
		}
		variant = v
	}

	providerName := req.LlmProvider
	if providerName == "" {
		providerName = c.opts.DefaultProvider
	}
	llmProvider, err := c.llmFor(providerName)
	if err != nil {
		return nil, err
	}

	text, results := pdf.ExtractAll(ctx, c.extractor, files, c.opts.AllowedExts)
	if strings.TrimSpace(text) == "" {
		return nil, pdf.ErrNoExtractableText
	}

	chunkSize := c.opts.ChunkSize
	if req.ChunkSize > 0 {
		chunkSize = req.ChunkSize
	}
	overlap := c.opts.ChunkOverlap
	if req.ChunkOverlap > 0 {
		overlap = req.ChunkOverlap
	}
	chunks := utils.SplitText(text, chunkSize, overlap)

	names := fileNames(files)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = buildSessionTitle(names)
	}

	// The row comes first: its id names the index file on disk.
	sessionID, err := c.sessions.Create(ctx, title)
	if err != nil {
		return nil, err
	}

	ix := vectorindex.New(c.embedder)
	if err := ix.Build(ctx, chunks); err != nil {
		c.discardSession(ctx, sessionID, "")
		return nil, err
	}

	indexPath := filepath.Join(c.opts.IndexDir, sessionID.String()+".db")
	if err := ix.Save(indexPath); err != nil {
		c.discardSession(ctx, sessionID, indexPath)
		return nil, err
	}

	record := &entity.ChatSession{
		Id:            sessionID,
		Title:         title,
		Turns:         []entity.ChatTurn{},
		UploadedFiles: names,
		IndexPath:     &indexPath,
		LlmProvider:   providerName,
		PromptVariant: variant.String(),
	}
	if err := c.sessions.Save(ctx, record); err != nil {
		c.discardSession(ctx, sessionID, indexPath)
		return nil, err
	}

	c.cache.Put(&store.ActiveSession{
		SessionID: sessionID.String(),
		Index:     ix,
		Engine:    answer.NewEngine(ix, llmProvider, variant, c.opts.RetrievalTopK),
	})

	c.logger.Info("chatbot", "documents processed", map[string]interface{}{
		"session_id": sessionID.String(),
		"files":      len(files),
		"chunks":     len(chunks),
	})
	c.publish(ctx, events.NewDocumentsProcessed(sessionID.String(), len(files), ix.Count()))

	return &dto.ProcessDocumentsResponse{
		SessionId:   sessionID,
		Title:       title,
		FileResults: results,
		ChunkCount:  len(chunks),
	}, nil
}

func (c *chatbotService) Chat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	record, err := c.sessions.Get(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}

	active, err := c.cache.EnsureLoaded(ctx, req.SessionId.String())
	if err != nil {
		return nil, err
	}

	priorTurns := len(record.Turns)
	res, err := active.Engine.Answer(ctx, req.Query, toLLMMessages(record.Turns))
	if err != nil {
		// A failed exchange leaves the transcript untouched.
		return nil, err
	}

	now := time.Now()
	record.Turns = append(record.Turns,
		entity.ChatTurn{Role: constant.ChatMessageRoleUser, Content: req.Query, Timestamp: now},
		entity.ChatTurn{Role: constant.ChatMessageRoleModel, Content: res.Answer, Timestamp: now},
	)
	if priorTurns < constant.SessionRetitleTurnLimit {
		record.Title = truncateTitle(req.Query)
	}

	if err := c.sessions.Save(ctx, record); err != nil {
		return nil, err
	}
	c.publish(ctx, events.NewTurnRecorded(record.Id.String(), req.Query))

	sources := make([]dto.SourceChunkDTO, 0, len(res.Context))
	for _, s := range res.Context {
		sources = append(sources, dto.SourceChunkDTO{Content: s.Content, Score: s.Score})
	}

	return &dto.SendChatResponse{
		SessionId:      record.Id,
		Title:          record.Title,
		Answer:         res.Answer,
		RewrittenQuery: res.RewrittenQuery,
		Sources:        sources,
		CreatedAt:      now,
	}, nil
}

// Warm brings a session's engine into memory without answering anything.
func (c *chatbotService) Warm(ctx context.Context, id uuid.UUID) error {
	_, err := c.cache.EnsureLoaded(ctx, id.String())
	return err
}

func (c *chatbotService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	record, err := c.sessions.Get(ctx, id)
	if err != nil {
		return err
	}

	// Index file first, then cache, then the row. A file that is already
	// gone is fine.
	if record.IndexPath != nil {
		if err := os.Remove(*record.IndexPath); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("chatbot", "could not remove index file", map[string]interface{}{
				"session_id": id.String(),
				"path":       *record.IndexPath,
				"error":      err.Error(),
			})
		}
	}
	c.cache.Invalidate(id.String())

	ok, err := c.sessions.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Resource: "session", ID: id.String()}
	}

	c.publish(ctx, events.NewSessionDeleted(id.String()))
	return nil
}

func (c *chatbotService) ExportHistoryCSV(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	record, err := c.sessions.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Role", "Message", "Timestamp"}); err != nil {
		return "", nil, err
	}
	for _, turn := range record.Turns {
		if err := w.Write([]string{turn.Role, turn.Content, turn.Timestamp.Format(time.RFC3339)}); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	filename := constant.ExportFilenamePrefix + record.Id.String()[:8] + ".csv"
	return filename, buf.Bytes(), nil
}

func (c *chatbotService) Suggestions(ctx context.Context, id uuid.UUID, n int) (*dto.SuggestionsResponse, error) {
	active, err := c.cache.EnsureLoaded(ctx, id.String())
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = constant.SuggestedQuestionCount
	}
	return &dto.SuggestionsResponse{Questions: active.Engine.Suggest(ctx, n)}, nil
}

// publish never fails the request; event delivery is auxiliary.
func (c *chatbotService) publish(ctx context.Context, evt events.Event) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, evt); err != nil {
		c.logger.Warn("chatbot", "event publish failed", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

// discardSession rolls back the partial artifacts of a failed processing
// run: the index file if one was written, then the row.
func (c *chatbotService) discardSession(ctx context.Context, id uuid.UUID, indexPath string) {
	if indexPath != "" {
		if err := os.Remove(indexPath); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("chatbot", "cleanup of index file failed", map[string]interface{}{
				"session_id": id.String(),
				"error":      err.Error(),
			})
		}
	}
	if _, err := c.sessions.Delete(ctx, id); err != nil {
		c.logger.Warn("chatbot", "cleanup of session row failed", map[string]interface{}{
			"session_id": id.String(),
			"error":      err.Error(),
		})
	}
}

func fileNames(files []pdf.File) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func buildSessionTitle(filenames []string) string {
	return truncateTitle(constant.SessionTitlePrefix + strings.Join(filenames, ", "))
}

func truncateTitle(title string) string {
	runes := []rune(strings.TrimSpace(title))
	if len(runes) <= constant.SessionTitleMaxRunes {
		return string(runes)
	}
	return string(runes[:constant.SessionTitleMaxRunes]) + "…"
}

func toLLMMessages(turns []entity.ChatTurn) []llm.Message {
	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	return messages
}
