package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"documind-be/internal/entity"
	"documind-be/internal/pkg/logger"
	"documind-be/internal/repository/memory"
	"documind-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessionService struct {
	record    *entity.ChatSession
	getErr    error
	saved     *entity.ChatSession
	deletedID uuid.UUID
}

func (s *stubSessionService) Create(ctx context.Context, title string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *stubSessionService) Save(ctx context.Context, session *entity.ChatSession) error {
	s.saved = session
	return nil
}

func (s *stubSessionService) Get(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.record, nil
}

func (s *stubSessionService) ListAll(ctx context.Context, titleQuery string) ([]*entity.SessionMeta, error) {
	return nil, nil
}

func (s *stubSessionService) Rename(ctx context.Context, id uuid.UUID, title string) (bool, error) {
	return true, nil
}

func (s *stubSessionService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.deletedID = id
	return true, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func TestBuildSessionTitle(t *testing.T) {
	assert.Equal(t, "Chat with report.pdf", buildSessionTitle([]string{"report.pdf"}))
	assert.Equal(t, "Chat with a.pdf, b.pdf", buildSessionTitle([]string{"a.pdf", "b.pdf"}))
}

func TestBuildSessionTitleTruncatesAtFiftyRunes(t *testing.T) {
	long := buildSessionTitle([]string{"a-very-long-document-name-that-keeps-going-and-going.pdf"})

	runes := []rune(long)
	assert.Len(t, runes, 51)
	assert.Equal(t, '…', runes[50])
	assert.True(t, strings.HasPrefix(long, "Chat with "))
}

func TestTruncateTitleCountsRunesNotBytes(t *testing.T) {
	in := strings.Repeat("é", 60)

	out := truncateTitle(in)

	runes := []rune(out)
	assert.Len(t, runes, 51)
	assert.Equal(t, strings.Repeat("é", 50)+"…", out)
}

func TestTruncateTitleShortInputUnchanged(t *testing.T) {
	assert.Equal(t, "short title", truncateTitle("  short title  "))
}

func TestToLLMMessagesPreservesOrderAndRoles(t *testing.T) {
	turns := []entity.ChatTurn{
		{Role: "user", Content: "first"},
		{Role: "model", Content: "second"},
	}

	messages := toLLMMessages(turns)

	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "model", messages[1].Role)
}

func TestExportHistoryCSV(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	stub := &stubSessionService{record: &entity.ChatSession{
		Id:    id,
		Title: "Chat with report.pdf",
		Turns: []entity.ChatTurn{
			{Role: "user", Content: "What is the total, in euros?", Timestamp: ts},
			{Role: "model", Content: "About 1,200.", Timestamp: ts},
		},
	}}
	svc := &chatbotService{sessions: stub, logger: noopLogger{}}

	filename, data, err := svc.ExportHistoryCSV(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "chat_history_"+id.String()[:8]+".csv", filename)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Role,Message,Timestamp", lines[0])
	assert.Contains(t, lines[1], `"What is the total, in euros?"`)
	assert.Contains(t, lines[1], "2026-05-02T10:00:00Z")
	assert.Contains(t, lines[2], `"About 1,200."`)
}

func TestExportHistoryCSVEmptyTranscript(t *testing.T) {
	id := uuid.New()
	stub := &stubSessionService{record: &entity.ChatSession{Id: id, Title: "Empty"}}
	svc := &chatbotService{sessions: stub, logger: noopLogger{}}

	_, data, err := svc.ExportHistoryCSV(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Role,Message,Timestamp", strings.TrimSpace(string(data)))
}

func TestDeleteSessionInvalidatesCacheAndRow(t *testing.T) {
	id := uuid.New()
	stub := &stubSessionService{record: &entity.ChatSession{Id: id, Title: "Doomed"}}
	cache := memory.NewActiveSessionCache(nil)
	cache.Put(&store.ActiveSession{SessionID: id.String()})

	svc := &chatbotService{sessions: stub, cache: cache, logger: noopLogger{}}

	err := svc.DeleteSession(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, stub.deletedID)
	_, stillCached := cache.Get(id.String())
	assert.False(t, stillCached)
}
