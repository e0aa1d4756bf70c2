package mapper

import (
	"testing"
	"time"

	"documind-be/internal/entity"
	"documind-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSessionRoundTrip(t *testing.T) {
	m := NewChatMapper()
	indexPath := "/data/indexes/abc.db"
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	src := &entity.ChatSession{
		Id:    uuid.New(),
		Title: "Chat with report.pdf",
		Turns: []entity.ChatTurn{
			{Role: "user", Content: "What is this about?", Timestamp: now},
			{Role: "model", Content: "A quarterly report.", Timestamp: now.Add(time.Second)},
		},
		UploadedFiles: []string{"report.pdf", "appendix.pdf"},
		IndexPath:     &indexPath,
		LlmProvider:   "ollama",
		PromptVariant: "strict",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	row, err := m.ToModel(src)
	require.NoError(t, err)

	got, err := m.ToEntity(row)
	require.NoError(t, err)

	assert.Equal(t, src.Id, got.Id)
	assert.Equal(t, src.Title, got.Title)
	assert.Equal(t, src.Turns, got.Turns)
	assert.Equal(t, src.UploadedFiles, got.UploadedFiles)
	require.NotNil(t, got.IndexPath)
	assert.Equal(t, indexPath, *got.IndexPath)
	assert.Equal(t, "strict", got.PromptVariant)
}

func TestChatSessionEmptyCollectionsStoredAsArrays(t *testing.T) {
	m := NewChatMapper()

	row, err := m.ToModel(&entity.ChatSession{Id: uuid.New(), Title: "Empty"})
	require.NoError(t, err)

	assert.Equal(t, "[]", string(row.Turns))
	assert.Equal(t, "[]", string(row.UploadedFiles))
	assert.Nil(t, row.IndexPath)
}

func TestChatSessionCorruptTurnsColumn(t *testing.T) {
	m := NewChatMapper()

	_, err := m.ToEntity(&model.ChatSession{
		Id:    uuid.New(),
		Title: "Broken",
		Turns: []byte(`{"not":"an array"`),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode turns")
}

func TestChatSessionToMeta(t *testing.T) {
	m := NewChatMapper()
	now := time.Now()

	meta := m.ToMeta(&model.ChatSession{
		Id:        uuid.New(),
		Title:     "Chat with spec.pdf",
		Turns:     []byte(`[{"role":"user","content":"hi"}]`),
		CreatedAt: now,
		UpdatedAt: now,
	})

	assert.Equal(t, "Chat with spec.pdf", meta.Title)
	assert.Equal(t, now, meta.UpdatedAt)
}

func TestNoteRoundTrip(t *testing.T) {
	m := NewNoteMapper()

	src := &entity.Note{
		Id:      uuid.New(),
		Title:   "Reading list",
		Content: "Papers to read this week",
		Tags:    []string{"research", "todo"},
		Folder:  "Work",
	}

	row, err := m.ToModel(src)
	require.NoError(t, err)

	got, err := m.ToEntity(row)
	require.NoError(t, err)

	assert.Equal(t, src.Tags, got.Tags)
	assert.Equal(t, "Work", got.Folder)
}

func TestNilRowsMapToNil(t *testing.T) {
	chat := NewChatMapper()
	note := NewNoteMapper()

	gotSession, err := chat.ToEntity(nil)
	require.NoError(t, err)
	assert.Nil(t, gotSession)

	gotNote, err := note.ToEntity(nil)
	require.NoError(t, err)
	assert.Nil(t, gotNote)
	assert.Nil(t, chat.ToMeta(nil))
}
