package mapper

import (
	"encoding/json"
	"fmt"

	"documind-be/internal/entity"
	"documind-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(s *model.ChatSession) (*entity.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	var turns []entity.ChatTurn
	if len(s.Turns) > 0 {
		if err := json.Unmarshal(s.Turns, &turns); err != nil {
			return nil, fmt.Errorf("decode turns for session %s: %w", s.Id, err)
		}
	}

	var files []string
	if len(s.UploadedFiles) > 0 {
		if err := json.Unmarshal(s.UploadedFiles, &files); err != nil {
			return nil, fmt.Errorf("decode uploaded files for session %s: %w", s.Id, err)
		}
	}

	return &entity.ChatSession{
		Id:            s.Id,
		Title:         s.Title,
		Turns:         turns,
		UploadedFiles: files,
		IndexPath:     s.IndexPath,
		LlmProvider:   s.LlmProvider,
		PromptVariant: s.PromptVariant,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

func (m *ChatMapper) ToModel(s *entity.ChatSession) (*model.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	// Always store arrays, never JSON null, so projections and imports can
	// unmarshal without nil checks.
	turns := s.Turns
	if turns == nil {
		turns = []entity.ChatTurn{}
	}
	turnsJSON, err := json.Marshal(turns)
	if err != nil {
		return nil, fmt.Errorf("encode turns for session %s: %w", s.Id, err)
	}

	files := s.UploadedFiles
	if files == nil {
		files = []string{}
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("encode uploaded files for session %s: %w", s.Id, err)
	}

	return &model.ChatSession{
		Id:            s.Id,
		Title:         s.Title,
		Turns:         turnsJSON,
		UploadedFiles: filesJSON,
		IndexPath:     s.IndexPath,
		LlmProvider:   s.LlmProvider,
		PromptVariant: s.PromptVariant,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

func (m *ChatMapper) ToMeta(s *model.ChatSession) *entity.SessionMeta {
	if s == nil {
		return nil
	}

	return &entity.SessionMeta{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *ChatMapper) ToMetas(rows []*model.ChatSession) []*entity.SessionMeta {
	metas := make([]*entity.SessionMeta, len(rows))
	for i, row := range rows {
		metas[i] = m.ToMeta(row)
	}
	return metas
}
