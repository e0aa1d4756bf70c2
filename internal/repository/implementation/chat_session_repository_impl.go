package implementation

import (
	"context"
	"errors"

	"documind-be/internal/entity"
	"documind-be/internal/mapper"
	"documind-be/internal/model"
	"documind-be/internal/repository/contract"
	"documind-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatSessionRepositoryImpl) Create(ctx context.Context, session *entity.ChatSession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*session = *e
	return nil
}

// Update writes the full row. The explicit column list keeps zero values
// (emptied transcripts, cleared index paths) from being skipped.
func (r *ChatSessionRepositoryImpl) Update(ctx context.Context, session *entity.ChatSession) (int64, error) {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ?", m.Id).
		Select("title", "turns", "uploaded_files", "index_path", "llm_provider", "prompt_variant", "updated_at").
		Updates(m)
	return result.RowsAffected, result.Error
}

func (r *ChatSessionRepositoryImpl) UpdateTitle(ctx context.Context, id uuid.UUID, title string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.ChatSession{}).
		Where("id = ?", id).
		Update("title", title)
	return result.RowsAffected, result.Error
}

func (r *ChatSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.ChatSession{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	var m model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *ChatSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var rows []*model.ChatSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatSession, len(rows))
	for i, row := range rows {
		e, err := r.mapper.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

// FindAllMetas selects only the listing columns; transcripts and file
// lists never leave the database here.
func (r *ChatSessionRepositoryImpl) FindAllMetas(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMeta, error) {
	var rows []*model.ChatSession
	query := r.applySpecifications(
		r.db.WithContext(ctx).Model(&model.ChatSession{}).
			Select("id", "title", "created_at", "updated_at"),
		specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToMetas(rows), nil
}

func (r *ChatSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
