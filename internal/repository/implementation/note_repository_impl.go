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

type NoteRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NoteMapper
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{
		db:     db,
		mapper: mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m, err := r.mapper.ToModel(note)
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
	*note = *e
	return nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note) (int64, error) {
	m, err := r.mapper.ToModel(note)
	if err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Model(&model.Note{}).
		Where("id = ?", m.Id).
		Select("title", "content", "tags", "folder", "updated_at").
		Updates(m)
	return result.RowsAffected, result.Error
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	var m model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var rows []*model.Note
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows)
}

func (r *NoteRepositoryImpl) Folders(ctx context.Context) ([]string, error) {
	var folders []string
	err := r.db.WithContext(ctx).Model(&model.Note{}).
		Distinct("folder").
		Order("folder ASC").
		Pluck("folder", &folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *NoteRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Note{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
