package contract

import (
	"context"

	"documind-be/internal/entity"
	"documind-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatSessionRepository persists session records. Update, UpdateTitle and
// Delete return the number of rows touched so callers can tell a missing
// row from a no-op.
type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) (int64, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	FindAllMetas(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionMeta, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
