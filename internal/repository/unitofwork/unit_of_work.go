package unitofwork

import (
	"context"

	"documind-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.ChatSessionRepository
	NoteRepository() contract.NoteRepository
}
