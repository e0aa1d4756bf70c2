package service

import (
	"context"
	"time"

	"documind-be/internal/entity"
	"documind-be/internal/pkg/logger"
	"documind-be/internal/repository/specification"
	"documind-be/internal/repository/unitofwork"
	"documind-be/pkg/events"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, title string) (uuid.UUID, error)
	Save(ctx context.Context, session *entity.ChatSession) error
	Get(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error)
	ListAll(ctx context.Context, titleQuery string) ([]*entity.SessionMeta, error)
	Rename(ctx context.Context, id uuid.UUID, title string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type sessionService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewSessionService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, log logger.ILogger) ISessionService {
	return &sessionService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (c *sessionService) Create(ctx context.Context, title string) (uuid.UUID, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session := entity.ChatSession{
		Id:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return uuid.Nil, &StoreError{Op: "create session", Err: err}
	}
	return session.Id, nil
}

// Save upserts a full session record. An id that no longer matches a row
// does not resurrect the old one: the data is inserted under a fresh id
// and the anomaly logged.
func (c *sessionService) Save(ctx context.Context, session *entity.ChatSession) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.SessionRepository()

	if session.Id == uuid.Nil {
		session.Id = uuid.New()
		if err := repo.Create(ctx, session); err != nil {
			return &StoreError{Op: "insert session", Err: err}
		}
		return nil
	}

	existing, err := repo.FindOne(ctx, specification.ByID{ID: session.Id})
	if err != nil {
		return &StoreError{Op: "look up session", Err: err}
	}

	if existing == nil {
		staleId := session.Id
		session.Id = uuid.New()
		c.logger.Warn("session", "save against unknown id, inserting under fresh id", map[string]interface{}{
			"stale_id": staleId.String(),
			"fresh_id": session.Id.String(),
		})
		if err := repo.Create(ctx, session); err != nil {
			return &StoreError{Op: "insert session", Err: err}
		}
		return nil
	}

	// A record that arrives without an index path keeps the stored one.
	if session.IndexPath == nil {
		session.IndexPath = existing.IndexPath
	}

	if _, err := repo.Update(ctx, session); err != nil {
		return &StoreError{Op: "update session", Err: err}
	}
	return nil
}

func (c *sessionService) Get(ctx context.Context, id uuid.UUID) (*entity.ChatSession, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, &StoreError{Op: "load session", Err: err}
	}
	if session == nil {
		return nil, &NotFoundError{Resource: "session", ID: id.String()}
	}
	return session, nil
}

func (c *sessionService) ListAll(ctx context.Context, titleQuery string) ([]*entity.SessionMeta, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if titleQuery != "" {
		specs = append(specs, specification.TitleLike{Pattern: titleQuery})
	}

	metas, err := uow.SessionRepository().FindAllMetas(ctx, specs...)
	if err != nil {
		return nil, &StoreError{Op: "list sessions", Err: err}
	}
	return metas, nil
}

func (c *sessionService) Rename(ctx context.Context, id uuid.UUID, title string) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.SessionRepository().UpdateTitle(ctx, id, title)
	if err != nil {
		return false, &StoreError{Op: "rename session", Err: err}
	}
	if rows > 0 && c.publisher != nil {
		if err := c.publisher.Publish(ctx, events.NewSessionRenamed(id.String(), title)); err != nil {
			c.logger.Warn("session", "event publish failed", map[string]interface{}{
				"session_id": id.String(),
				"error":      err.Error(),
			})
		}
	}
	return rows > 0, nil
}

func (c *sessionService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.SessionRepository().Delete(ctx, id)
	if err != nil {
		return false, &StoreError{Op: "delete session", Err: err}
	}
	return rows > 0, nil
}
