package service

import (
	"context"
	"time"

	"documind-be/internal/dto"
	"documind-be/internal/entity"
	"documind-be/internal/repository/specification"
	"documind-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error)
	List(ctx context.Context, query, tag, folder string, page, limit int) ([]*dto.ShowNoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Folders(ctx context.Context) (*dto.ListFoldersResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{
		uowFactory: uowFactory,
	}
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.CreateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folder := req.Folder
	if folder == "" {
		folder = "General"
	}
	note := entity.Note{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		Folder:    folder,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, &StoreError{Op: "create note", Err: err}
	}

	return &dto.CreateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, &StoreError{Op: "load note", Err: err}
	}
	if note == nil {
		return nil, &NotFoundError{Resource: "note", ID: id.String()}
	}

	return noteToResponse(note), nil
}

// List filters by any combination of a free-text query, a tag and a
// folder; empty filters are simply skipped.
func (c *noteService) List(ctx context.Context, query, tag, folder string, page, limit int) ([]*dto.ShowNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "updated_at", Desc: true},
	}
	if query != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: query})
	}
	if tag != "" {
		specs = append(specs, specification.TagContains{Tag: tag})
	}
	if folder != "" {
		specs = append(specs, specification.ByFolder{Folder: folder})
	}
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{Limit: limit, Offset: (page - 1) * limit})
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, &StoreError{Op: "list notes", Err: err}
	}

	response := make([]*dto.ShowNoteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, noteToResponse(note))
	}
	return response, nil
}

func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.UpdateNoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	note, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, &StoreError{Op: "load note", Err: err}
	}
	if note == nil {
		return nil, &NotFoundError{Resource: "note", ID: req.Id.String()}
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Tags = req.Tags
	if req.Folder != "" {
		note.Folder = req.Folder
	}

	if _, err := repo.Update(ctx, note); err != nil {
		return nil, &StoreError{Op: "update note", Err: err}
	}

	return &dto.UpdateNoteResponse{Id: note.Id}, nil
}

func (c *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.NoteRepository().Delete(ctx, id)
	if err != nil {
		return &StoreError{Op: "delete note", Err: err}
	}
	if rows == 0 {
		return &NotFoundError{Resource: "note", ID: id.String()}
	}
	return nil
}

func (c *noteService) Folders(ctx context.Context) (*dto.ListFoldersResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	folders, err := uow.NoteRepository().Folders(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list folders", Err: err}
	}
	return &dto.ListFoldersResponse{Folders: folders}, nil
}

func noteToResponse(note *entity.Note) *dto.ShowNoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.ShowNoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tags,
		Folder:    note.Folder,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
