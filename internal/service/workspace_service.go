package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"documind-be/internal/dto"
	"documind-be/internal/entity"
	"documind-be/internal/repository/specification"
	"documind-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type IWorkspaceService interface {
	Export(ctx context.Context) (*dto.WorkspaceExport, error)
	Import(ctx context.Context, req *dto.WorkspaceImportRequest) (*dto.WorkspaceImportResult, error)
}

type workspaceService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewWorkspaceService(uowFactory unitofwork.RepositoryFactory) IWorkspaceService {
	return &workspaceService{
		uowFactory: uowFactory,
	}
}

func (c *workspaceService) Export(ctx context.Context) (*dto.WorkspaceExport, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, &StoreError{Op: "export sessions", Err: err}
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, &StoreError{Op: "export notes", Err: err}
	}

	out := &dto.WorkspaceExport{
		SchemaVersion: dto.WorkspaceSchemaVersion,
		ExportedAt:    time.Now(),
		Sessions:      make([]dto.WorkspaceSession, 0, len(sessions)),
		Notes:         make([]dto.WorkspaceNote, 0, len(notes)),
	}
	for _, s := range sessions {
		out.Sessions = append(out.Sessions, sessionToDump(s))
	}
	for _, n := range notes {
		out.Notes = append(out.Notes, noteToDump(n))
	}
	return out, nil
}

// Import applies a dump record by record. A bad record is tallied and
// skipped, it never aborts the rest. Index files do not travel in dumps,
// so imported sessions start with no index.
func (c *workspaceService) Import(ctx context.Context, req *dto.WorkspaceImportRequest) (*dto.WorkspaceImportResult, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	result := &dto.WorkspaceImportResult{}

	sessionRepo := uow.SessionRepository()
	for _, s := range req.Data.Sessions {
		record := dumpToSession(s)

		existing, err := sessionRepo.FindOne(ctx, specification.ByID{ID: record.Id})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("session %s: %v", record.Id, err))
			continue
		}
		if existing != nil && !req.Replace {
			result.Skipped++
			continue
		}

		if existing != nil {
			_, err = sessionRepo.Update(ctx, record)
		} else {
			err = sessionRepo.Create(ctx, record)
		}
		if err != nil {
			// Create can lose a race with a concurrent import of the
			// same dump; a duplicate key is a skip, not a failure.
			if isDuplicateKey(err) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("session %s: %v", record.Id, err))
			continue
		}
		result.SessionsImported++
	}

	noteRepo := uow.NoteRepository()
	for _, n := range req.Data.Notes {
		record := dumpToNote(n)

		existing, err := noteRepo.FindOne(ctx, specification.ByID{ID: record.Id})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("note %s: %v", record.Id, err))
			continue
		}
		if existing != nil && !req.Replace {
			result.Skipped++
			continue
		}

		if existing != nil {
			_, err = noteRepo.Update(ctx, record)
		} else {
			err = noteRepo.Create(ctx, record)
		}
		if err != nil {
			if isDuplicateKey(err) {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, fmt.Sprintf("note %s: %v", record.Id, err))
			continue
		}
		result.NotesImported++
	}

	return result, nil
}

// isDuplicateKey reports whether err is a Postgres unique violation
// (SQLSTATE 23505).
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func sessionToDump(s *entity.ChatSession) dto.WorkspaceSession {
	turns := make([]dto.ChatTurnDTO, 0, len(s.Turns))
	for _, t := range s.Turns {
		turns = append(turns, dto.ChatTurnDTO{Role: t.Role, Content: t.Content, Timestamp: t.Timestamp})
	}
	files := s.UploadedFiles
	if files == nil {
		files = []string{}
	}
	return dto.WorkspaceSession{
		Id:            s.Id,
		Title:         s.Title,
		Turns:         turns,
		UploadedFiles: files,
		LlmProvider:   s.LlmProvider,
		PromptVariant: s.PromptVariant,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func dumpToSession(s dto.WorkspaceSession) *entity.ChatSession {
	id := s.Id
	if id == uuid.Nil {
		id = uuid.New()
	}
	turns := make([]entity.ChatTurn, 0, len(s.Turns))
	for _, t := range s.Turns {
		turns = append(turns, entity.ChatTurn{Role: t.Role, Content: t.Content, Timestamp: t.Timestamp})
	}
	return &entity.ChatSession{
		Id:            id,
		Title:         s.Title,
		Turns:         turns,
		UploadedFiles: s.UploadedFiles,
		IndexPath:     nil,
		LlmProvider:   s.LlmProvider,
		PromptVariant: s.PromptVariant,
		CreatedAt:     s.CreatedAt,
	}
}

func noteToDump(n *entity.Note) dto.WorkspaceNote {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.WorkspaceNote{
		Id:        n.Id,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      tags,
		Folder:    n.Folder,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func dumpToNote(n dto.WorkspaceNote) *entity.Note {
	id := n.Id
	if id == uuid.Nil {
		id = uuid.New()
	}
	folder := n.Folder
	if folder == "" {
		folder = "General"
	}
	return &entity.Note{
		Id:        id,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		Folder:    folder,
		CreatedAt: n.CreatedAt,
	}
}
