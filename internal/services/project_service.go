package services

import (
	"context"
	"strings"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// ProjectAPI is the project part of the platform API.
type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	CreateProject(ctx context.Context, p domain.Project) (domain.Project, error)
	ListProjectConversations(ctx context.Context, projectID string) ([]domain.Conversation, error)
	ListProjectFiles(ctx context.Context, projectID string) ([]domain.ProjectFile, error)
	MoveConversation(ctx context.Context, session, projectID string) error
}

type ProjectService struct {
	api    ProjectAPI
	stores *store.Stores
	logger Logger
}

func NewProjectService(api ProjectAPI, stores *store.Stores, logger Logger) *ProjectService {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &ProjectService{api: api, stores: stores, logger: logger}
}

func (s *ProjectService) Load(ctx context.Context) error {
	list, err := s.api.ListProjects(ctx)
	if err != nil {
		s.logger.Error("failed to load projects", "error", err)
		return err
	}
	// Histories the listing carries win; otherwise keep the ones already
	// loaded. Either way a project entry takes the session from the global
	// history.
	list = append([]domain.Project(nil), list...)
	for i := range list {
		if len(list[i].Histories) == 0 {
			if known, ok := s.stores.Projects.Get(list[i].UUID); ok {
				list[i].Histories = known.Histories
			}
		}
		for _, c := range list[i].Histories {
			s.stores.History.Remove(c.Session)
		}
	}
	s.stores.Projects.SetProjects(list)
	return nil
}

func (s *ProjectService) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Project{}, ErrEmptyName
	}
	created, err := s.api.CreateProject(ctx, p)
	if err != nil {
		return domain.Project{}, err
	}
	s.stores.Projects.Add(created)
	s.logger.Info("project created", "project_id", created.UUID)
	return created, nil
}

// LoadConversations refreshes the histories of one project. Sessions the
// global history still holds are dropped from it to keep a single owner.
func (s *ProjectService) LoadConversations(ctx context.Context, projectID string) error {
	if _, ok := s.stores.Projects.Get(projectID); !ok {
		return store.ErrProjectNotFound
	}
	list, err := s.api.ListProjectConversations(ctx, projectID)
	if err != nil {
		return err
	}
	for i := range list {
		list[i].TitleState = domain.TitleTitled
		s.stores.History.Remove(list[i].Session)
	}
	return s.stores.Projects.SetHistories(projectID, list)
}

func (s *ProjectService) LoadFiles(ctx context.Context, projectID string) error {
	if _, ok := s.stores.Projects.Get(projectID); !ok {
		return store.ErrProjectNotFound
	}
	files, err := s.api.ListProjectFiles(ctx, projectID)
	if err != nil {
		return err
	}
	return s.stores.Projects.SetFiles(projectID, files)
}

// Move reassigns a conversation to projectID, or back to the global history
// when projectID is empty. The local lists change only after the platform
// accepted the move: removed from the source, then inserted into the target.
func (s *ProjectService) Move(ctx context.Context, session, projectID string) error {
	conv, ok := s.stores.Locate(session)
	if !ok {
		return ErrConversationNotFound
	}
	owner, _ := s.stores.Projects.OwnerOf(session)
	if owner == projectID {
		return nil
	}
	if projectID != "" {
		if _, ok := s.stores.Projects.Get(projectID); !ok {
			return store.ErrProjectNotFound
		}
	}

	if err := s.api.MoveConversation(ctx, session, projectID); err != nil {
		return err
	}

	moved, ok := s.stores.RemoveConversation(session)
	if !ok {
		moved = conv
	}
	moved.ProjectID = projectID
	if err := s.stores.InsertConversation(moved); err != nil {
		// Target vanished between the check and the insert.
		moved.ProjectID = ""
		s.stores.History.Add(moved)
		return err
	}
	s.logger.Info("conversation moved", "session", session, "from", owner, "to", projectID)
	return nil
}
