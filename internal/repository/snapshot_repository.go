// File: internal/repository/snapshot_repository.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

type projectRow struct {
	UUID         string `gorm:"primaryKey;size:64"`
	Position     int
	Name         string
	Description  string
	Color        string `gorm:"size:32"`
	Instructions string
	Files        string
}

func (projectRow) TableName() string { return "projects" }

type conversationRow struct {
	domain.Conversation
	Position int
}

func (conversationRow) TableName() string { return "conversations" }

type selectionRow struct {
	ContentType domain.ContentType `gorm:"primaryKey;size:16"`
	Models      string
}

func (selectionRow) TableName() string { return "selections" }

type stateRow struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string
}

func (stateRow) TableName() string { return "state" }

const (
	keyConversationID = "conversation_id"
	keyPromptID       = "prompt_id"
	keyInactive       = "inactive_models"
	keyLastUpdate     = "selection_last_update"
	keyModes          = "modes"
)

type modesState struct {
	Combined  bool `json:"combined"`
	Compare   bool `json:"compare"`
	WebSearch bool `json:"web_search"`
}

// Open connects to the sqlite file at path and migrates the schema.
// ":memory:" gives a throwaway database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.AutoMigrate(&conversationRow{}, &projectRow{}, &domain.Restriction{}, &selectionRow{}, &stateRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormSnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &gormSnapshotRepository{db: db}
}

// Save replaces the stored snapshot in one transaction.
func (r *gormSnapshotRepository) Save(ctx context.Context, s *Snapshot) error {
	if s == nil {
		return errors.New("snapshot cannot be nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&conversationRow{}, &projectRow{}, &domain.Restriction{}, &selectionRow{}, &stateRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear snapshot: %w", err)
			}
		}

		var convs []conversationRow
		for i, c := range s.History {
			c.ProjectID = ""
			convs = append(convs, conversationRow{Conversation: c, Position: i})
		}

		var projects []projectRow
		for i, p := range s.Projects {
			files, err := json.Marshal(p.Files)
			if err != nil {
				return err
			}
			projects = append(projects, projectRow{
				UUID:         p.UUID,
				Position:     i,
				Name:         p.Name,
				Description:  p.Description,
				Color:        p.Color,
				Instructions: p.Instructions,
				Files:        string(files),
			})
			for j, c := range p.Histories {
				c.ProjectID = p.UUID
				convs = append(convs, conversationRow{Conversation: c, Position: j})
			}
		}

		if err := createAll(tx, convs); err != nil {
			return err
		}
		if err := createAll(tx, projects); err != nil {
			return err
		}
		if err := createAll(tx, s.Restrictions); err != nil {
			return err
		}

		var selections []selectionRow
		for ct, uids := range s.Selected {
			b, err := json.Marshal(uids)
			if err != nil {
				return err
			}
			selections = append(selections, selectionRow{ContentType: ct, Models: string(b)})
		}
		if err := createAll(tx, selections); err != nil {
			return err
		}

		state, err := stateRows(s)
		if err != nil {
			return err
		}
		return createAll(tx, state)
	})
}

// Load returns the stored snapshot; an empty database yields an empty one.
func (r *gormSnapshotRepository) Load(ctx context.Context) (*Snapshot, error) {
	db := r.db.WithContext(ctx)
	snap := &Snapshot{Selected: make(map[domain.ContentType][]string)}

	var projects []projectRow
	if err := db.Order("position").Find(&projects).Error; err != nil {
		return nil, err
	}
	index := make(map[string]int, len(projects))
	for i, p := range projects {
		project := domain.Project{
			UUID:         p.UUID,
			Name:         p.Name,
			Description:  p.Description,
			Color:        p.Color,
			Instructions: p.Instructions,
		}
		if p.Files != "" {
			if err := json.Unmarshal([]byte(p.Files), &project.Files); err != nil {
				return nil, fmt.Errorf("corrupt files of project %s: %w", p.UUID, err)
			}
		}
		snap.Projects = append(snap.Projects, project)
		index[p.UUID] = i
	}

	var convs []conversationRow
	if err := db.Order("position").Find(&convs).Error; err != nil {
		return nil, err
	}
	for _, row := range convs {
		c := row.Conversation
		if i, ok := index[c.ProjectID]; ok {
			snap.Projects[i].Histories = append(snap.Projects[i].Histories, c)
			continue
		}
		c.ProjectID = ""
		snap.History = append(snap.History, c)
	}

	if err := db.Order("mode").Find(&snap.Restrictions).Error; err != nil {
		return nil, err
	}

	var selections []selectionRow
	if err := db.Find(&selections).Error; err != nil {
		return nil, err
	}
	for _, row := range selections {
		var uids []string
		if err := json.Unmarshal([]byte(row.Models), &uids); err != nil {
			return nil, fmt.Errorf("corrupt selection for %s: %w", row.ContentType, err)
		}
		snap.Selected[row.ContentType] = uids
	}

	var state []stateRow
	if err := db.Find(&state).Error; err != nil {
		return nil, err
	}
	if err := applyState(snap, state); err != nil {
		return nil, err
	}
	return snap, nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func stateRows(s *Snapshot) ([]stateRow, error) {
	inactive, err := json.Marshal(s.Inactive)
	if err != nil {
		return nil, err
	}
	modes, err := json.Marshal(modesState{Combined: s.Combined, Compare: s.Compare, WebSearch: s.WebSearch})
	if err != nil {
		return nil, err
	}
	rows := []stateRow{
		{Key: keyConversationID, Value: s.ConversationID},
		{Key: keyPromptID, Value: s.PromptID},
		{Key: keyInactive, Value: string(inactive)},
		{Key: keyModes, Value: string(modes)},
	}
	if !s.LastUpdate.IsZero() {
		rows = append(rows, stateRow{Key: keyLastUpdate, Value: s.LastUpdate.UTC().Format(time.RFC3339Nano)})
	}
	return rows, nil
}

func applyState(snap *Snapshot, rows []stateRow) error {
	for _, row := range rows {
		switch row.Key {
		case keyConversationID:
			snap.ConversationID = row.Value
		case keyPromptID:
			snap.PromptID = row.Value
		case keyInactive:
			if err := json.Unmarshal([]byte(row.Value), &snap.Inactive); err != nil {
				return fmt.Errorf("corrupt inactive models: %w", err)
			}
		case keyLastUpdate:
			t, err := time.Parse(time.RFC3339Nano, row.Value)
			if err != nil {
				return fmt.Errorf("corrupt selection timestamp: %w", err)
			}
			snap.LastUpdate = t
		case keyModes:
			var m modesState
			if err := json.Unmarshal([]byte(row.Value), &m); err != nil {
				return fmt.Errorf("corrupt modes: %w", err)
			}
			snap.Combined, snap.Compare, snap.WebSearch = m.Combined, m.Compare, m.WebSearch
		}
	}
	return nil
}
