// File: internal/handlers/backend.go
package handlers

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownModel  = errors.New("unknown model")
	ErrModelMismatch = errors.New("model does not serve this content type")
)

type conversationRecord struct {
	domain.Conversation
	Owner  string
	Models map[string]bool
	Order  []string
}

type projectRecord struct {
	domain.Project
	Owner     string
	CreatedAt time.Time
}

// Backend is the in-memory state of the development server.
type Backend struct {
	mu            sync.RWMutex
	clock         clock.Clock
	catalog       map[domain.ContentType][]domain.Model
	favorites     map[string]map[string]bool
	conversations map[string]*conversationRecord
	projects      map[string]*projectRecord
}

func NewBackend(catalog map[domain.ContentType][]domain.Model, clk clock.Clock) *Backend {
	if clk == nil {
		clk = clock.New()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Backend{
		clock:         clk,
		catalog:       catalog,
		favorites:     make(map[string]map[string]bool),
		conversations: make(map[string]*conversationRecord),
		projects:      make(map[string]*projectRecord),
	}
}

// DefaultCatalog is the model list served when none is configured.
func DefaultCatalog() map[domain.ContentType][]domain.Model {
	return map[domain.ContentType][]domain.Model{
		domain.ContentChat: {
			{UID: "gpt-4o-mini", Name: "GPT-4o mini", Provider: "openai", Plan: domain.TierFree, ValidInputs: []string{"text", "image"}},
			{UID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash", Provider: "google", Plan: domain.TierFree, ValidInputs: []string{"text", "image", "pdf"}},
			{UID: "llama-3-70b", Name: "Llama 3 70B", Provider: "meta", Plan: domain.TierFree, ValidInputs: []string{"text"}},
			{UID: "gpt-4o", Name: "GPT-4o", Provider: "openai", Plan: domain.TierStandard, ValidInputs: []string{"text", "image", "pdf"}},
			{UID: "claude-3-5-sonnet", Name: "Claude 3.5 Sonnet", Provider: "anthropic", Plan: domain.TierStandard, ValidInputs: []string{"text", "image", "pdf"}},
			{UID: "o1", Name: "o1", Provider: "openai", Plan: domain.TierPlus, ValidInputs: []string{"text"}},
		},
		domain.ContentImage: {
			{UID: "sdxl", Name: "Stable Diffusion XL", Provider: "stability", Plan: domain.TierFree},
			{UID: "dall-e-3", Name: "DALL-E 3", Provider: "openai", Plan: domain.TierStandard},
			{UID: "midjourney", Name: "Midjourney", Provider: "midjourney", Plan: domain.TierPlus},
		},
		domain.ContentAudio: {
			{UID: "openai-tts", Name: "OpenAI TTS", Provider: "openai", Plan: domain.TierFree, Category: domain.AudioTTS},
			{UID: "elevenlabs", Name: "ElevenLabs", Provider: "elevenlabs", Plan: domain.TierStandard, Category: domain.AudioTTS},
			{UID: "whisper", Name: "Whisper", Provider: "openai", Plan: domain.TierFree, Category: domain.AudioSTT},
			{UID: "musicgen", Name: "MusicGen", Provider: "meta", Plan: domain.TierStandard, Category: domain.AudioAG},
		},
		domain.ContentVideo: {
			{UID: "runway-gen3", Name: "Runway Gen-3", Provider: "runway", Plan: domain.TierStandard},
			{UID: "sora", Name: "Sora", Provider: "openai", Plan: domain.TierPlus},
		},
	}
}

// Models lists the catalog of ct with user's favorites applied.
func (b *Backend) Models(user string, ct domain.ContentType) []domain.Model {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]domain.Model, 0, len(b.catalog[ct]))
	for _, m := range b.catalog[ct] {
		m.Favorite = b.favorites[user][m.UID]
		out = append(out, m)
	}
	return out
}

func (b *Backend) SetFavorite(user, uid string, favorite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.findModelLocked(uid); !ok {
		return ErrUnknownModel
	}
	if b.favorites[user] == nil {
		b.favorites[user] = make(map[string]bool)
	}
	if favorite {
		b.favorites[user][uid] = true
	} else {
		delete(b.favorites[user], uid)
	}
	return nil
}

// CreateConversation stores a new conversation for user. The models must
// belong to ct and projectID, when set, must be one of user's projects.
func (b *Backend) CreateConversation(user string, ct domain.ContentType, models []string, projectID string, files []domain.ProjectFile) (domain.Conversation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, uid := range models {
		got, ok := b.findModelLocked(uid)
		if !ok {
			return domain.Conversation{}, ErrUnknownModel
		}
		if got != ct {
			return domain.Conversation{}, ErrModelMismatch
		}
	}
	var project *projectRecord
	if projectID != "" {
		p, ok := b.projects[projectID]
		if !ok || p.Owner != user {
			return domain.Conversation{}, ErrNotFound
		}
		project = p
	}

	now := b.clock.Now()
	rec := &conversationRecord{
		Conversation: domain.Conversation{
			Session:   uuid.NewString(),
			PromptID:  uuid.NewString(),
			Title:     domain.PlaceholderTitle,
			Type:      ct,
			ProjectID: projectID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Owner:  user,
		Models: make(map[string]bool, len(models)),
		Order:  append([]string(nil), models...),
	}
	for _, uid := range models {
		rec.Models[uid] = true
	}
	b.conversations[rec.Session] = rec

	if project != nil {
		for _, f := range files {
			if f.UUID == "" {
				f.UUID = uuid.NewString()
			}
			if f.CreatedAt.IsZero() {
				f.CreatedAt = now
			}
			project.Files = append(project.Files, f)
		}
	}
	return rec.Conversation, nil
}

func (b *Backend) conversation(user, session string) (*conversationRecord, error) {
	rec, ok := b.conversations[session]
	if !ok || rec.Owner != user {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (b *Backend) Conversation(user, session string) (domain.Conversation, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, err := b.conversation(user, session)
	if err != nil {
		return domain.Conversation{}, err
	}
	return rec.Conversation, nil
}

func (b *Backend) Rename(user, session, title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, err := b.conversation(user, session)
	if err != nil {
		return err
	}
	rec.Title = title
	rec.UpdatedAt = b.clock.Now()
	return nil
}

func (b *Backend) Delete(user, session string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.conversation(user, session); err != nil {
		return err
	}
	delete(b.conversations, session)
	return nil
}

// Move assigns session to projectID; an empty projectID unassigns it.
func (b *Backend) Move(user, session, projectID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, err := b.conversation(user, session)
	if err != nil {
		return err
	}
	if projectID != "" {
		if p, ok := b.projects[projectID]; !ok || p.Owner != user {
			return ErrNotFound
		}
	}
	rec.ProjectID = projectID
	rec.UpdatedAt = b.clock.Now()
	return nil
}

// History lists user's conversations of ct that no project owns, newest
// first.
func (b *Backend) History(user string, ct domain.ContentType) []domain.Conversation {
	return b.list(func(rec *conversationRecord) bool {
		return rec.Owner == user && rec.Type == ct && rec.ProjectID == ""
	})
}

func (b *Backend) ProjectConversations(user, projectID string) ([]domain.Conversation, error) {
	b.mu.RLock()
	p, ok := b.projects[projectID]
	b.mu.RUnlock()
	if !ok || p.Owner != user {
		return nil, ErrNotFound
	}
	return b.list(func(rec *conversationRecord) bool {
		return rec.Owner == user && rec.ProjectID == projectID
	}), nil
}

func (b *Backend) list(keep func(*conversationRecord) bool) []domain.Conversation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []domain.Conversation{}
	for _, rec := range b.conversations {
		if keep(rec) {
			out = append(out, rec.Conversation)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Session > out[j].Session
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type modelStatus struct {
	UID    string `json:"model_uid"`
	Active bool   `json:"active"`
}

func (b *Backend) ConversationModels(user, session string) ([]modelStatus, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, err := b.conversation(user, session)
	if err != nil {
		return nil, err
	}
	out := make([]modelStatus, 0, len(rec.Order))
	for _, uid := range rec.Order {
		out = append(out, modelStatus{UID: uid, Active: rec.Models[uid]})
	}
	return out, nil
}

func (b *Backend) SetModelActive(user, session, uid string, active bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, err := b.conversation(user, session)
	if err != nil {
		return err
	}
	if _, ok := rec.Models[uid]; !ok {
		return ErrUnknownModel
	}
	rec.Models[uid] = active
	return nil
}

func (b *Backend) CreateProject(user string, p domain.Project) domain.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.UUID = uuid.NewString()
	p.Files = nil
	p.Histories = nil
	b.projects[p.UUID] = &projectRecord{Project: p, Owner: user, CreatedAt: b.clock.Now()}
	return p
}

func (b *Backend) Projects(user string) []domain.Project {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var recs []*projectRecord
	for _, p := range b.projects {
		if p.Owner == user {
			recs = append(recs, p)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].CreatedAt.Before(recs[j].CreatedAt) })
	out := make([]domain.Project, 0, len(recs))
	for _, p := range recs {
		project := p.Project
		project.Files = append([]domain.ProjectFile(nil), p.Files...)
		out = append(out, project)
	}
	return out
}

func (b *Backend) ProjectFiles(user, projectID string) ([]domain.ProjectFile, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.projects[projectID]
	if !ok || p.Owner != user {
		return nil, ErrNotFound
	}
	return append([]domain.ProjectFile{}, p.Files...), nil
}

func (b *Backend) findModelLocked(uid string) (domain.ContentType, bool) {
	for ct, list := range b.catalog {
		for _, m := range list {
			if m.UID == uid {
				return ct, true
			}
		}
	}
	return "", false
}
