package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/client"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// fakePlatform implements every platform API the services depend on.
type fakePlatform struct {
	mu         sync.Mutex
	listCalls  map[domain.ContentType]int
	models     map[domain.ContentType][]domain.Model
	history    []domain.Conversation
	projects   []domain.Project
	convModels []client.ConversationModel
	moves      [][2]string
	favorites  map[string]bool
	failWith   error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		listCalls: map[domain.ContentType]int{},
		models: map[domain.ContentType][]domain.Model{
			domain.ContentChat:  {{UID: "gpt-4o", Name: "GPT-4o", Plan: domain.TierFree}, {UID: "claude-3", Name: "Claude", Plan: domain.TierStandard}},
			domain.ContentImage: {{UID: "dalle", Name: "DALL-E", Plan: domain.TierStandard}},
		},
		favorites: map[string]bool{},
	}
}

func (f *fakePlatform) ListModels(ctx context.Context, ct domain.ContentType) ([]domain.Model, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls[ct]++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return append([]domain.Model(nil), f.models[ct]...), nil
}

func (f *fakePlatform) SetFavorite(ctx context.Context, uid string, favorite bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	f.favorites[uid] = favorite
	return nil
}

func (f *fakePlatform) ListHistory(ctx context.Context, ct domain.ContentType) ([]domain.Conversation, error) {
	return f.history, f.failWith
}

func (f *fakePlatform) RenameConversation(ctx context.Context, session, title string) error {
	return f.failWith
}

func (f *fakePlatform) DeleteConversation(ctx context.Context, session string) error {
	return f.failWith
}

func (f *fakePlatform) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return f.projects, f.failWith
}

func (f *fakePlatform) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	p.UUID = "p-new"
	return p, f.failWith
}

func (f *fakePlatform) ListProjectConversations(ctx context.Context, projectID string) ([]domain.Conversation, error) {
	return []domain.Conversation{{Session: "s-2", Title: "Chapter one", Type: domain.ContentChat}}, f.failWith
}

func (f *fakePlatform) ListProjectFiles(ctx context.Context, projectID string) ([]domain.ProjectFile, error) {
	return []domain.ProjectFile{{UUID: "f-1", Name: "brief.pdf"}}, f.failWith
}

func (f *fakePlatform) MoveConversation(ctx context.Context, session, projectID string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.moves = append(f.moves, [2]string{session, projectID})
	return nil
}

func (f *fakePlatform) ListConversationModels(ctx context.Context, session string) ([]client.ConversationModel, error) {
	return f.convModels, f.failWith
}

func (f *fakePlatform) UpdateModelActiveStatus(ctx context.Context, conversation, uid string, active bool) error {
	return f.failWith
}

func TestRestrictionScheduler_ClearsAtComebackTime(t *testing.T) {
	clk := clock.NewMock()
	restrictions := store.NewRestrictions(clk)
	sched := services.NewRestrictionScheduler(restrictions, clk, nil)
	defer sched.Stop()

	comeback := clk.Now().Add(5000 * time.Millisecond)
	restrictions.SetRestriction(domain.ModeCombine, "busy", comeback)
	sched.Schedule(domain.ModeCombine, comeback)
	assert.Equal(t, 1, sched.Pending())

	clk.Add(4999 * time.Millisecond)
	assert.True(t, restrictions.IsRestricted(domain.ModeCombine))

	clk.Add(time.Millisecond)
	assert.False(t, restrictions.IsRestricted(domain.ModeCombine))
	assert.Eventually(t, func() bool {
		return sched.Pending() == 0 && len(restrictions.Reconcile()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRestrictionScheduler_RescheduleReplacesTimer(t *testing.T) {
	clk := clock.NewMock()
	restrictions := store.NewRestrictions(clk)
	sched := services.NewRestrictionScheduler(restrictions, clk, nil)
	defer sched.Stop()

	sched.Schedule(domain.ModeChat, clk.Now().Add(time.Second))
	sched.Schedule(domain.ModeChat, clk.Now().Add(time.Minute))
	assert.Equal(t, 1, sched.Pending())

	restrictions.SetRestriction(domain.ModeChat, "limit", clk.Now().Add(time.Minute))
	clk.Add(time.Second)
	assert.True(t, restrictions.IsRestricted(domain.ModeChat))
	assert.Equal(t, 1, sched.Pending())
}

func TestRestrictionScheduler_PastComebackReconcilesNow(t *testing.T) {
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	restrictions := store.NewRestrictions(clk)
	restrictions.SetRestriction(domain.ModeCompare, "", clk.Now().Add(time.Second))
	clk.Add(2 * time.Second)

	sched := services.NewRestrictionScheduler(restrictions, clk, nil)
	sched.ScheduleAll()
	assert.Zero(t, sched.Pending())
	assert.Empty(t, restrictions.Reconcile())
}

func TestRestrictionScheduler_StopCancelsTimers(t *testing.T) {
	clk := clock.NewMock()
	restrictions := store.NewRestrictions(clk)
	sched := services.NewRestrictionScheduler(restrictions, clk, nil)

	sched.Schedule(domain.ModeChat, clk.Now().Add(time.Second))
	sched.Stop()
	assert.Zero(t, sched.Pending())

	sched.Schedule(domain.ModeChat, clk.Now().Add(time.Second))
	assert.Zero(t, sched.Pending())
}

func TestCatalogService_LoadsOncePerType(t *testing.T) {
	api := newFakePlatform()
	registry := store.NewRegistry()
	svc := services.NewCatalogService(api, registry, nil)

	require.NoError(t, svc.Load(context.Background(), domain.ContentChat))
	require.NoError(t, svc.Load(context.Background(), domain.ContentChat))
	assert.Equal(t, 1, api.listCalls[domain.ContentChat])
	assert.Len(t, registry.Models(domain.ContentChat), 2)
	assert.False(t, registry.Loading(domain.ContentChat))

	require.NoError(t, svc.Reload(context.Background(), domain.ContentChat))
	assert.Equal(t, 2, api.listCalls[domain.ContentChat])
}

func TestCatalogService_EmptyCatalogLoadsOnce(t *testing.T) {
	api := newFakePlatform()
	registry := store.NewRegistry()
	svc := services.NewCatalogService(api, registry, nil)

	require.NoError(t, svc.Load(context.Background(), domain.ContentVideo))
	require.NoError(t, svc.Load(context.Background(), domain.ContentVideo))
	assert.Equal(t, 1, api.listCalls[domain.ContentVideo])
	assert.True(t, registry.Populated(domain.ContentVideo))
	assert.Empty(t, registry.Models(domain.ContentVideo))
}

func TestCatalogService_LoadAll(t *testing.T) {
	api := newFakePlatform()
	registry := store.NewRegistry()
	svc := services.NewCatalogService(api, registry, nil)

	require.NoError(t, svc.LoadAll(context.Background()))
	for _, ct := range domain.ContentTypes {
		assert.Equal(t, 1, api.listCalls[ct], ct)
	}
	assert.Len(t, registry.Models(domain.ContentImage), 1)
}

func TestCatalogService_LoadErrorIsRecorded(t *testing.T) {
	api := newFakePlatform()
	api.failWith = errors.New("offline")
	registry := store.NewRegistry()
	svc := services.NewCatalogService(api, registry, nil)

	err := svc.Load(context.Background(), domain.ContentChat)
	require.Error(t, err)
	assert.Equal(t, err, registry.Err(domain.ContentChat))
	assert.False(t, registry.Populated(domain.ContentChat))
}

func TestCatalogService_ToggleFavorite(t *testing.T) {
	api := newFakePlatform()
	registry := store.NewRegistry()
	svc := services.NewCatalogService(api, registry, nil)
	require.NoError(t, svc.Load(context.Background(), domain.ContentChat))

	fav, err := svc.ToggleFavorite(context.Background(), "claude-3")
	require.NoError(t, err)
	assert.True(t, fav)
	assert.True(t, api.favorites["claude-3"])

	m, _, _ := registry.Find("claude-3")
	assert.True(t, m.Favorite)
	other, _, _ := registry.Find("gpt-4o")
	assert.False(t, other.Favorite)

	_, err = svc.ToggleFavorite(context.Background(), "nope")
	assert.ErrorIs(t, err, services.ErrUnknownModel)

	api.failWith = errors.New("offline")
	_, err = svc.ToggleFavorite(context.Background(), "claude-3")
	require.Error(t, err)
	m, _, _ = registry.Find("claude-3")
	assert.True(t, m.Favorite)
}

func seededStores() *store.Stores {
	stores := store.New(clock.NewMock())
	stores.History.SetHistory([]domain.Conversation{
		{Session: "s-1", Title: "Lifetimes", Type: domain.ContentChat},
		{Session: "s-3", Title: "Cats", Type: domain.ContentImage},
	})
	stores.Projects.SetProjects([]domain.Project{{UUID: "p-1", Name: "Thesis"}, {UUID: "p-2", Name: "Side"}})
	return stores
}

func owners(stores *store.Stores, session string) int {
	n := 0
	if _, ok := stores.History.Get(session); ok {
		n++
	}
	for _, p := range stores.Projects.List() {
		if p.HasConversation(session) {
			n++
		}
	}
	return n
}

func TestProjectService_MoveLeavesExactlyOneOwner(t *testing.T) {
	api := newFakePlatform()
	stores := seededStores()
	svc := services.NewProjectService(api, stores, nil)
	ctx := context.Background()

	steps := []string{"p-1", "p-2", "", "p-2", "p-2", ""}
	for _, target := range steps {
		require.NoError(t, svc.Move(ctx, "s-1", target))
		assert.Equal(t, 1, owners(stores, "s-1"), "after moving to %q", target)

		c, ok := stores.Locate("s-1")
		require.True(t, ok)
		assert.Equal(t, target, c.ProjectID)
		assert.Equal(t, "Lifetimes", c.Title)
	}
	// moving to the current owner is not sent
	assert.Len(t, api.moves, 5)
}

func TestProjectService_MoveFollowsActualOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("history entry tagged with a project", func(t *testing.T) {
		api := newFakePlatform()
		stores := seededStores()
		stores.History.Add(domain.Conversation{Session: "s-9", Title: "Orphan", Type: domain.ContentChat, ProjectID: "p-1"})
		svc := services.NewProjectService(api, stores, nil)

		require.NoError(t, svc.Move(ctx, "s-9", "p-1"))
		owner, ok := stores.Projects.OwnerOf("s-9")
		require.True(t, ok)
		assert.Equal(t, "p-1", owner)
		_, inHistory := stores.History.Get("s-9")
		assert.False(t, inHistory)
		assert.Equal(t, 1, owners(stores, "s-9"))
		assert.Len(t, api.moves, 1)
	})

	t.Run("project histories without project_id", func(t *testing.T) {
		api := newFakePlatform()
		stores := store.New(clock.NewMock())
		stores.Projects.SetProjects([]domain.Project{{
			UUID:      "p-1",
			Histories: []domain.Conversation{{Session: "s-8", Title: "Draft", Type: domain.ContentChat}},
		}})
		svc := services.NewProjectService(api, stores, nil)

		require.NoError(t, svc.Move(ctx, "s-8", ""))
		c, inHistory := stores.History.Get("s-8")
		require.True(t, inHistory)
		assert.Empty(t, c.ProjectID)
		_, inProject := stores.Projects.OwnerOf("s-8")
		assert.False(t, inProject)
		assert.Len(t, api.moves, 1)
	})
}

func TestProjectService_LoadTakesListedHistoriesFromGlobal(t *testing.T) {
	api := newFakePlatform()
	api.projects = []domain.Project{{
		UUID:      "p-1",
		Name:      "Thesis",
		Histories: []domain.Conversation{{Session: "s-7", Title: "Chapter one", Type: domain.ContentChat}},
	}}
	stores := store.New(clock.NewMock())
	stores.History.Add(domain.Conversation{Session: "s-7", Title: "Chapter one", Type: domain.ContentChat})
	svc := services.NewProjectService(api, stores, nil)

	require.NoError(t, svc.Load(context.Background()))

	_, inHistory := stores.History.Get("s-7")
	assert.False(t, inHistory)
	c, ok := stores.Locate("s-7")
	require.True(t, ok)
	assert.Equal(t, "p-1", c.ProjectID)
	assert.Equal(t, 1, owners(stores, "s-7"))
}

func TestProjectService_MoveErrors(t *testing.T) {
	api := newFakePlatform()
	stores := seededStores()
	svc := services.NewProjectService(api, stores, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Move(ctx, "missing", "p-1"), services.ErrConversationNotFound)
	assert.ErrorIs(t, svc.Move(ctx, "s-1", "p-404"), store.ErrProjectNotFound)

	api.failWith = errors.New("offline")
	require.Error(t, svc.Move(ctx, "s-1", "p-1"))
	_, stillInHistory := stores.History.Get("s-1")
	assert.True(t, stillInHistory)
	assert.Equal(t, 1, owners(stores, "s-1"))
}

func TestProjectService_LoadAndCreate(t *testing.T) {
	api := newFakePlatform()
	api.projects = []domain.Project{{UUID: "p-1", Name: "Thesis"}}
	stores := store.New(clock.NewMock())
	stores.History.Add(domain.Conversation{Session: "s-2", Title: "stale", Type: domain.ContentChat})
	svc := services.NewProjectService(api, stores, nil)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	require.NoError(t, svc.LoadConversations(ctx, "p-1"))
	require.NoError(t, svc.LoadFiles(ctx, "p-1"))

	p, ok := stores.Projects.Get("p-1")
	require.True(t, ok)
	require.Len(t, p.Histories, 1)
	assert.Equal(t, "p-1", p.Histories[0].ProjectID)
	assert.Len(t, p.Files, 1)
	assert.Equal(t, 1, owners(stores, "s-2"))

	// reloading the listing keeps loaded histories
	require.NoError(t, svc.Load(ctx))
	p, _ = stores.Projects.Get("p-1")
	assert.Len(t, p.Histories, 1)

	assert.ErrorIs(t, svc.LoadFiles(ctx, "p-404"), store.ErrProjectNotFound)

	_, err := svc.Create(ctx, domain.Project{Name: "  "})
	assert.ErrorIs(t, err, services.ErrEmptyName)

	created, err := svc.Create(ctx, domain.Project{Name: "Notes"})
	require.NoError(t, err)
	_, ok = stores.Projects.Get(created.UUID)
	assert.True(t, ok)
}

func TestHistoryService_RenameAndDelete(t *testing.T) {
	api := newFakePlatform()
	stores := seededStores()
	stores.Conversation.SetConversationID("s-1")
	svc := services.NewHistoryService(api, stores, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Rename(ctx, "s-1", " "), services.ErrEmptyTitle)
	require.NoError(t, svc.Rename(ctx, "s-1", "Borrowing"))
	c, _ := stores.History.Get("s-1")
	assert.Equal(t, "Borrowing", c.Title)

	require.NoError(t, svc.Delete(ctx, "s-1"))
	_, ok := stores.History.Get("s-1")
	assert.False(t, ok)
	assert.Empty(t, stores.Conversation.ConversationID())

	assert.ErrorIs(t, svc.Delete(ctx, "s-1"), services.ErrConversationNotFound)
}

func TestHistoryService_LoadKeepsOtherTypes(t *testing.T) {
	api := newFakePlatform()
	api.history = []domain.Conversation{
		{Session: "s-9", Title: "Fresh"},
		{Session: "s-10", Title: "Project owned", ProjectID: "p-1"},
	}
	stores := seededStores()
	svc := services.NewHistoryService(api, stores, nil)

	require.NoError(t, svc.Load(context.Background(), domain.ContentChat))

	_, present := stores.History.Get("s-1")
	assert.False(t, present)
	fresh, ok := stores.History.Get("s-9")
	require.True(t, ok)
	assert.Equal(t, domain.ContentChat, fresh.Type)
	_, ok = stores.History.Get("s-3")
	assert.True(t, ok)
	_, ok = stores.History.Get("s-10")
	assert.False(t, ok)
}

func TestModelStatusService(t *testing.T) {
	api := newFakePlatform()
	api.convModels = []client.ConversationModel{{UID: "gpt-4o", Active: true}, {UID: "claude-3", Active: false}}
	selection := store.NewSelection(clock.NewMock())
	svc := services.NewModelStatusService(api, selection, nil)
	ctx := context.Background()

	svc.Load(ctx, "s-1")
	assert.Equal(t, []string{"claude-3"}, selection.InactiveModels())

	active, err := svc.Toggle(ctx, "s-1", "gpt-4o")
	require.NoError(t, err)
	assert.False(t, active)
	assert.False(t, selection.IsActive("gpt-4o"))

	api.failWith = errors.New("offline")
	active, err = svc.Toggle(ctx, "s-1", "claude-3")
	require.Error(t, err)
	assert.False(t, active)
	assert.False(t, selection.IsActive("claude-3"))

	svc.Load(ctx, "s-1")
	assert.ElementsMatch(t, []string{"claude-3", "gpt-4o"}, selection.InactiveModels())
}
