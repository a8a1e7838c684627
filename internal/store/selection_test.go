package store_test

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

func TestSelection_SaveCommitsTemp(t *testing.T) {
	clk := clock.NewMock()
	clk.Add(time.Hour)
	sel := store.NewSelection(clk)

	sel.SetTempSelectedModels([]string{"gpt-4o", "claude"})
	assert.Empty(t, sel.SelectedModels(domain.ContentChat))
	assert.True(t, sel.LastUpdate().IsZero())

	sel.SaveSelectedModels(domain.ContentChat)
	assert.Equal(t, []string{"gpt-4o", "claude"}, sel.SelectedModels(domain.ContentChat))
	assert.Equal(t, clk.Now(), sel.LastUpdate())
	assert.Empty(t, sel.SelectedModels(domain.ContentImage))
}

func TestSelection_DiscardLeavesConfirmed(t *testing.T) {
	sel := store.NewSelection(nil)
	sel.SetSelectedModels(domain.ContentImage, []string{"dalle"})

	sel.SetTempSelectedModels([]string{"sdxl"})
	sel.DiscardTemp()

	assert.Empty(t, sel.TempSelectedModels())
	assert.Equal(t, []string{"dalle"}, sel.SelectedModels(domain.ContentImage))
}

func TestSelection_ToggleModelActive(t *testing.T) {
	sel := store.NewSelection(nil)
	sel.SetInactiveModels([]string{"a"})

	assert.False(t, sel.IsActive("a"))
	assert.True(t, sel.ToggleModelActive("a"))
	assert.True(t, sel.IsActive("a"))
	assert.False(t, sel.ToggleModelActive("b"))
	assert.Equal(t, []string{"b"}, sel.InactiveModels())
}

func TestRegistry_SetFavoriteTouchesOnlyTarget(t *testing.T) {
	reg := store.NewRegistry()
	reg.SetModels(domain.ContentChat, []domain.Model{
		{UID: "a", Name: "A"},
		{UID: "b", Name: "B"},
	})

	assert.True(t, reg.SetFavorite("b", true))
	assert.False(t, reg.SetFavorite("zzz", true))

	models := reg.Models(domain.ContentChat)
	assert.False(t, models[0].Favorite)
	assert.True(t, models[1].Favorite)

	m, ct, ok := reg.Find("b")
	assert.True(t, ok)
	assert.Equal(t, domain.ContentChat, ct)
	assert.Equal(t, "B", m.Name)
	assert.True(t, reg.Populated(domain.ContentChat))
	assert.False(t, reg.Populated(domain.ContentVideo))
	reg.SetModels(domain.ContentVideo, nil)
	assert.True(t, reg.Populated(domain.ContentVideo))
}
