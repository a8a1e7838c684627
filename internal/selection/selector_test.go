package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/selection"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

func newFixture(t *testing.T, plan string) (*selection.Selector, *store.Selection) {
	t.Helper()
	reg := store.NewRegistry()
	reg.SetModels(domain.ContentChat, []domain.Model{
		{UID: "gpt-4o-mini", Name: "GPT-4o mini", Plan: domain.TierFree},
		{UID: "gemini-flash", Name: "Gemini Flash", Plan: domain.TierFree},
		{UID: "llama", Name: "Llama 3", Plan: domain.TierFree},
		{UID: "mistral", Name: "Mistral", Plan: domain.TierFree},
		{UID: "deepseek", Name: "DeepSeek", Plan: domain.TierFree},
		{UID: "qwen", Name: "Qwen", Plan: domain.TierFree},
		{UID: "claude-sonnet", Name: "Claude Sonnet", Plan: domain.TierStandard},
		{UID: "gpt-4o", Name: "GPT-4o", Plan: domain.TierPlus},
	})
	reg.SetModels(domain.ContentImage, []domain.Model{
		{UID: "sdxl", Name: "SDXL", Plan: domain.TierFree},
		{UID: "dalle-3", Name: "DALL-E 3", Plan: domain.TierPlus},
	})
	reg.SetModels(domain.ContentAudio, []domain.Model{
		{UID: "tts-1", Name: "TTS One", Plan: domain.TierFree, Category: domain.AudioTTS},
		{UID: "tts-2", Name: "TTS Two", Plan: domain.TierFree, Category: domain.AudioTTS},
		{UID: "whisper", Name: "Whisper", Plan: domain.TierFree, Category: domain.AudioSTT},
		{UID: "musicgen", Name: "MusicGen", Plan: domain.TierStandard, Category: domain.AudioAG},
	})
	sel := store.NewSelection(nil)
	return selection.NewSelector(domain.ParseEntitlement(plan), reg, sel), sel
}

func TestSelector_FreePlanBlocksThirdChatModel(t *testing.T) {
	s, sel := newFixture(t, "free")
	s.Open(domain.ContentChat)

	require.NoError(t, s.Toggle("gpt-4o-mini"))
	require.NoError(t, s.Toggle("gemini-flash"))

	err := s.Toggle("llama")
	require.Error(t, err)

	var selErr *selection.Error
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, selection.KindCount, selErr.Kind)
	assert.Equal(t, []string{"GPT-4o mini", "Gemini Flash", "Llama 3"}, selErr.Models)
	assert.Equal(t, 2, selErr.Limit)
	assert.True(t, selErr.CanUpgrade)
	assert.Equal(t, []string{"gpt-4o-mini", "gemini-flash"}, sel.TempSelectedModels())
}

func TestSelector_PlusModelRejectedOnFreeIsIdempotent(t *testing.T) {
	s, sel := newFixture(t, "free")
	s.Open(domain.ContentChat)
	require.NoError(t, s.Toggle("llama"))

	for i := 0; i < 3; i++ {
		err := s.Toggle("gpt-4o")
		assert.True(t, selection.IsKind(err, selection.KindTier))
		assert.Equal(t, []string{"llama"}, sel.TempSelectedModels())
	}

	var selErr *selection.Error
	require.ErrorAs(t, s.Toggle("claude-sonnet"), &selErr)
	assert.Equal(t, domain.TierStandard, selErr.RequiredTier)
}

func TestSelector_CustomPlanEffectiveTier(t *testing.T) {
	s, sel := newFixture(t, "custom_chat")

	s.Open(domain.ContentChat)
	assert.Equal(t, domain.TierPlus, s.EffectivePlan())
	require.NoError(t, s.Toggle("gpt-4o"))
	require.NoError(t, s.Toggle("claude-sonnet"))
	require.NoError(t, s.Save())
	assert.Equal(t, []string{"gpt-4o", "claude-sonnet"}, sel.SelectedModels(domain.ContentChat))

	s.Open(domain.ContentImage)
	assert.Equal(t, domain.TierFree, s.EffectivePlan())
	assert.True(t, selection.IsKind(s.Toggle("dalle-3"), selection.KindTier))
}

func TestSelector_PlusCapHasNoUpgrade(t *testing.T) {
	s, _ := newFixture(t, "plus")
	s.Open(domain.ContentChat)
	for _, uid := range []string{"gpt-4o-mini", "gemini-flash", "llama", "mistral", "deepseek"} {
		require.NoError(t, s.Toggle(uid))
	}

	var selErr *selection.Error
	require.ErrorAs(t, s.Toggle("qwen"), &selErr)
	assert.Equal(t, selection.KindCount, selErr.Kind)
	assert.Len(t, selErr.Models, 6)
	assert.False(t, selErr.CanUpgrade)
}

func TestSelector_DeselectAlwaysAllowed(t *testing.T) {
	s, sel := newFixture(t, "free")
	s.Open(domain.ContentChat)
	require.NoError(t, s.Toggle("llama"))
	require.NoError(t, s.Toggle("mistral"))
	require.NoError(t, s.Toggle("llama"))
	assert.Equal(t, []string{"mistral"}, sel.TempSelectedModels())
}

func TestSelector_SaveMinimums(t *testing.T) {
	s, sel := newFixture(t, "standard")

	s.Open(domain.ContentChat)
	require.NoError(t, s.Toggle("llama"))
	err := s.Save()
	assert.True(t, selection.IsKind(err, selection.KindMinimum))
	assert.True(t, s.IsOpen())
	assert.Empty(t, sel.SelectedModels(domain.ContentChat))

	s.Open(domain.ContentImage)
	assert.True(t, selection.IsKind(s.Save(), selection.KindMinimum))
	require.NoError(t, s.Toggle("sdxl"))
	require.NoError(t, s.Save())
	assert.False(t, s.IsOpen())
	assert.Equal(t, []string{"sdxl"}, sel.SelectedModels(domain.ContentImage))
}

func TestSelector_CancelDiscardsPending(t *testing.T) {
	s, sel := newFixture(t, "standard")
	sel.SetSelectedModels(domain.ContentChat, []string{"llama", "mistral"})

	s.Open(domain.ContentChat)
	require.NoError(t, s.Toggle("llama"))
	s.Cancel()

	assert.Equal(t, []string{"llama", "mistral"}, sel.SelectedModels(domain.ContentChat))
	assert.Empty(t, sel.TempSelectedModels())
	assert.ErrorIs(t, s.Toggle("llama"), selection.ErrNotOpen)
}

func TestSelector_AudioIsExclusivePerCategory(t *testing.T) {
	s, sel := newFixture(t, "standard")
	s.Open(domain.ContentAudio)

	require.NoError(t, s.Toggle("tts-1"))
	require.NoError(t, s.Toggle("tts-2"))
	assert.Equal(t, []string{"tts-2"}, sel.TempSelectedModels())

	require.NoError(t, s.SwitchAudioCategory(domain.AudioSTT))
	assert.Empty(t, sel.TempSelectedModels())
	require.NoError(t, s.Toggle("whisper"))

	require.NoError(t, s.SwitchAudioCategory(domain.AudioTTS))
	assert.Equal(t, []string{"tts-2"}, sel.TempSelectedModels())

	require.NoError(t, s.Toggle("musicgen"))
	assert.Equal(t, domain.AudioAG, s.AudioCategory())

	require.NoError(t, s.Save())
	assert.Equal(t, []string{"musicgen"}, sel.SelectedModels(domain.ContentAudio))
}

func TestSelector_AudioConfirmedNeverExceedsOne(t *testing.T) {
	s, sel := newFixture(t, "plus")
	for _, uid := range []string{"tts-1", "whisper", "tts-2", "musicgen"} {
		s.Open(domain.ContentAudio)
		require.NoError(t, s.Toggle(uid))
		require.NoError(t, s.Save())
		assert.LessOrEqual(t, len(sel.SelectedModels(domain.ContentAudio)), 1)
	}

	s.Open(domain.ContentAudio)
	assert.Equal(t, domain.AudioAG, s.AudioCategory())
	require.NoError(t, s.Toggle("musicgen"))
	assert.True(t, selection.IsKind(s.Save(), selection.KindMinimum))
	assert.Equal(t, []string{"musicgen"}, sel.SelectedModels(domain.ContentAudio))
}

func TestSelector_AudioTierRejectionKeepsTab(t *testing.T) {
	s, sel := newFixture(t, "free")
	s.Open(domain.ContentAudio)
	require.NoError(t, s.Toggle("tts-1"))

	assert.True(t, selection.IsKind(s.Toggle("musicgen"), selection.KindTier))
	assert.Equal(t, domain.AudioTTS, s.AudioCategory())
	assert.Equal(t, []string{"tts-1"}, sel.TempSelectedModels())
}

func TestSelector_UnknownModel(t *testing.T) {
	s, _ := newFixture(t, "free")
	s.Open(domain.ContentVideo)
	assert.ErrorIs(t, s.Toggle("sdxl"), selection.ErrUnknownModel)
}
