package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

func TestParseEntitlement(t *testing.T) {
	tests := []struct {
		plan     string
		base     domain.BasePlan
		entitled []domain.ContentType
	}{
		{"free", domain.PlanFree, nil},
		{"standard", domain.PlanStandard, nil},
		{"plus", domain.PlanPlus, nil},
		{"custom_chat_image_audio", domain.PlanCustom, []domain.ContentType{domain.ContentChat, domain.ContentImage, domain.ContentAudio}},
		{"custom_unlimited", domain.PlanCustom, domain.ContentTypes},
		{"pro_video", domain.PlanPro, []domain.ContentType{domain.ContentVideo}},
		{"PRO_Chat_bogus", domain.PlanPro, []domain.ContentType{domain.ContentChat}},
		{"enterprise", domain.PlanFree, nil},
		{"", domain.PlanFree, nil},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			ent := domain.ParseEntitlement(tt.plan)
			assert.Equal(t, tt.base, ent.Base)
			assert.Len(t, ent.ContentTypes, len(tt.entitled))
			for _, ct := range tt.entitled {
				assert.True(t, ent.Entitled(ct), "expected %s to be entitled", ct)
			}
		})
	}
}

func TestEffectivePlan(t *testing.T) {
	plans := []string{
		"free", "standard", "plus",
		"custom_chat", "custom_image_video", "custom_unlimited",
		"pro_audio", "pro_unlimited", "pro",
	}

	for _, plan := range plans {
		ent := domain.ParseEntitlement(plan)
		for _, ct := range domain.ContentTypes {
			got := ent.EffectivePlan(ct)
			switch {
			case !ent.Compound():
				assert.Equal(t, domain.PlanTier(ent.Base), got, "plan %s type %s", plan, ct)
			case ent.Entitled(ct):
				assert.Equal(t, domain.TierPlus, got, "plan %s type %s", plan, ct)
			default:
				assert.Equal(t, domain.TierFree, got, "plan %s type %s", plan, ct)
			}
		}
	}
}

func TestEntitlementString(t *testing.T) {
	assert.Equal(t, "custom_chat_audio", domain.ParseEntitlement("custom_audio_chat").String())
	assert.Equal(t, "pro_unlimited", domain.ParseEntitlement("pro_chat_image_audio_video").String())
	assert.Equal(t, "standard", domain.ParseEntitlement("standard_chat").String())
}

func TestSelectionCap(t *testing.T) {
	assert.Equal(t, 2, domain.SelectionCap(domain.TierFree))
	assert.Equal(t, 3, domain.SelectionCap(domain.TierStandard))
	assert.Equal(t, 5, domain.SelectionCap(domain.TierPlus))
	assert.Equal(t, 2, domain.SelectionCap("unknown"))
}

func TestTierCovers(t *testing.T) {
	assert.True(t, domain.TierPlus.Covers(domain.TierStandard))
	assert.True(t, domain.TierStandard.Covers(domain.TierFree))
	assert.False(t, domain.TierStandard.Covers(domain.TierPlus))
	assert.False(t, domain.TierFree.Covers(domain.TierStandard))
}
