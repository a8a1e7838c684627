// File: internal/domain/plan.go
package domain

import "strings"

// BasePlan is the leading token of an account plan string.
type BasePlan string

const (
	PlanFree     BasePlan = "free"
	PlanStandard BasePlan = "standard"
	PlanPlus     BasePlan = "plus"
	PlanCustom   BasePlan = "custom"
	PlanPro      BasePlan = "pro"
)

const (
	planDelimiter = "_"
	planWildcard  = "unlimited"
)

// Entitlement is the decoded form of a plan string such as
// "custom_chat_image_audio" or "pro_unlimited".
type Entitlement struct {
	Base         BasePlan
	ContentTypes map[ContentType]bool
}

// ParseEntitlement decodes a plan string once at the boundary.
// Unknown base plans decode as free.
func ParseEntitlement(plan string) Entitlement {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(plan)), planDelimiter)
	ent := Entitlement{Base: PlanFree, ContentTypes: map[ContentType]bool{}}

	switch base := BasePlan(tokens[0]); base {
	case PlanFree, PlanStandard, PlanPlus, PlanCustom, PlanPro:
		ent.Base = base
	}

	for _, tok := range tokens[1:] {
		if tok == planWildcard {
			for _, ct := range ContentTypes {
				ent.ContentTypes[ct] = true
			}
			continue
		}
		if ct := ContentType(tok); ct.Valid() {
			ent.ContentTypes[ct] = true
		}
	}
	return ent
}

// Compound reports whether the plan grants per-content-type entitlements.
func (e Entitlement) Compound() bool {
	return e.Base == PlanCustom || e.Base == PlanPro
}

// Entitled reports whether a compound plan covers the content type.
func (e Entitlement) Entitled(ct ContentType) bool {
	return e.ContentTypes[ct]
}

// EffectivePlan is the tier that applies while selecting models of type ct.
func (e Entitlement) EffectivePlan(ct ContentType) PlanTier {
	if !e.Compound() {
		return PlanTier(e.Base)
	}
	if e.Entitled(ct) {
		return TierPlus
	}
	return TierFree
}

func (e Entitlement) String() string {
	if !e.Compound() {
		return string(e.Base)
	}
	if len(e.ContentTypes) == len(ContentTypes) {
		return string(e.Base) + planDelimiter + planWildcard
	}
	parts := []string{string(e.Base)}
	for _, ct := range ContentTypes {
		if e.ContentTypes[ct] {
			parts = append(parts, string(ct))
		}
	}
	return strings.Join(parts, planDelimiter)
}

// selectionCaps holds the maximum number of models selectable per plan.
var selectionCaps = map[string]int{
	string(PlanFree):     2,
	string(PlanStandard): 3,
	string(PlanPlus):     5,
	string(PlanCustom):   5,
	string(PlanPro):      5,
}

// SelectionCap returns the model cap for an effective plan.
func SelectionCap(tier PlanTier) int {
	if n, ok := selectionCaps[string(tier)]; ok {
		return n
	}
	return selectionCaps[string(PlanFree)]
}

// MinimumSelection returns how many models a save requires, and whether the
// count must be exact.
func MinimumSelection(ct ContentType) (n int, exact bool) {
	switch ct {
	case ContentChat:
		return 2, false
	case ContentAudio:
		return 1, true
	default:
		return 1, false
	}
}
