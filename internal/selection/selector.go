// File: internal/selection/selector.go
package selection

import (
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// Selector drives the model selection dialog. It reads the registry,
// enforces plan limits and writes pending and confirmed selections to the
// selection store. A Selector is not safe for concurrent use.
type Selector struct {
	entitlement domain.Entitlement
	registry    *store.Registry
	selection   *store.Selection

	open        bool
	contentType domain.ContentType

	// audio keeps one pending list per category; only the active one is
	// mirrored into the store's pending selection.
	audio         map[domain.AudioCategory][]string
	audioCategory domain.AudioCategory
}

func NewSelector(ent domain.Entitlement, registry *store.Registry, selection *store.Selection) *Selector {
	return &Selector{
		entitlement: ent,
		registry:    registry,
		selection:   selection,
	}
}

// Open starts editing ct, seeding the pending selection from the confirmed one.
func (s *Selector) Open(ct domain.ContentType) {
	s.open = true
	s.contentType = ct
	confirmed := s.selection.SelectedModels(ct)

	if ct != domain.ContentAudio {
		s.audio = nil
		s.selection.SetTempSelectedModels(confirmed)
		return
	}

	s.audio = make(map[domain.AudioCategory][]string, len(domain.AudioCategories))
	s.audioCategory = domain.AudioTTS
	for _, uid := range confirmed {
		m, ok := s.model(uid)
		if !ok || !m.Category.Valid() {
			continue
		}
		s.audio[m.Category] = []string{uid}
		s.audioCategory = m.Category
	}
	s.selection.SetTempSelectedModels(s.audio[s.audioCategory])
}

// IsOpen reports whether a selection is being edited.
func (s *Selector) IsOpen() bool { return s.open }

func (s *Selector) ContentType() domain.ContentType { return s.contentType }

// EffectivePlan is the tier that applies to the content type being edited.
func (s *Selector) EffectivePlan() domain.PlanTier {
	return s.entitlement.EffectivePlan(s.contentType)
}

// AudioCategory is the active audio tab.
func (s *Selector) AudioCategory() domain.AudioCategory { return s.audioCategory }

// SwitchAudioCategory parks the pending pick of the current tab and
// restores the pending pick of cat.
func (s *Selector) SwitchAudioCategory(cat domain.AudioCategory) error {
	if !s.open || s.contentType != domain.ContentAudio {
		return ErrNotOpen
	}
	if cat == s.audioCategory {
		return nil
	}
	s.audio[s.audioCategory] = s.selection.TempSelectedModels()
	s.audioCategory = cat
	s.selection.SetTempSelectedModels(s.audio[cat])
	return nil
}

// Toggle selects uid if it is not pending, or deselects it otherwise.
// A rejected toggle returns an *Error and leaves the pending list untouched.
func (s *Selector) Toggle(uid string) error {
	if !s.open {
		return ErrNotOpen
	}
	m, ok := s.model(uid)
	if !ok {
		return ErrUnknownModel
	}

	switchTab := s.contentType == domain.ContentAudio && m.Category.Valid() && m.Category != s.audioCategory

	temp := s.selection.TempSelectedModels()
	if switchTab {
		temp = append([]string(nil), s.audio[m.Category]...)
	}

	if idx := indexOf(temp, uid); idx >= 0 {
		next := append(temp[:idx:idx], temp[idx+1:]...)
		s.switchTabFor(m, switchTab)
		s.setTemp(next)
		return nil
	}

	effective := s.EffectivePlan()
	if !effective.Covers(m.Plan) {
		return &Error{
			Kind:          KindTier,
			ContentType:   s.contentType,
			Model:         m.Name,
			EffectivePlan: effective,
			RequiredTier:  m.Plan,
			CanUpgrade:    true,
		}
	}

	if s.contentType == domain.ContentAudio {
		s.switchTabFor(m, switchTab)
		s.setTemp([]string{uid})
		return nil
	}

	limit := domain.SelectionCap(effective)
	if len(temp)+1 > limit {
		return &Error{
			Kind:          KindCount,
			ContentType:   s.contentType,
			Model:         m.Name,
			EffectivePlan: effective,
			Models:        append(s.names(temp), m.Name),
			Limit:         limit,
			CanUpgrade:    effective != domain.TierPlus,
		}
	}

	s.setTemp(append(temp, uid))
	return nil
}

// Save validates the minimum count and commits the pending selection.
func (s *Selector) Save() error {
	if !s.open {
		return ErrNotOpen
	}
	temp := s.selection.TempSelectedModels()
	required, exact := domain.MinimumSelection(s.contentType)
	if len(temp) < required || (exact && len(temp) != required) {
		return &Error{
			Kind:          KindMinimum,
			ContentType:   s.contentType,
			EffectivePlan: s.EffectivePlan(),
			Models:        s.names(temp),
			Required:      required,
			Exact:         exact,
		}
	}

	s.selection.SaveSelectedModels(s.contentType)
	s.close()
	return nil
}

// Cancel discards the pending selection.
func (s *Selector) Cancel() {
	if !s.open {
		return
	}
	s.selection.DiscardTemp()
	s.close()
}

// Pending resolves the pending uids to registry models.
func (s *Selector) Pending() []domain.Model {
	var out []domain.Model
	for _, uid := range s.selection.TempSelectedModels() {
		if m, ok := s.model(uid); ok {
			out = append(out, m)
		}
	}
	return out
}

func (s *Selector) switchTabFor(m domain.Model, switchTab bool) {
	if switchTab {
		_ = s.SwitchAudioCategory(m.Category)
	}
}

func (s *Selector) setTemp(uids []string) {
	s.selection.SetTempSelectedModels(uids)
	if s.contentType == domain.ContentAudio {
		s.audio[s.audioCategory] = append([]string(nil), uids...)
	}
}

func (s *Selector) close() {
	s.open = false
	s.audio = nil
}

func (s *Selector) model(uid string) (domain.Model, bool) {
	for _, m := range s.registry.Models(s.contentType) {
		if m.UID == uid {
			return m, true
		}
	}
	return domain.Model{}, false
}

func (s *Selector) names(uids []string) []string {
	names := make([]string, 0, len(uids))
	for _, uid := range uids {
		if m, ok := s.model(uid); ok {
			names = append(names, m.Name)
			continue
		}
		names = append(names, uid)
	}
	return names
}

func indexOf(list []string, v string) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
