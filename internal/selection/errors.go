// File: internal/selection/errors.go
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

var (
	ErrNotOpen      = errors.New("model selection is not open")
	ErrUnknownModel = errors.New("model is not available for this content type")
)

// Kind classifies a rejected selection change.
type Kind string

const (
	// KindTier: the model needs a higher plan than the effective one.
	KindTier Kind = "TIER"
	// KindCount: the selection would exceed the plan's model cap.
	KindCount Kind = "COUNT"
	// KindMinimum: not enough models selected to save.
	KindMinimum Kind = "MINIMUM"
)

// Error is a validation rejection. It never leaves state modified; the UI
// shows it as a dismissable prompt.
type Error struct {
	Kind          Kind
	ContentType   domain.ContentType
	Model         string
	EffectivePlan domain.PlanTier
	RequiredTier  domain.PlanTier
	Models        []string
	Limit         int
	Required      int
	Exact         bool
	CanUpgrade    bool
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTier:
		return fmt.Sprintf("%s requires the %s plan; upgrade to use it", e.Model, e.RequiredTier)
	case KindCount:
		msg := fmt.Sprintf("the %s plan allows up to %d %s models (%s)",
			e.EffectivePlan, e.Limit, e.ContentType, strings.Join(e.Models, ", "))
		if e.CanUpgrade {
			msg += "; upgrade to select more"
		}
		return msg
	case KindMinimum:
		if e.Exact {
			return fmt.Sprintf("select exactly %d %s model", e.Required, e.ContentType)
		}
		return fmt.Sprintf("select at least %d %s models", e.Required, e.ContentType)
	}
	return "selection rejected"
}

// IsKind reports whether err is a selection Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var selErr *Error
	return errors.As(err, &selErr) && selErr.Kind == kind
}
