// File: internal/domain/model.go
package domain

import (
	"fmt"
	"strings"
)

// ContentType is the generation surface a model belongs to.
type ContentType string

const (
	ContentChat  ContentType = "chat"
	ContentImage ContentType = "image"
	ContentAudio ContentType = "audio"
	ContentVideo ContentType = "video"
)

// ContentTypes lists every surface in display order.
var ContentTypes = []ContentType{ContentChat, ContentImage, ContentAudio, ContentVideo}

// ParseContentType accepts the lower-case wire name of a content type.
func ParseContentType(s string) (ContentType, error) {
	ct := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !ct.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return ct, nil
}

func (c ContentType) Valid() bool {
	switch c {
	case ContentChat, ContentImage, ContentAudio, ContentVideo:
		return true
	}
	return false
}

// PlanTier is the subscription tier a model requires.
type PlanTier string

const (
	TierFree     PlanTier = "free"
	TierStandard PlanTier = "standard"
	TierPlus     PlanTier = "plus"
)

// rank orders tiers so gates can compare them.
func (t PlanTier) rank() int {
	switch t {
	case TierStandard:
		return 1
	case TierPlus:
		return 2
	default:
		return 0
	}
}

// Covers reports whether an account on tier t may use a model requiring tier required.
func (t PlanTier) Covers(required PlanTier) bool {
	return t.rank() >= required.rank()
}

// AudioCategory splits audio models into independent selection groups.
type AudioCategory string

const (
	AudioTTS AudioCategory = "tts"
	AudioSTT AudioCategory = "stt"
	AudioAG  AudioCategory = "ag"
)

var AudioCategories = []AudioCategory{AudioTTS, AudioSTT, AudioAG}

func (a AudioCategory) Valid() bool {
	return a == AudioTTS || a == AudioSTT || a == AudioAG
}

// Model is a registry entry. Only Favorite changes after load.
type Model struct {
	UID         string        `json:"model_uid" yaml:"uid"`
	Name        string        `json:"model_name" yaml:"name"`
	Provider    string        `json:"model_provider" yaml:"provider"`
	Plan        PlanTier      `json:"model_plan" yaml:"plan"`
	Category    AudioCategory `json:"model_category,omitempty" yaml:"category,omitempty"`
	Favorite    bool          `json:"favorite" yaml:"favorite"`
	ValidInputs []string      `json:"valid_inputs,omitempty" yaml:"valid_inputs,omitempty"`
}

// AcceptsInput reports whether the model lists the given modality tag.
func (m Model) AcceptsInput(tag string) bool {
	for _, in := range m.ValidInputs {
		if strings.EqualFold(in, tag) {
			return true
		}
	}
	return false
}
