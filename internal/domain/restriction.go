// File: internal/domain/restriction.go
package domain

import (
	"fmt"
	"time"
)

// Mode is a submission mode that the backend can rate limit independently.
type Mode string

const (
	ModeChat    Mode = "chat"
	ModeCombine Mode = "combine"
	ModeCompare Mode = "compare"
)

var Modes = []Mode{ModeChat, ModeCombine, ModeCompare}

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeChat, ModeCombine, ModeCompare:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Restriction is an active limit on a mode.
type Restriction struct {
	Mode         Mode      `json:"mode" gorm:"primaryKey;size:16"`
	Message      string    `json:"message"`
	ComebackTime time.Time `json:"comeback_time"`
}

// IsExpired reports whether the restriction no longer applies at now.
func IsExpired(r Restriction, now time.Time) bool {
	return !now.Before(r.ComebackTime)
}

// Remaining is the time left until the restriction lifts, never negative.
func (r Restriction) Remaining(now time.Time) time.Duration {
	if d := r.ComebackTime.Sub(now); d > 0 {
		return d
	}
	return 0
}
