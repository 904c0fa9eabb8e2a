package domain

import (
	"fmt"
	"time"

	technique "mindful/internal/modules/technique/domain"
)

type Kind string

const (
	KindMeditation Kind = "meditation"
	KindBreathing  Kind = "breathing"
)

func (k Kind) Validate() error {
	switch k {
	case KindMeditation, KindBreathing:
		return nil
	default:
		return fmt.Errorf("unsupported practice kind %q", string(k))
	}
}

// Session is one timed practice with a real start timestamp.
type Session struct {
	ID              string
	Kind            Kind
	Technique       technique.ID
	DurationSeconds int
	StartedAt       time.Time
}

// ActiveSession is persisted while a session is running.
type ActiveSession struct {
	SessionID string       `json:"session_id"`
	Kind      Kind         `json:"kind"`
	Technique technique.ID `json:"technique,omitempty"`
	Intention string       `json:"intention,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}
