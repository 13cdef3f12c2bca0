package notification

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeIdeaSparked           Type = "idea_sparked"
	TypeContributionRequested Type = "contribution_requested"
	TypeContributionUpdated   Type = "contribution_updated"
)

// Event is pushed to a single recipient over the websocket hub.
type Event struct {
	Type           Type       `json:"type"`
	IdeaID         uuid.UUID  `json:"idea_id"`
	ActorID        uuid.UUID  `json:"actor_id"`
	ContributionID *uuid.UUID `json:"contribution_id,omitempty"`
	Status         string     `json:"status,omitempty"`
	Timestamp      time.Time  `json:"timestamp"`
}

func New(t Type, ideaID, actorID uuid.UUID) Event {
	return Event{Type: t, IdeaID: ideaID, ActorID: actorID, Timestamp: time.Now().UTC()}
}
