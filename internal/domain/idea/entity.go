package idea

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "PENDING"
	ContributionApproved ContributionStatus = "APPROVED"
	ContributionRejected ContributionStatus = "REJECTED"
)

type Idea struct {
	ID          uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
	Category    *string
	Status      Status
	Visibility  Visibility
	Skills      []string
	SparkCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Listed reports whether the idea is open to everyone.
func (i Idea) Listed() bool {
	return i.Status == StatusPublished && i.Visibility == VisibilityPublic
}

// VisibleTo reports whether viewer may read the idea. Authors always can.
func (i Idea) VisibleTo(viewer uuid.UUID) bool {
	if i.Listed() {
		return true
	}
	return viewer != uuid.Nil && viewer == i.AuthorID
}

type Contribution struct {
	ID        uuid.UUID
	IdeaID    uuid.UUID
	UserID    uuid.UUID
	Message   *string
	Status    ContributionStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	default:
		return "", false
	}
}

func ParseVisibility(s string) (Visibility, bool) {
	switch Visibility(strings.ToUpper(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, true
	case VisibilityPrivate:
		return VisibilityPrivate, true
	default:
		return "", false
	}
}

// ParseDecision accepts only the terminal contribution states.
func ParseDecision(s string) (ContributionStatus, bool) {
	switch ContributionStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case ContributionApproved:
		return ContributionApproved, true
	case ContributionRejected:
		return ContributionRejected, true
	default:
		return "", false
	}
}
