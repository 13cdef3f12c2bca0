package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  *string
	CreatedAt time.Time
}

type Industry struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
