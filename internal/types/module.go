package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultThresholdScore is the passing bar copied onto new enrollments when
// the module does not override it.
const DefaultThresholdScore = 70.0

// Module rows are never hard-deleted; enrollment history stays addressable.
type Module struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title          string    `gorm:"uniqueIndex;not null;column:title" json:"title"`
	Description    string    `gorm:"column:description" json:"description"`
	DurationHours  int       `gorm:"column:duration_hours;not null;default:0" json:"duration_hours"`
	Difficulty     string    `gorm:"column:difficulty" json:"difficulty"`
	ThresholdScore float64   `gorm:"column:threshold_score;not null;default:70" json:"threshold_score"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Module) TableName() string { return "modules" }
