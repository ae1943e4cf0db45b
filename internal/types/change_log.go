package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChangeLog is a write-only audit sink; the engine appends, nothing in the
// engine reads it back.
type ChangeLog struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ChangeType   string         `gorm:"column:change_type;not null;index" json:"change_type"`
	ChangeTypeID uuid.UUID      `gorm:"type:uuid;not null;column:change_type_id" json:"change_type_id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Reason       *string        `gorm:"column:reason" json:"reason,omitempty"`
	Details      datatypes.JSON `gorm:"type:jsonb;column:details" json:"details,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (ChangeLog) TableName() string { return "change_logs" }
