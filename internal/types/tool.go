package types

import (
	"time"

	"github.com/google/uuid"
)

type Tool struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Tool) TableName() string { return "tools" }

// UserTool is the single live tool assignment for a scope. UpdatedOn drives
// the switch cooldown.
type UserTool struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserDomainID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex" json:"user_domain_id"`
	UserDomain   *UserDomain `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserDomainID;references:ID" json:"user_domain,omitempty"`
	ToolID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"tool_id"`
	Tool         *Tool       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ToolID;references:ID" json:"tool,omitempty"`
	AssignedOn   time.Time   `gorm:"column:assigned_on;not null" json:"assigned_on"`
	UpdatedOn    time.Time   `gorm:"column:updated_on;not null" json:"updated_on"`
}

func (UserTool) TableName() string { return "user_tools" }
