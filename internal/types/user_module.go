package types

import (
	"time"

	"github.com/google/uuid"
)

type EnrollmentStatus string

const (
	EnrollmentTodo       EnrollmentStatus = "todo"
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentTodo, EnrollmentInProgress, EnrollmentCompleted:
		return true
	}
	return false
}

// UserModule is the enrollment record for one scope against one module.
// Invariant: CompletedOn is non-nil iff Status == EnrollmentCompleted.
type UserModule struct {
	ID                uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserDomainID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_scope_module,unique" json:"user_domain_id"`
	UserDomain        *UserDomain      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserDomainID;references:ID" json:"user_domain,omitempty"`
	ModuleID          uuid.UUID        `gorm:"type:uuid;not null;index:idx_scope_module,unique" json:"module_id"`
	Module            *Module          `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Status            EnrollmentStatus `gorm:"column:status;not null;default:'todo'" json:"status"`
	QuestionsAnswered int              `gorm:"column:questions_answered;not null;default:0" json:"questions_answered"`
	Score             float64          `gorm:"column:score;not null;default:0" json:"score"`
	ThresholdScore    float64          `gorm:"column:threshold_score;not null;default:70" json:"threshold_score"`
	JoinedOn          time.Time        `gorm:"column:joined_on;not null" json:"joined_on"`
	CompletedOn       *time.Time       `gorm:"column:completed_on" json:"completed_on,omitempty"`
	UpdatedAt         time.Time        `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserModule) TableName() string { return "user_modules" }
