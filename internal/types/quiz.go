package types

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ModuleID  uuid.UUID `gorm:"type:uuid;not null;index" json:"module_id"`
	Module    *Module   `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }

type QuizQuestion struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuizID       uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz         *Quiz     `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	QuestionText string    `gorm:"column:question_text;not null" json:"question_text"`
	Marks        int       `gorm:"column:marks;not null;default:0" json:"marks"`
	Position     int       `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizQuestion) TableName() string { return "quiz_questions" }

// QuizQuestionOption belongs to at most one question at a time. QuestionID is
// nulled on detach so historical responses stay resolvable.
type QuizQuestionOption struct {
	ID         uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	QuestionID *uuid.UUID    `gorm:"type:uuid;index" json:"question_id,omitempty"`
	Question   *QuizQuestion `gorm:"constraint:OnDelete:SET NULL;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	OptionText string        `gorm:"uniqueIndex;not null;column:option_text" json:"option_text"`
	IsCorrect  bool          `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	CreatedAt  time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (QuizQuestionOption) TableName() string { return "quiz_question_options" }
