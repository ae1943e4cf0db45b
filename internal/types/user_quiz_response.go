package types

import (
	"time"

	"github.com/google/uuid"
)

// UserQuizResponse is an append-only record of a single answered question
// within one attempt. Re-attempts insert fresh rows, never overwrite.
type UserQuizResponse struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID        uuid.UUID           `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz          *Quiz               `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	QuestionID    uuid.UUID           `gorm:"type:uuid;not null" json:"question_id"`
	Question      *QuizQuestion       `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	OptionID      *uuid.UUID          `gorm:"type:uuid" json:"option_id,omitempty"`
	Option        *QuizQuestionOption `gorm:"constraint:OnDelete:SET NULL;foreignKey:OptionID;references:ID" json:"option,omitempty"`
	IsCorrect     bool                `gorm:"column:is_correct;not null;default:false" json:"is_correct"`
	MarksObtained int                 `gorm:"column:marks_obtained;not null;default:0" json:"marks_obtained"`
	CreatedAt     time.Time           `gorm:"not null;default:now()" json:"created_at"`
}

func (UserQuizResponse) TableName() string { return "user_quiz_responses" }
