package model

import (
	"time"

	"gorm.io/datatypes"
)

type AssessmentStatus string

const (
	AssessmentActive    AssessmentStatus = "active"
	AssessmentSubmitted AssessmentStatus = "submitted"
)

// AssessmentSession 一次多学科抽样测评，提交后状态不可再变
// swagger:model AssessmentSession
type AssessmentSession struct {
	BaseModel
	UserID                 uint                      `gorm:"not null;index" json:"userId"`
	Status                 AssessmentStatus          `gorm:"size:20;not null;default:'active';index" json:"status"`
	SelectedSubjectIDs     datatypes.JSONSlice[uint] `gorm:"not null" json:"selectedSubjectIds"`
	NumQuestionsPerSubject int                       `gorm:"not null;default:10" json:"numQuestionsPerSubject"`
	SubmittedAt            *time.Time                `json:"submittedAt,omitempty"`
	Answers                []AssessmentAnswer        `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AssessmentSession) TableName() string {
	return "assessment_sessions"
}

func (s *AssessmentSession) IsSubmitted() bool {
	return s.Status == AssessmentSubmitted
}

// AssessmentAnswer is graded once at submission; IsCorrect is never recomputed.
// swagger:model AssessmentAnswer
type AssessmentAnswer struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID     uint      `gorm:"not null;uniqueIndex:idx_answer_session_question,priority:1" json:"sessionId"`
	QuestionID    uint      `gorm:"not null;uniqueIndex:idx_answer_session_question,priority:2" json:"questionId"`
	SelectedIndex int       `gorm:"not null" json:"selectedIndex"`
	IsCorrect     bool      `gorm:"not null" json:"isCorrect"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (AssessmentAnswer) TableName() string {
	return "assessment_answers"
}
