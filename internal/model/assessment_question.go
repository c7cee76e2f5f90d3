package model

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "easy"
	DifficultyMedium QuestionDifficulty = "medium"
	DifficultyHard   QuestionDifficulty = "hard"
)

// Weight is the number of points a correct answer of this difficulty is worth.
func (d QuestionDifficulty) Weight() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 0
}

// AssessmentQuestion 学前测评题库中的单选题
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	BaseModel
	SubjectID    uint                        `gorm:"not null;index:idx_question_subject_difficulty,priority:1" json:"subjectId"`
	Text         string                      `gorm:"type:text;not null" json:"text"`
	Options      datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectIndex int                         `gorm:"not null" json:"-"`
	Difficulty   QuestionDifficulty          `gorm:"size:10;not null;index:idx_question_subject_difficulty,priority:2" json:"difficulty"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

func (q *AssessmentQuestion) BeforeSave(tx *gorm.DB) error {
	// 按列更新时接收者只是空模型，只校验实际写入的列
	if cols, ok := tx.Statement.Dest.(map[string]interface{}); ok {
		if d, ok := cols["difficulty"]; ok {
			return validateDifficulty(QuestionDifficulty(fmt.Sprint(d)))
		}
		return nil
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	return validateDifficulty(q.Difficulty)
}

func validateDifficulty(d QuestionDifficulty) error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	}
	return fmt.Errorf("unknown difficulty %q", d)
}

// IsCorrect reports whether selected matches the answer key.
func (q *AssessmentQuestion) IsCorrect(selected int) bool {
	return selected == q.CorrectIndex
}
