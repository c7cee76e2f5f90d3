package repository

import (
	"context"

	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

// QuestionRepository is the question bank: lookups only, no selection logic.
type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) ListBySubject(ctx context.Context, subjectID uint) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.WithContext(ctx).Where("subject_id = ?", subjectID).Order("id asc").Find(&qs).Error
	return qs, err
}

// FindByIDs returns the questions keyed by id; unknown ids are simply absent.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]model.AssessmentQuestion, error) {
	out := make(map[uint]model.AssessmentQuestion, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var qs []model.AssessmentQuestion
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&qs).Error; err != nil {
		return nil, err
	}
	for _, q := range qs {
		out[q.ID] = q
	}
	return out, nil
}
