package repository

import (
	"context"

	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) ListAll(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.WithContext(ctx).Order("id asc").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&model.Subject{}).Order("id asc").Pluck("id", &ids).Error
	return ids, err
}

// FindByIDs returns the subjects keyed by id; unknown ids are simply absent.
func (r *SubjectRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]model.Subject, error) {
	out := make(map[uint]model.Subject, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var subjects []model.Subject
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&subjects).Error; err != nil {
		return nil, err
	}
	for _, s := range subjects {
		out[s.ID] = s
	}
	return out, nil
}

func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return r.DB.WithContext(ctx).Create(subject).Error
}
