package repository

import (
	"context"

	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// FindBySubjectAndLevel lists courses at one level; limit <= 0 means unbounded.
func (r *CourseRepository) FindBySubjectAndLevel(ctx context.Context, subjectID uint, level model.CourseLevel, limit int) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.WithContext(ctx).Where("subject_id = ? AND level = ?", subjectID, level).Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&courses).Error
	return courses, err
}

// FindBySubject lists courses of any level; limit <= 0 means unbounded.
func (r *CourseRepository) FindBySubject(ctx context.Context, subjectID uint, limit int) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.WithContext(ctx).Where("subject_id = ?", subjectID).Order("id asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}
