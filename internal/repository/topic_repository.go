package repository

import (
	"context"

	"skillcheck_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) ListFeatures(ctx context.Context) ([]model.TopicFeature, error) {
	var features []model.TopicFeature
	err := r.DB.WithContext(ctx).Order("position asc, id asc").Find(&features).Error
	return features, err
}
