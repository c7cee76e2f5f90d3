package model

import "gorm.io/datatypes"

// TopicFeature is reference data for content-based topic recommendations.
type TopicFeature struct {
	BaseModel
	Topic         string                      `gorm:"size:100;not null;uniqueIndex" json:"topic"`
	Difficulty    int                         `gorm:"not null" json:"difficulty"` // 1-5
	Category      string                      `gorm:"size:100;not null" json:"category"`
	Popularity    float64                     `gorm:"not null" json:"popularity"` // 0-1
	Prerequisites datatypes.JSONSlice[string] `json:"prerequisites"`
	RelatedTopics datatypes.JSONSlice[string] `json:"relatedTopics"`
	Position      int                         `gorm:"default:0" json:"-"`
}

func (TopicFeature) TableName() string {
	return "topic_features"
}
