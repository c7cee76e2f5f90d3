package service

import (
	"context"
	"fmt"
	"math"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
)

// TopicCatalog is the read-only topic feature table plus its pairwise
// similarity matrix. Build it once and share it.
type TopicCatalog struct {
	features   []model.TopicFeature
	index      map[string]int
	similarity [][]float64
}

func NewTopicCatalog(features []model.TopicFeature) *TopicCatalog {
	c := &TopicCatalog{
		features: append([]model.TopicFeature(nil), features...),
		index:    make(map[string]int, len(features)),
	}
	for i, f := range c.features {
		if _, dup := c.index[f.Topic]; !dup {
			c.index[f.Topic] = i
		}
	}

	c.similarity = make([][]float64, len(c.features))
	for i := range c.features {
		c.similarity[i] = make([]float64, len(c.features))
		for j := range c.features {
			if i == j {
				c.similarity[i][j] = 1.0
				continue
			}
			c.similarity[i][j] = TopicSimilarity(c.features[i], c.features[j])
		}
	}
	return c
}

// LoadTopicCatalog builds the catalog from the topic_features table.
func LoadTopicCatalog(ctx context.Context, repo *repository.TopicRepository) (*TopicCatalog, error) {
	features, err := repo.ListFeatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("load topic features: %w", err)
	}
	return NewTopicCatalog(features), nil
}

// TopicSimilarity averages category similarity (1.0 same, 0.3 otherwise)
// with difficulty closeness on the 1-5 scale.
func TopicSimilarity(a, b model.TopicFeature) float64 {
	categorySim := 0.3
	if a.Category == b.Category {
		categorySim = 1.0
	}
	difficultySim := math.Max(0, 1.0-math.Abs(float64(a.Difficulty-b.Difficulty))/5.0)
	return (categorySim + difficultySim) / 2
}

func (c *TopicCatalog) Len() int {
	return len(c.features)
}

// Features returns the features in catalog order.
func (c *TopicCatalog) Features() []model.TopicFeature {
	return append([]model.TopicFeature(nil), c.features...)
}

func (c *TopicCatalog) Lookup(topic string) (model.TopicFeature, bool) {
	i, ok := c.index[topic]
	if !ok {
		return model.TopicFeature{}, false
	}
	return c.features[i], true
}

// Similarity reports the precomputed similarity; ok is false when either topic is unknown.
func (c *TopicCatalog) Similarity(a, b string) (float64, bool) {
	i, ok := c.index[a]
	if !ok {
		return 0, false
	}
	j, ok := c.index[b]
	if !ok {
		return 0, false
	}
	return c.similarity[i][j], true
}
