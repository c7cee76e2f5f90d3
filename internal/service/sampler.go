package service

import (
	"math/rand"
	"sync"
	"time"

	"skillcheck_backend/internal/model"
)

// StratifiedSampler draws a difficulty-balanced subset from a subject's question pool:
// 40% easy, 40% medium, the rest hard, topped up from whatever is left when a
// difficulty bucket runs short.
type StratifiedSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStratifiedSampler uses rng for every draw; nil seeds from the clock.
func NewStratifiedSampler(rng *rand.Rand) *StratifiedSampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &StratifiedSampler{rng: rng}
}

// Sample returns at most n distinct questions of pool, never more than len(pool).
func (s *StratifiedSampler) Sample(pool []model.AssessmentQuestion, n int) []model.AssessmentQuestion {
	out := make([]model.AssessmentQuestion, 0, max(0, min(n, len(pool))))
	if n <= 0 || len(pool) == 0 {
		return out
	}

	buckets := map[model.QuestionDifficulty][]int{}
	for i, q := range pool {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], i)
	}

	easyTarget := n * 2 / 5
	mediumTarget := n * 2 / 5
	targets := []struct {
		difficulty model.QuestionDifficulty
		count      int
	}{
		{model.DifficultyEasy, easyTarget},
		{model.DifficultyMedium, mediumTarget},
		{model.DifficultyHard, n - easyTarget - mediumTarget},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make([]bool, len(pool))
	for _, t := range targets {
		for _, idx := range s.draw(buckets[t.difficulty], t.count) {
			taken[idx] = true
			out = append(out, pool[idx])
		}
	}

	if shortfall := n - len(out); shortfall > 0 {
		rest := make([]int, 0, len(pool)-len(out))
		for i := range pool {
			if !taken[i] {
				rest = append(rest, i)
			}
		}
		for _, idx := range s.draw(rest, shortfall) {
			out = append(out, pool[idx])
		}
	}
	return out
}

// draw picks min(k, len(indices)) entries uniformly without replacement.
func (s *StratifiedSampler) draw(indices []int, k int) []int {
	if k <= 0 || len(indices) == 0 {
		return nil
	}
	picked := append([]int(nil), indices...)
	s.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if k < len(picked) {
		picked = picked[:k]
	}
	return picked
}
