package service

import (
	"math"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
)

// DifficultyTally counts graded answers of one difficulty.
type DifficultyTally struct {
	Total     int `json:"total"`
	Incorrect int `json:"incorrect"`
}

// SubjectScore is the per-subject scoring of one session.
type SubjectScore struct {
	SubjectID      uint
	Answered       int
	Correct        int
	PercentCorrect float64 // rounded to one decimal
	WeightedScore  int
	ByDifficulty   map[model.QuestionDifficulty]DifficultyTally
}

// Incorrect returns the number of wrong answers at difficulty d.
func (s SubjectScore) Incorrect(d model.QuestionDifficulty) int {
	return s.ByDifficulty[d].Incorrect
}

func (s SubjectScore) Total(d model.QuestionDifficulty) int {
	return s.ByDifficulty[d].Total
}

type ScoringEngine struct{}

func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// Score groups graded answers by subject in the order of subjectIDs.
// Subjects without answers are left out; answers outside subjectIDs are ignored.
func (e *ScoringEngine) Score(subjectIDs []uint, answers []repository.GradedAnswer) []SubjectScore {
	bySubject := make(map[uint][]repository.GradedAnswer, len(subjectIDs))
	for _, a := range answers {
		bySubject[a.SubjectID] = append(bySubject[a.SubjectID], a)
	}

	scores := make([]SubjectScore, 0, len(subjectIDs))
	seen := make(map[uint]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		graded := bySubject[id]
		if len(graded) == 0 {
			continue
		}
		scores = append(scores, e.scoreSubject(id, graded))
	}
	return scores
}

func (e *ScoringEngine) scoreSubject(subjectID uint, graded []repository.GradedAnswer) SubjectScore {
	score := SubjectScore{
		SubjectID:    subjectID,
		Answered:     len(graded),
		ByDifficulty: make(map[model.QuestionDifficulty]DifficultyTally, 3),
	}
	for _, a := range graded {
		tally := score.ByDifficulty[a.Difficulty]
		tally.Total++
		if a.IsCorrect {
			score.Correct++
			score.WeightedScore += a.Difficulty.Weight()
		} else {
			tally.Incorrect++
		}
		score.ByDifficulty[a.Difficulty] = tally
	}
	score.PercentCorrect = PercentCorrect(score.Correct, score.Answered)
	return score
}

// PercentCorrect is 100*correct/answered rounded to one decimal; 0 when nothing was answered.
func PercentCorrect(correct, answered int) float64 {
	if answered == 0 {
		return 0
	}
	return round1(100 * float64(correct) / float64(answered))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
