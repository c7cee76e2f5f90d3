package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
	"skillcheck_backend/pkg/tracing"
)

const (
	multiplierHarder = 1.2
	multiplierSame   = 1.0
	multiplierEasier = 0.8

	// DefaultCurrentDifficulty is used when the caller has no current difficulty.
	DefaultCurrentDifficulty = 2.0
)

// AdaptiveCandidate is a question considered for the next adaptive step.
type AdaptiveCandidate struct {
	Question        QuestionView `json:"question"`
	Topic           string       `json:"topic"`
	DifficultyScore float64      `json:"difficultyScore"`
}

type NextQuestionResult struct {
	Multiplier       float64            `json:"multiplier"`
	TargetDifficulty float64            `json:"targetDifficulty"`
	Candidates       int                `json:"candidates"`
	Next             *AdaptiveCandidate `json:"next"`
}

// AdaptiveService picks the next question closest to a performance-adjusted difficulty.
type AdaptiveService struct {
	Subjects  *repository.SubjectRepository
	Questions *repository.QuestionRepository
	Progress  *ProgressService
}

func NewAdaptiveService(subjects *repository.SubjectRepository, questions *repository.QuestionRepository, progress *ProgressService) *AdaptiveService {
	return &AdaptiveService{Subjects: subjects, Questions: questions, Progress: progress}
}

// Adjust returns 1.2 for strong learners, 0.8 for struggling ones, 1.0 otherwise.
func (s *AdaptiveService) Adjust(profile *model.PerformanceProfile) float64 {
	overall, accuracy := profile.Overall(), profile.Accuracy()
	switch {
	case overall > 0.8 && accuracy > 0.8:
		return multiplierHarder
	case overall < 0.4 || accuracy < 0.4:
		return multiplierEasier
	default:
		return multiplierSame
	}
}

// SelectNextQuestion scores each candidate as 0.7*|difficulty - target| +
// 0.3*(1 - topic relevance) and returns the lowest, first one on ties.
// Returns nil for no candidates.
func (s *AdaptiveService) SelectNextQuestion(candidates []AdaptiveCandidate, profile *model.PerformanceProfile, currentDifficulty float64) *AdaptiveCandidate {
	if len(candidates) == 0 {
		return nil
	}
	target := currentDifficulty * s.Adjust(profile)

	type scored struct {
		score float64
		idx   int
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{
			score: math.Abs(c.DifficultyScore-target)*0.7 + (1-TopicRelevance(c.Topic, profile))*0.3,
			idx:   i,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	best := candidates[ranked[0].idx]
	return &best
}

// TopicRelevance is the learner's accuracy on topic, 0.5 when unknown.
func TopicRelevance(topic string, profile *model.PerformanceProfile) float64 {
	if tp, ok := profile.Topic(topic); ok {
		return tp.Accuracy(model.DefaultTopicRelevance)
	}
	return model.DefaultTopicRelevance
}

// DifficultyScore puts question difficulties on the adaptive scale: easy 1, medium 2, hard 3.
func DifficultyScore(d model.QuestionDifficulty) float64 {
	return float64(d.Weight())
}

// NextQuestion picks the next question of a subject for the user, skipping exclude.
func (s *AdaptiveService) NextQuestion(ctx context.Context, userID, subjectID uint, currentDifficulty float64, exclude []uint) (*NextQuestionResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AdaptiveService.NextQuestion")
	defer span.End()

	subjects, err := s.Subjects.FindByIDs(ctx, []uint{subjectID})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	subject, ok := subjects[subjectID]
	if !ok {
		return nil, util.ErrSubjectNotFound
	}

	if currentDifficulty <= 0 {
		currentDifficulty = DefaultCurrentDifficulty
	}

	profile, err := s.Progress.BuildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.Questions.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	skip := make(map[uint]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	topic := TopicKey(subject.Name)
	candidates := make([]AdaptiveCandidate, 0, len(pool))
	for _, q := range pool {
		if skip[q.ID] {
			continue
		}
		candidates = append(candidates, AdaptiveCandidate{
			Question: QuestionView{
				ID:         q.ID,
				SubjectID:  q.SubjectID,
				Text:       q.Text,
				Options:    []string(q.Options),
				Difficulty: q.Difficulty,
			},
			Topic:           topic,
			DifficultyScore: DifficultyScore(q.Difficulty),
		})
	}

	multiplier := s.Adjust(profile)
	return &NextQuestionResult{
		Multiplier:       multiplier,
		TargetDifficulty: currentDifficulty * multiplier,
		Candidates:       len(candidates),
		Next:             s.SelectNextQuestion(candidates, profile, currentDifficulty),
	}, nil
}
