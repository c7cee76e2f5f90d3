package service

import (
	"context"
	"fmt"
	"strings"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
)

// ProgressService derives performance profiles from stored assessment answers.
type ProgressService struct {
	Repo     *repository.AssessmentRepository
	Subjects *repository.SubjectRepository
}

func NewProgressService(repo *repository.AssessmentRepository, subjects *repository.SubjectRepository) *ProgressService {
	return &ProgressService{Repo: repo, Subjects: subjects}
}

// TopicKey maps a subject name onto the topic key space, e.g. "Operating Systems" -> "operating_systems".
func TopicKey(subjectName string) string {
	return strings.Join(strings.Fields(strings.ToLower(subjectName)), "_")
}

type tally struct {
	answered, correct         int
	weightTotal, weightEarned int
}

// BuildProfile aggregates every submitted answer of the user. OverallScore is
// difficulty-weighted accuracy, AccuracyRate is plain accuracy. Returns nil
// when the user has no graded answers.
func (s *ProgressService) BuildProfile(ctx context.Context, userID uint) (*model.PerformanceProfile, error) {
	rows, err := s.Repo.ListUserGradedAnswers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user answers: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	seen := make(map[uint]bool)
	var subjectIDs []uint
	for _, r := range rows {
		if !seen[r.SubjectID] {
			seen[r.SubjectID] = true
			subjectIDs = append(subjectIDs, r.SubjectID)
		}
	}
	subjects, err := s.Subjects.FindByIDs(ctx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}

	var all tally
	byTopic := make(map[string]*tally)
	for _, r := range rows {
		w := r.Difficulty.Weight()
		aggs := []*tally{&all}
		// 学科已删除的答案只计入总体
		if subject, ok := subjects[r.SubjectID]; ok {
			key := TopicKey(subject.Name)
			t, ok := byTopic[key]
			if !ok {
				t = &tally{}
				byTopic[key] = t
			}
			aggs = append(aggs, t)
		}
		for _, agg := range aggs {
			agg.answered++
			agg.weightTotal += w
			if r.IsCorrect {
				agg.correct++
				agg.weightEarned += w
			}
		}
	}

	profile := &model.PerformanceProfile{
		OverallScore:      model.Float(ratio(all.weightEarned, all.weightTotal)),
		AccuracyRate:      model.Float(ratio(all.correct, all.answered)),
		TopicPerformances: make(map[string]model.TopicPerformance, len(byTopic)),
	}
	for key, t := range byTopic {
		profile.TopicPerformances[key] = model.TopicPerformance{
			AccuracyRate:       model.Float(ratio(t.correct, t.answered)),
			QuestionsAttempted: t.answered,
		}
	}
	return profile, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
