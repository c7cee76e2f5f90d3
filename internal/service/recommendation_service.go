package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
	"skillcheck_backend/pkg/logger"
	"skillcheck_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Topic score weights.
const (
	weightPopularity      = 0.3
	weightDifficultyMatch = 0.4
	weightPrerequisites   = 0.2
	weightDiversity       = 0.1
)

const (
	masteredAccuracy     = 0.9
	prerequisiteAccuracy = 0.7
	weakTopicAccuracy    = 0.7
)

// Weakness labels.
const (
	WeaknessBasic        = "Basic concepts"
	WeaknessIntermediate = "Intermediate problem solving"
	WeaknessAdvanced     = "Advanced concepts"
	WeaknessFundamental  = "Fundamental understanding"
	WeaknessGeneral      = "General concepts"
	WeaknessNone         = "No specific weaknesses identified"
	WeaknessNoAssessment = "No assessment data available"
)

type TopicRecommendation struct {
	Topic         string   `json:"topic"`
	Score         float64  `json:"score"`
	Difficulty    int      `json:"difficulty"`
	Category      string   `json:"category"`
	Prerequisites []string `json:"prerequisites"`
	RelatedTopics []string `json:"relatedTopics"`
}

// QuizCandidate is a quiz offered for ranking. DifficultyLevel defaults to medium.
type QuizCandidate struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Topic           string `json:"topic"`
	DifficultyLevel string `json:"difficultyLevel" binding:"omitempty,oneof=easy medium hard"`
	IsPopular       bool   `json:"isPopular"`
}

type QuizRecommendation struct {
	QuizCandidate
	RecommendationScore float64 `json:"recommendationScore"`
}

type CourseRecommendation struct {
	SubjectID          uint           `json:"subjectId"`
	Subject            string         `json:"subject"`
	Weakness           string         `json:"weakness"`
	PerformanceLevel   string         `json:"performanceLevel"`
	PercentCorrect     float64        `json:"percentCorrect"`
	RecommendedCourses []model.Course `json:"recommendedCourses"`
}

type CourseRecommendations struct {
	SessionID       *uint                  `json:"sessionId"`
	Fallback        bool                   `json:"fallback"`
	Recommendations []CourseRecommendation `json:"recommendations"`
}

// RecommendationService ranks topics, quizzes and courses for a learner.
type RecommendationService struct {
	Catalog     *TopicCatalog
	Assessments *AssessmentService
	Subjects    *repository.SubjectRepository
	Courses     CourseFinder
	Levels      *LevelMapper
}

func NewRecommendationService(
	catalog *TopicCatalog,
	assessments *AssessmentService,
	subjects *repository.SubjectRepository,
	courses CourseFinder,
	levels *LevelMapper,
) *RecommendationService {
	return &RecommendationService{
		Catalog:     catalog,
		Assessments: assessments,
		Subjects:    subjects,
		Courses:     courses,
		Levels:      levels,
	}
}

// FallbackTopics is served when there is no performance data at all.
func FallbackTopics() []TopicRecommendation {
	return []TopicRecommendation{
		{
			Topic:         "database",
			Score:         0.8,
			Difficulty:    3,
			Category:      "data_management",
			Prerequisites: []string{"sql", "data_structures"},
			RelatedTopics: []string{"sql", "normalization", "indexing"},
		},
		{
			Topic:         "algorithms",
			Score:         0.7,
			Difficulty:    4,
			Category:      "computer_science",
			Prerequisites: []string{"programming", "mathematics"},
			RelatedTopics: []string{"sorting", "searching", "dynamic_programming"},
		},
	}
}

// RecommendTopics ranks catalog topics for profile and returns at most n of
// them, skipping topics the learner already mastered. A nil profile gets
// FallbackTopics.
func (s *RecommendationService) RecommendTopics(profile *model.PerformanceProfile, n int) []TopicRecommendation {
	if n <= 0 {
		return []TopicRecommendation{}
	}
	if profile == nil {
		monitoring.RecommendationFallbacks.WithLabelValues("topics").Inc()
		fallback := FallbackTopics()
		if n < len(fallback) {
			fallback = fallback[:n]
		}
		return fallback
	}

	scored := make([]TopicRecommendation, 0, s.Catalog.Len())
	for _, f := range s.Catalog.Features() {
		scored = append(scored, TopicRecommendation{
			Topic:         f.Topic,
			Score:         s.TopicScore(f, profile),
			Difficulty:    f.Difficulty,
			Category:      f.Category,
			Prerequisites: []string(f.Prerequisites),
			RelatedTopics: []string(f.RelatedTopics),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	out := make([]TopicRecommendation, 0, n)
	for _, rec := range scored {
		if tp, ok := profile.Topic(rec.Topic); ok && tp.Accuracy(0) >= masteredAccuracy {
			continue
		}
		out = append(out, rec)
		if len(out) >= n {
			break
		}
	}
	return out
}

// TopicScore = 0.3 popularity + 0.4 difficulty match + 0.2 prerequisites + 0.1 diversity.
func (s *RecommendationService) TopicScore(f model.TopicFeature, profile *model.PerformanceProfile) float64 {
	userLevel := profile.Overall() * 5
	difficultyMatch := 1.0 - math.Abs(float64(f.Difficulty)-userLevel)/5.0

	return f.Popularity*weightPopularity +
		difficultyMatch*weightDifficultyMatch +
		PrerequisiteSatisfaction(f.Prerequisites, profile)*weightPrerequisites +
		s.Diversity(f.Topic, profile)*weightDiversity
}

// PrerequisiteSatisfaction is the share of prerequisites with accuracy >= 0.7;
// 1.0 when there are none.
func PrerequisiteSatisfaction(prerequisites []string, profile *model.PerformanceProfile) float64 {
	if len(prerequisites) == 0 {
		return 1.0
	}
	satisfied := 0
	for _, p := range prerequisites {
		if tp, ok := profile.Topic(p); ok && tp.Accuracy(0) >= prerequisiteAccuracy {
			satisfied++
		}
	}
	return float64(satisfied) / float64(len(prerequisites))
}

// Diversity is 1 - mean similarity to the studied topics the catalog knows.
// Unknown topic or no known studied topic: 0.5. No studied topics: 1.0.
func (s *RecommendationService) Diversity(topic string, profile *model.PerformanceProfile) float64 {
	if _, ok := s.Catalog.Lookup(topic); !ok {
		return 0.5
	}
	if profile == nil || len(profile.TopicPerformances) == 0 {
		return 1.0
	}

	studied := make([]string, 0, len(profile.TopicPerformances))
	for t := range profile.TopicPerformances {
		studied = append(studied, t)
	}
	sort.Strings(studied)

	var sum float64
	var count int
	for _, t := range studied {
		if sim, ok := s.Catalog.Similarity(topic, t); ok {
			sum += sim
			count++
		}
	}
	if count == 0 {
		return 0.5
	}
	return math.Max(0, 1.0-sum/float64(count))
}

// IdentifyWeaknesses names the difficulty tiers with wrong answers, plus
// WeaknessFundamental when more than half of the easy answers were wrong.
func IdentifyWeaknesses(score SubjectScore) []string {
	easy := score.Incorrect(model.DifficultyEasy)
	medium := score.Incorrect(model.DifficultyMedium)
	hard := score.Incorrect(model.DifficultyHard)

	if score.Correct == score.Answered {
		return []string{WeaknessNone}
	}

	var weaknesses []string
	if easy > 0 {
		weaknesses = append(weaknesses, WeaknessBasic)
	}
	if medium > 0 {
		weaknesses = append(weaknesses, WeaknessIntermediate)
	}
	if hard > 0 {
		weaknesses = append(weaknesses, WeaknessAdvanced)
	}
	if float64(easy) > float64(score.Total(model.DifficultyEasy))*0.5 {
		weaknesses = append(weaknesses, WeaknessFundamental)
	}
	if len(weaknesses) == 0 {
		return []string{WeaknessGeneral}
	}
	return weaknesses
}

// RecommendQuizzes ranks candidates by topic need, difficulty band and
// popularity, keeping input order among equal scores.
func (s *RecommendationService) RecommendQuizzes(candidates []QuizCandidate, profile *model.PerformanceProfile, n int) []QuizRecommendation {
	if n <= 0 || len(candidates) == 0 {
		return []QuizRecommendation{}
	}

	scored := make([]QuizRecommendation, len(candidates))
	for i, q := range candidates {
		scored[i] = QuizRecommendation{QuizCandidate: q, RecommendationScore: QuizScore(q, profile)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RecommendationScore > scored[j].RecommendationScore
	})
	if n < len(scored) {
		scored = scored[:n]
	}
	return scored
}

func QuizScore(q QuizCandidate, profile *model.PerformanceProfile) float64 {
	var score float64

	if tp, ok := profile.Topic(q.Topic); ok {
		if tp.Accuracy(model.DefaultTopicRelevance) < weakTopicAccuracy {
			score += 0.4
		} else {
			score += 0.2
		}
	} else {
		score += 0.3
	}

	level := profile.Overall()
	switch strings.ToLower(q.DifficultyLevel) {
	case "easy":
		if level < 0.4 {
			score += 0.3
		}
	case "hard":
		if level > 0.6 {
			score += 0.3
		}
	default:
		if level >= 0.3 && level <= 0.7 {
			score += 0.3
		}
	}

	if q.IsPopular {
		score += 0.1
	}
	return score
}

// RecommendCourses builds per-subject course picks from the user's latest
// submitted assessment, limit courses each. Without one it falls back to
// beginner courses for every subject.
func (s *RecommendationService) RecommendCourses(ctx context.Context, userID uint, limit int) (*CourseRecommendations, error) {
	session, err := s.Assessments.LatestSubmitted(ctx, userID)
	if errors.Is(err, util.ErrNoAssessmentFound) {
		return s.fallbackCourses(ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	scored, err := s.Assessments.ScoreSession(ctx, session)
	if err != nil {
		return nil, err
	}

	recs := make([]CourseRecommendation, 0, len(scored))
	for _, ss := range scored {
		level := s.Levels.MapLevel(ss.Score.PercentCorrect)
		courses, err := s.Levels.ResolveCourses(ctx, ss.Subject.ID, level, limit, limit)
		if err != nil {
			return nil, err
		}
		recs = append(recs, CourseRecommendation{
			SubjectID:          ss.Subject.ID,
			Subject:            ss.Subject.Name,
			Weakness:           strings.Join(IdentifyWeaknesses(ss.Score), ", "),
			PerformanceLevel:   s.Levels.PerformanceLevel(ss.Score.PercentCorrect),
			PercentCorrect:     ss.Score.PercentCorrect,
			RecommendedCourses: courses,
		})
	}

	sessionID := session.ID
	return &CourseRecommendations{SessionID: &sessionID, Recommendations: recs}, nil
}

func (s *RecommendationService) fallbackCourses(ctx context.Context, limit int) (*CourseRecommendations, error) {
	monitoring.RecommendationFallbacks.WithLabelValues("courses").Inc()

	subjects, err := s.Subjects.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	recs := make([]CourseRecommendation, 0, len(subjects))
	for _, subject := range subjects {
		courses, err := s.Courses.FindBySubjectAndLevel(ctx, subject.ID, model.LevelBeginner, limit)
		if err != nil {
			return nil, fmt.Errorf("find beginner courses: %w", err)
		}
		if len(courses) == 0 {
			courses, err = s.Courses.FindBySubject(ctx, subject.ID, limit)
			if err != nil {
				return nil, fmt.Errorf("find courses: %w", err)
			}
		}
		if courses == nil {
			courses = []model.Course{}
		}
		recs = append(recs, CourseRecommendation{
			SubjectID:          subject.ID,
			Subject:            subject.Name,
			Weakness:           WeaknessNoAssessment,
			PerformanceLevel:   PerformanceUnknown,
			RecommendedCourses: courses,
		})
	}

	logger.Log.Debug("Served fallback course recommendations", zap.Int("subjects", len(recs)))
	return &CourseRecommendations{Fallback: true, Recommendations: recs}, nil
}
