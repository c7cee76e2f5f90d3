package service

import (
	"context"
	"testing"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService() *RecommendationService {
	return &RecommendationService{Catalog: NewTopicCatalog(database.DefaultTopicFeatures())}
}

func topicsOf(recs []TopicRecommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Topic
	}
	return out
}

func TestRecommendTopics_FallbackWithoutProfile(t *testing.T) {
	s := newCatalogService()

	recs := s.RecommendTopics(nil, 5)
	assert.Equal(t, []string{"database", "algorithms"}, topicsOf(recs))
	assert.Equal(t, 0.8, recs[0].Score)
	assert.Equal(t, 0.7, recs[1].Score)

	assert.Equal(t, []string{"database"}, topicsOf(s.RecommendTopics(nil, 1)))
	assert.Empty(t, s.RecommendTopics(nil, 0))
}

func TestRecommendTopics_RanksAndFiltersMastered(t *testing.T) {
	s := newCatalogService()
	profile := &model.PerformanceProfile{
		OverallScore: model.Float(0.6),
		AccuracyRate: model.Float(0.6),
		TopicPerformances: map[string]model.TopicPerformance{
			"database":    {AccuracyRate: model.Float(0.95), QuestionsAttempted: 20},
			"programming": {AccuracyRate: model.Float(0.8), QuestionsAttempted: 10},
		},
	}

	recs := s.RecommendTopics(profile, 10)

	assert.NotContains(t, topicsOf(recs), "database")
	assert.Len(t, recs, s.Catalog.Len()-1)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}

	top := s.RecommendTopics(profile, 2)
	assert.Equal(t, topicsOf(recs[:2]), topicsOf(top))
}

func TestRecommendTopics_MasteryUsesZeroForMissingAccuracy(t *testing.T) {
	s := newCatalogService()
	profile := &model.PerformanceProfile{
		TopicPerformances: map[string]model.TopicPerformance{
			"database": {QuestionsAttempted: 3},
		},
	}
	assert.Contains(t, topicsOf(s.RecommendTopics(profile, 10)), "database")
}

func TestTopicScore(t *testing.T) {
	s := newCatalogService()
	db, ok := s.Catalog.Lookup("database")
	require.True(t, ok)

	profile := &model.PerformanceProfile{OverallScore: model.Float(0.6)}
	// 0.8*0.3 + 1.0*0.4 + 0*0.2 + 1.0*0.1
	assert.InDelta(t, 0.74, s.TopicScore(db, profile), 1e-9)

	profile.TopicPerformances = map[string]model.TopicPerformance{
		"sql":             {AccuracyRate: model.Float(0.7)},
		"data_structures": {AccuracyRate: model.Float(0.69)},
	}
	// sql satisfied, data_structures not, no studied topic known to the catalog
	assert.InDelta(t, 0.24+0.4+0.1+0.05, s.TopicScore(db, profile), 1e-9)
}

func TestPrerequisiteSatisfaction(t *testing.T) {
	profile := &model.PerformanceProfile{
		TopicPerformances: map[string]model.TopicPerformance{
			"sql":  {AccuracyRate: model.Float(0.7)},
			"math": {AccuracyRate: model.Float(0.2)},
		},
	}
	assert.Equal(t, 1.0, PrerequisiteSatisfaction(nil, profile))
	assert.Equal(t, 0.5, PrerequisiteSatisfaction([]string{"sql", "math"}, profile))
	assert.Equal(t, 0.0, PrerequisiteSatisfaction([]string{"unknown"}, profile))
	assert.Equal(t, 0.0, PrerequisiteSatisfaction([]string{"sql"}, nil))
}

func TestDiversity(t *testing.T) {
	s := newCatalogService()

	assert.Equal(t, 0.5, s.Diversity("quantum", nil))
	assert.Equal(t, 1.0, s.Diversity("database", nil))
	assert.Equal(t, 1.0, s.Diversity("database", &model.PerformanceProfile{}))

	unknownOnly := &model.PerformanceProfile{TopicPerformances: map[string]model.TopicPerformance{"sql": {}}}
	assert.Equal(t, 0.5, s.Diversity("database", unknownOnly))

	same := &model.PerformanceProfile{TopicPerformances: map[string]model.TopicPerformance{"database": {}}}
	assert.Equal(t, 0.0, s.Diversity("database", same))

	// algorithms vs networks: categories differ (0.3), difficulty 4 vs 3 (0.8)
	networks := &model.PerformanceProfile{TopicPerformances: map[string]model.TopicPerformance{"networks": {}}}
	assert.InDelta(t, 1-0.55, s.Diversity("algorithms", networks), 1e-9)
}

func TestTopicSimilarity(t *testing.T) {
	a := model.TopicFeature{Category: "systems", Difficulty: 3}
	b := model.TopicFeature{Category: "systems", Difficulty: 5}
	c := model.TopicFeature{Category: "programming", Difficulty: 3}

	assert.InDelta(t, (1.0+0.6)/2, TopicSimilarity(a, b), 1e-9)
	assert.InDelta(t, (0.3+1.0)/2, TopicSimilarity(a, c), 1e-9)
	assert.Equal(t, TopicSimilarity(a, b), TopicSimilarity(b, a))
}

func TestQuizScore(t *testing.T) {
	strong := &model.PerformanceProfile{
		OverallScore: model.Float(0.9),
		TopicPerformances: map[string]model.TopicPerformance{
			"sql":  {AccuracyRate: model.Float(0.5)},
			"oop":  {AccuracyRate: model.Float(0.8)},
			"math": {},
		},
	}
	tests := []struct {
		name    string
		quiz    QuizCandidate
		profile *model.PerformanceProfile
		want    float64
	}{
		{"no profile, medium, popular", QuizCandidate{Topic: "x", IsPopular: true}, nil, 0.7},
		{"weak topic, hard", QuizCandidate{Topic: "sql", DifficultyLevel: "hard"}, strong, 0.7},
		{"strong topic, easy", QuizCandidate{Topic: "oop", DifficultyLevel: "easy"}, strong, 0.2},
		{"missing accuracy counts as 0.5", QuizCandidate{Topic: "math", DifficultyLevel: "Hard"}, strong, 0.7},
		{"medium out of band", QuizCandidate{Topic: "oop", DifficultyLevel: "medium"}, strong, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, QuizScore(tt.quiz, tt.profile), 1e-9)
		})
	}
}

func TestRecommendQuizzes(t *testing.T) {
	s := newCatalogService()
	profile := &model.PerformanceProfile{
		OverallScore: model.Float(0.2),
		TopicPerformances: map[string]model.TopicPerformance{
			"oop": {AccuracyRate: model.Float(0.9)},
		},
	}
	candidates := []QuizCandidate{
		{ID: 1, Topic: "oop", DifficultyLevel: "hard"},
		{ID: 2, Topic: "sql", DifficultyLevel: "hard"},
		{ID: 3, Topic: "sql", DifficultyLevel: "easy"},
		{ID: 4, Topic: "dp", DifficultyLevel: "hard"},
	}

	recs := s.RecommendQuizzes(candidates, profile, 3)

	require.Len(t, recs, 3)
	assert.Equal(t, uint(3), recs[0].ID)
	assert.InDelta(t, 0.6, recs[0].RecommendationScore, 1e-9)
	// 2 and 4 tie; input order is kept
	assert.Equal(t, uint(2), recs[1].ID)
	assert.Equal(t, uint(4), recs[2].ID)

	assert.NotNil(t, s.RecommendQuizzes(nil, profile, 3))
	assert.Empty(t, s.RecommendQuizzes(candidates, profile, 0))
}

func TestRecommendCourses_FallbackWithoutAssessment(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	algo := createSubject(t, f.db, "Algorithms")
	createCourse(t, f.db, algo.ID, "Algorithms 101", model.LevelBeginner)
	createCourse(t, f.db, algo.ID, "Graphs", model.LevelIntermediate)
	net := createSubject(t, f.db, "Networks")
	createCourse(t, f.db, net.ID, "TCP/IP", model.LevelAdvanced)
	createSubject(t, f.db, "Empty")

	recs, err := f.recommendation.RecommendCourses(ctx, 1, 5)
	require.NoError(t, err)

	assert.True(t, recs.Fallback)
	assert.Nil(t, recs.SessionID)
	require.Len(t, recs.Recommendations, 3)
	byName := map[string]CourseRecommendation{}
	for _, r := range recs.Recommendations {
		byName[r.Subject] = r
		assert.Equal(t, PerformanceUnknown, r.PerformanceLevel)
		assert.Equal(t, WeaknessNoAssessment, r.Weakness)
		assert.NotNil(t, r.RecommendedCourses)
	}
	require.Len(t, byName["Algorithms"].RecommendedCourses, 1)
	assert.Equal(t, "Algorithms 101", byName["Algorithms"].RecommendedCourses[0].Title)
	require.Len(t, byName["Networks"].RecommendedCourses, 1)
	assert.Equal(t, "TCP/IP", byName["Networks"].RecommendedCourses[0].Title)
	assert.Empty(t, byName["Empty"].RecommendedCourses)
}

func TestRecommendCourses_FromLatestAssessment(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")
	createCourse(t, f.db, s.ID, "Algorithms 101", model.LevelBeginner)
	createCourse(t, f.db, s.ID, "Sorting Basics", model.LevelBeginner)
	createCourse(t, f.db, s.ID, "Graphs", model.LevelIntermediate)

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)
	_, err = f.assessment.Submit(ctx, 1, started.SessionID, answerAll(started.Questions, 2))
	require.NoError(t, err)

	recs, err := f.recommendation.RecommendCourses(ctx, 1, 1)
	require.NoError(t, err)

	assert.False(t, recs.Fallback)
	require.NotNil(t, recs.SessionID)
	assert.Equal(t, started.SessionID, *recs.SessionID)
	require.Len(t, recs.Recommendations, 1)
	r := recs.Recommendations[0]
	assert.Equal(t, PerformanceWeak, r.PerformanceLevel)
	assert.Equal(t, 20.0, r.PercentCorrect)
	require.Len(t, r.RecommendedCourses, 1)
	assert.Equal(t, "Algorithms 101", r.RecommendedCourses[0].Title)
	assert.NotEmpty(t, r.Weakness)
}
