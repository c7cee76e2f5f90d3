package service

import (
	"context"
	"math/rand"
	"testing"

	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(database.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func testAssessmentConfig() config.AssessmentConfig {
	return config.AssessmentConfig{
		DefaultQuestionsPerSubject: 10,
		MaxQuestionsPerSubject:     50,
		FallbackCourseLimit:        3,
		RecommendationLimit:        5,
	}
}

// fixture bundles the services over one database.
type fixture struct {
	db             *gorm.DB
	assessment     *AssessmentService
	recommendation *RecommendationService
	progress       *ProgressService
	adaptive       *AdaptiveService
}

func newFixture(t *testing.T, cfg config.AssessmentConfig) *fixture {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, database.SeedTopicFeatures(db))

	subjects := repository.NewSubjectRepository(db)
	questions := repository.NewQuestionRepository(db)
	courses := repository.NewCourseRepository(db)
	assessments := repository.NewAssessmentRepository(db)
	levels := NewLevelMapper(courses)

	catalog, err := LoadTopicCatalog(context.Background(), repository.NewTopicRepository(db))
	require.NoError(t, err)

	f := &fixture{db: db}
	f.assessment = NewAssessmentService(
		subjects, questions, assessments,
		repository.NewResultCache(nil, 0),
		NewStratifiedSampler(rand.New(rand.NewSource(42))),
		NewScoringEngine(),
		levels,
		cfg,
	)
	f.recommendation = NewRecommendationService(catalog, f.assessment, subjects, courses, levels)
	f.progress = NewProgressService(assessments, subjects)
	f.adaptive = NewAdaptiveService(subjects, questions, f.progress)
	return f
}

func createSubject(t *testing.T, db *gorm.DB, name string) model.Subject {
	t.Helper()
	s := model.Subject{Name: name}
	require.NoError(t, db.Create(&s).Error)
	return s
}

// createQuestions adds count questions of one difficulty; option 0 is always correct.
func createQuestions(t *testing.T, db *gorm.DB, subjectID uint, d model.QuestionDifficulty, count int) []model.AssessmentQuestion {
	t.Helper()
	qs := make([]model.AssessmentQuestion, count)
	for i := range qs {
		qs[i] = model.AssessmentQuestion{
			SubjectID:    subjectID,
			Text:         string(d) + " question",
			Options:      datatypes.JSONSlice[string]{"right", "wrong"},
			CorrectIndex: 0,
			Difficulty:   d,
		}
		require.NoError(t, db.Create(&qs[i]).Error)
	}
	return qs
}

func createCourse(t *testing.T, db *gorm.DB, subjectID uint, title string, level model.CourseLevel) model.Course {
	t.Helper()
	c := model.Course{SubjectID: subjectID, Title: title, Level: level}
	require.NoError(t, db.Create(&c).Error)
	return c
}

// answerAll answers every question, getting the first correct ones right.
func answerAll(questions []QuestionView, correct int) []AnswerInput {
	answers := make([]AnswerInput, len(questions))
	for i, q := range questions {
		sel := 1
		if i < correct {
			sel = 0
		}
		answers[i] = AnswerInput{QuestionID: q.ID, SelectedIndex: sel}
	}
	return answers
}
