package service

import (
	"context"
	"testing"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSubject creates a subject with 4 easy, 4 medium and 2 hard questions.
func seedSubject(t *testing.T, f *fixture, name string) model.Subject {
	t.Helper()
	s := createSubject(t, f.db, name)
	createQuestions(t, f.db, s.ID, model.DifficultyEasy, 4)
	createQuestions(t, f.db, s.ID, model.DifficultyMedium, 4)
	createQuestions(t, f.db, s.ID, model.DifficultyHard, 2)
	return s
}

func countSessions(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.AssessmentSession{}).Count(&n).Error)
	return n
}

func TestStart_SamplesEverySubject(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	a := seedSubject(t, f, "Algorithms")
	b := seedSubject(t, f, "Networks")

	res, err := f.assessment.Start(context.Background(), 7, []uint{a.ID, b.ID, a.ID}, 5)
	require.NoError(t, err)

	assert.NotZero(t, res.SessionID)
	assert.Len(t, res.Questions, 10)
	perSubject := map[uint]int{}
	for _, q := range res.Questions {
		perSubject[q.SubjectID]++
		assert.Len(t, q.Options, 2)
	}
	assert.Equal(t, map[uint]int{a.ID: 5, b.ID: 5}, perSubject)

	var session model.AssessmentSession
	require.NoError(t, f.db.First(&session, res.SessionID).Error)
	assert.Equal(t, model.AssessmentActive, session.Status)
	assert.Equal(t, uint(7), session.UserID)
	assert.Equal(t, []uint{a.ID, b.ID}, []uint(session.SelectedSubjectIDs))
	assert.Nil(t, session.SubmittedAt)
}

func TestStart_DefaultsToAllSubjectsAndConfiguredCount(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	seedSubject(t, f, "Algorithms")
	seedSubject(t, f, "Database")

	res, err := f.assessment.Start(context.Background(), 1, nil, 0)
	require.NoError(t, err)
	assert.Len(t, res.Questions, 20)
}

func TestStart_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no subjects", func(t *testing.T) {
		f := newFixture(t, testAssessmentConfig())
		_, err := f.assessment.Start(ctx, 1, nil, 0)
		assert.ErrorIs(t, err, util.ErrNoSubjectsAvailable)
	})

	t.Run("no questions writes no session", func(t *testing.T) {
		f := newFixture(t, testAssessmentConfig())
		s := createSubject(t, f.db, "Empty")
		_, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 0)
		assert.ErrorIs(t, err, util.ErrNoQuestionsAvailable)
		assert.Zero(t, countSessions(t, f))
	})

	t.Run("unknown subject ids", func(t *testing.T) {
		f := newFixture(t, testAssessmentConfig())
		_, err := f.assessment.Start(ctx, 1, []uint{999}, 0)
		assert.ErrorIs(t, err, util.ErrNoQuestionsAvailable)
	})

	t.Run("zero subject id does not widen to all subjects", func(t *testing.T) {
		f := newFixture(t, testAssessmentConfig())
		a := seedSubject(t, f, "Algorithms")
		seedSubject(t, f, "Networks")
		for _, ids := range [][]uint{{0}, {a.ID, 0}} {
			_, err := f.assessment.Start(ctx, 1, ids, 3)
			assert.ErrorIs(t, err, util.ErrInvalidSubjectID)
		}
		assert.Zero(t, countSessions(t, f))
	})

	t.Run("count out of range", func(t *testing.T) {
		f := newFixture(t, testAssessmentConfig())
		seedSubject(t, f, "Algorithms")
		for _, n := range []int{-1, 51} {
			_, err := f.assessment.Start(ctx, 1, nil, n)
			assert.ErrorIs(t, err, util.ErrInvalidQuestionCount)
		}
		assert.Zero(t, countSessions(t, f))
	})
}

func TestSubmit_GradesAndRecommends(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")
	createCourse(t, f.db, s.ID, "Graph Algorithms", model.LevelIntermediate)
	createCourse(t, f.db, s.ID, "Algorithms 101", model.LevelBeginner)

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)

	res, err := f.assessment.Submit(ctx, 1, started.SessionID, answerAll(started.Questions, 7))
	require.NoError(t, err)

	assert.Equal(t, model.AssessmentSubmitted, res.Status)
	require.NotNil(t, res.SubmittedAt)
	require.Len(t, res.Results, 1)
	r := res.Results[0]
	assert.Equal(t, "Algorithms", r.SubjectName)
	assert.Equal(t, 70.0, r.PercentCorrect)
	assert.Equal(t, model.LevelIntermediate, r.Level)
	require.Len(t, r.RecommendedCourses, 1)
	assert.Equal(t, "Graph Algorithms", r.RecommendedCourses[0].Title)
	assert.NotContains(t, r.Weaknesses, WeaknessNone)

	var session model.AssessmentSession
	require.NoError(t, f.db.First(&session, started.SessionID).Error)
	assert.Equal(t, model.AssessmentSubmitted, session.Status)
	assert.NotNil(t, session.SubmittedAt)

	var answers int64
	require.NoError(t, f.db.Model(&model.AssessmentAnswer{}).Where("session_id = ?", session.ID).Count(&answers).Error)
	assert.Equal(t, int64(10), answers)
}

func TestSubmit_TwiceIsInvalidState(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)
	first, err := f.assessment.Submit(ctx, 1, started.SessionID, answerAll(started.Questions, 10))
	require.NoError(t, err)

	_, err = f.assessment.Submit(ctx, 1, started.SessionID, answerAll(started.Questions, 0))
	assert.ErrorIs(t, err, util.ErrInvalidSessionState)

	// 第二次提交不能改写成绩
	again, err := f.assessment.GetResults(ctx, 1, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first.Results, again.Results)
	assert.Equal(t, 100.0, again.Results[0].PercentCorrect)
}

func TestSubmit_ForeignOrMissingSession(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)

	_, err = f.assessment.Submit(ctx, 2, started.SessionID, answerAll(started.Questions, 10))
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	_, err = f.assessment.Submit(ctx, 1, started.SessionID+100, nil)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	_, err = f.assessment.GetResults(ctx, 2, started.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestSubmit_UnknownAnswersAreSkipped(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")
	other := seedSubject(t, f, "Networks")
	var foreign model.AssessmentQuestion
	require.NoError(t, f.db.Where("subject_id = ?", other.ID).First(&foreign).Error)

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 4)
	require.NoError(t, err)

	answers := answerAll(started.Questions, 4)
	answers = append(answers,
		AnswerInput{QuestionID: 99999, SelectedIndex: 0},
		AnswerInput{QuestionID: foreign.ID, SelectedIndex: 1},
	)
	res, err := f.assessment.Submit(ctx, 1, started.SessionID, answers)
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, 100.0, res.Results[0].PercentCorrect)
	assert.Equal(t, []string{WeaknessNone}, res.Results[0].Weaknesses)
}

func TestSubmit_StrictModeRejectsUnknownAnswers(t *testing.T) {
	cfg := testAssessmentConfig()
	cfg.StrictAnswers = true
	f := newFixture(t, cfg)
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 4)
	require.NoError(t, err)

	answers := append(answerAll(started.Questions, 4), AnswerInput{QuestionID: 99999})
	_, err = f.assessment.Submit(ctx, 1, started.SessionID, answers)
	assert.ErrorIs(t, err, util.ErrUnknownQuestion)

	var session model.AssessmentSession
	require.NoError(t, f.db.First(&session, started.SessionID).Error)
	assert.Equal(t, model.AssessmentActive, session.Status)

	_, err = f.assessment.Submit(ctx, 1, started.SessionID, answerAll(started.Questions, 4))
	assert.NoError(t, err)
}

func TestSubmit_LastAnswerWins(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 1)
	require.NoError(t, err)
	require.Len(t, started.Questions, 1)
	qid := started.Questions[0].ID

	res, err := f.assessment.Submit(ctx, 1, started.SessionID, []AnswerInput{
		{QuestionID: qid, SelectedIndex: 1},
		{QuestionID: qid, SelectedIndex: 0},
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, 100.0, res.Results[0].PercentCorrect)
}

func TestSubmit_NoAnswersYieldsEmptyResults(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 4)
	require.NoError(t, err)

	res, err := f.assessment.Submit(ctx, 1, started.SessionID, nil)
	require.NoError(t, err)
	assert.Equal(t, model.AssessmentSubmitted, res.Status)
	assert.Empty(t, res.Results)
}

func TestGetResults(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	started, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)

	_, err = f.assessment.GetResults(ctx, 1, started.SessionID)
	assert.ErrorIs(t, err, util.ErrInvalidSessionState)
	assert.ErrorIs(t, err, util.ErrSessionNotCompleted)

	submitted, err := f.assessment.Submit(ctx, 1, started.SessionID, answerAll(started.Questions, 3))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := f.assessment.GetResults(ctx, 1, started.SessionID)
		require.NoError(t, err)
		assert.Equal(t, submitted.Results, got.Results)
		assert.Equal(t, model.LevelBeginner, got.Results[0].Level)
	}
}

func TestLatestResults(t *testing.T) {
	f := newFixture(t, testAssessmentConfig())
	ctx := context.Background()
	s := seedSubject(t, f, "Algorithms")

	_, err := f.assessment.LatestResults(ctx, 1)
	assert.ErrorIs(t, err, util.ErrNoAssessmentFound)

	first, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)
	_, err = f.assessment.Submit(ctx, 1, first.SessionID, answerAll(first.Questions, 2))
	require.NoError(t, err)

	second, err := f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)
	_, err = f.assessment.Submit(ctx, 1, second.SessionID, answerAll(second.Questions, 9))
	require.NoError(t, err)

	// 仍在进行中的测评不算
	_, err = f.assessment.Start(ctx, 1, []uint{s.ID}, 10)
	require.NoError(t, err)

	latest, err := f.assessment.LatestResults(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, second.SessionID, latest.SessionID)
	assert.Equal(t, 90.0, latest.Results[0].PercentCorrect)

	_, err = f.assessment.LatestResults(ctx, 2)
	assert.ErrorIs(t, err, util.ErrNoAssessmentFound)
}

func TestUniqueIDs(t *testing.T) {
	assert.Nil(t, uniqueIDs(nil))
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 1, 3, 2, 1}))
}
