package service

import (
	"context"
	"errors"
	"testing"

	"skillcheck_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCourses serves courses from memory and records the lookups made.
type stubCourses struct {
	courses []model.Course
	calls   []string
	err     error
}

func (s *stubCourses) FindBySubjectAndLevel(_ context.Context, subjectID uint, level model.CourseLevel, limit int) ([]model.Course, error) {
	s.calls = append(s.calls, string(level))
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Course
	for _, c := range s.courses {
		if c.SubjectID == subjectID && c.Level == level {
			out = append(out, c)
		}
	}
	return capCourses(out, limit), nil
}

func (s *stubCourses) FindBySubject(_ context.Context, subjectID uint, limit int) ([]model.Course, error) {
	s.calls = append(s.calls, "any")
	var out []model.Course
	for _, c := range s.courses {
		if c.SubjectID == subjectID {
			out = append(out, c)
		}
	}
	return capCourses(out, limit), nil
}

func capCourses(cs []model.Course, limit int) []model.Course {
	if limit > 0 && len(cs) > limit {
		return cs[:limit]
	}
	return cs
}

func TestFallbackLevel(t *testing.T) {
	assert.Equal(t, model.LevelIntermediate, FallbackLevel(model.LevelBeginner))
	assert.Equal(t, model.LevelIntermediate, FallbackLevel(model.LevelAdvanced))
	assert.Equal(t, model.LevelBeginner, FallbackLevel(model.LevelIntermediate))
}

func TestResolveCourses_AdvancedFallsBackToIntermediate(t *testing.T) {
	stub := &stubCourses{courses: []model.Course{
		{SubjectID: 1, Title: "Intro", Level: model.LevelIntermediate},
		{SubjectID: 1, Title: "Deeper", Level: model.LevelIntermediate},
		{SubjectID: 1, Title: "Basics", Level: model.LevelBeginner},
	}}
	m := NewLevelMapper(stub)

	level := m.MapLevel(75)
	courses, err := m.ResolveCourses(context.Background(), 1, level, 0, 3)

	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Intro", courses[0].Title)
	assert.Equal(t, "Deeper", courses[1].Title)
	assert.Equal(t, []string{"advanced", "intermediate"}, stub.calls)
}

func TestResolveCourses_IntermediateFallsBackToBeginner(t *testing.T) {
	stub := &stubCourses{courses: []model.Course{
		{SubjectID: 1, Title: "Basics", Level: model.LevelBeginner},
		{SubjectID: 1, Title: "Expert", Level: model.LevelAdvanced},
	}}

	courses, err := NewLevelMapper(stub).ResolveCourses(context.Background(), 1, model.LevelIntermediate, 0, 3)

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Basics", courses[0].Title)
}

func TestResolveCourses_AnyCourseIsCapped(t *testing.T) {
	var cs []model.Course
	for i := 0; i < 5; i++ {
		cs = append(cs, model.Course{SubjectID: 1, Title: "Expert", Level: model.LevelAdvanced})
	}
	stub := &stubCourses{courses: cs}

	courses, err := NewLevelMapper(stub).ResolveCourses(context.Background(), 1, model.LevelBeginner, 0, 3)

	require.NoError(t, err)
	assert.Len(t, courses, 3)
	assert.Equal(t, []string{"beginner", "intermediate", "any"}, stub.calls)
}

func TestResolveCourses_NoCoursesIsEmptyNotError(t *testing.T) {
	for _, level := range []model.CourseLevel{model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced} {
		courses, err := NewLevelMapper(&stubCourses{}).ResolveCourses(context.Background(), 1, level, 0, 3)
		require.NoError(t, err)
		assert.NotNil(t, courses)
		assert.Empty(t, courses)
	}
}

func TestResolveCourses_PropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := NewLevelMapper(&stubCourses{err: boom}).ResolveCourses(context.Background(), 1, model.LevelBeginner, 0, 3)
	assert.ErrorIs(t, err, boom)
}
