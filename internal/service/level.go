package service

import (
	"context"
	"fmt"

	"skillcheck_backend/internal/model"
)

// Performance labels used by profile course recommendations.
const (
	PerformanceWeak     = "weak"
	PerformanceModerate = "moderate"
	PerformanceStrong   = "strong"
	PerformanceUnknown  = "unknown"
)

// CourseFinder is the slice of the course repository the level mapper needs.
type CourseFinder interface {
	FindBySubjectAndLevel(ctx context.Context, subjectID uint, level model.CourseLevel, limit int) ([]model.Course, error)
	FindBySubject(ctx context.Context, subjectID uint, limit int) ([]model.Course, error)
}

// LevelMapper turns a percent score into a course level and resolves courses
// for it, walking the fallback chain when a level has no courses.
type LevelMapper struct {
	Courses CourseFinder
}

func NewLevelMapper(courses CourseFinder) *LevelMapper {
	return &LevelMapper{Courses: courses}
}

// MapLevel: <=40 beginner, <=70 intermediate, otherwise advanced.
func (m *LevelMapper) MapLevel(percent float64) model.CourseLevel {
	switch {
	case percent <= 40:
		return model.LevelBeginner
	case percent <= 70:
		return model.LevelIntermediate
	default:
		return model.LevelAdvanced
	}
}

// PerformanceLevel labels a percent score on the same thresholds as MapLevel.
func (m *LevelMapper) PerformanceLevel(percent float64) string {
	switch m.MapLevel(percent) {
	case model.LevelBeginner:
		return PerformanceWeak
	case model.LevelIntermediate:
		return PerformanceModerate
	default:
		return PerformanceStrong
	}
}

// FallbackLevel is the adjacent level tried when level has no courses.
func FallbackLevel(level model.CourseLevel) model.CourseLevel {
	if level == model.LevelIntermediate {
		return model.LevelBeginner
	}
	return model.LevelIntermediate
}

// ResolveCourses tries level, then FallbackLevel(level), then any course of
// the subject. levelLimit caps the two level lookups and anyLimit the last
// one; a limit <= 0 is unbounded. The result may be empty, never nil.
func (m *LevelMapper) ResolveCourses(ctx context.Context, subjectID uint, level model.CourseLevel, levelLimit, anyLimit int) ([]model.Course, error) {
	for _, l := range []model.CourseLevel{level, FallbackLevel(level)} {
		courses, err := m.Courses.FindBySubjectAndLevel(ctx, subjectID, l, levelLimit)
		if err != nil {
			return nil, fmt.Errorf("find %s courses: %w", l, err)
		}
		if len(courses) > 0 {
			return courses, nil
		}
	}

	courses, err := m.Courses.FindBySubject(ctx, subjectID, anyLimit)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}
