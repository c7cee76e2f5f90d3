package util

import "errors"

var (
	ErrNoSubjectsAvailable  = errors.New("no subjects available for assessment")
	ErrNoQuestionsAvailable = errors.New("no questions available for selected subjects")
	ErrSessionNotFound      = errors.New("assessment session not found")
	ErrInvalidSessionState  = errors.New("assessment session is not in a valid state for this operation")
	ErrSessionNotCompleted  = errors.New("assessment session is not completed")
	ErrNoAssessmentFound    = errors.New("no completed assessment found for user")
	ErrUnknownQuestion      = errors.New("answer references a question outside the assessment")
	ErrInvalidQuestionCount = errors.New("questions per subject out of range")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrInvalidSubjectID     = errors.New("subject id must be positive")
)
