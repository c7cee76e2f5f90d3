package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/util"
	"skillcheck_backend/pkg/logger"
	"skillcheck_backend/pkg/monitoring"
	"skillcheck_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssessmentService drives a session through active -> submitted and
// projects results from the stored grades.
type AssessmentService struct {
	Subjects  *repository.SubjectRepository
	Questions *repository.QuestionRepository
	Repo      *repository.AssessmentRepository
	Cache     *repository.ResultCache
	Sampler   *StratifiedSampler
	Scoring   *ScoringEngine
	Levels    *LevelMapper
	Cfg       config.AssessmentConfig
}

func NewAssessmentService(
	subjects *repository.SubjectRepository,
	questions *repository.QuestionRepository,
	repo *repository.AssessmentRepository,
	cache *repository.ResultCache,
	sampler *StratifiedSampler,
	scoring *ScoringEngine,
	levels *LevelMapper,
	cfg config.AssessmentConfig,
) *AssessmentService {
	return &AssessmentService{
		Subjects:  subjects,
		Questions: questions,
		Repo:      repo,
		Cache:     cache,
		Sampler:   sampler,
		Scoring:   scoring,
		Levels:    levels,
		Cfg:       cfg,
	}
}

// QuestionView is a question as shown to the learner, without the answer key.
type QuestionView struct {
	ID         uint                     `json:"id"`
	SubjectID  uint                     `json:"subjectId"`
	Text       string                   `json:"text"`
	Options    []string                 `json:"options"`
	Difficulty model.QuestionDifficulty `json:"difficulty"`
}

type StartResult struct {
	SessionID uint           `json:"sessionId"`
	Questions []QuestionView `json:"questions"`
}

type AnswerInput struct {
	QuestionID    uint `json:"questionId" binding:"required"`
	SelectedIndex int  `json:"selectedIndex" binding:"min=0"`
}

type SubjectResult struct {
	SubjectID          uint              `json:"subjectId"`
	SubjectName        string            `json:"subjectName"`
	PercentCorrect     float64           `json:"percentCorrect"`
	WeightedScore      int               `json:"weightedScore"`
	Level              model.CourseLevel `json:"level"`
	Weaknesses         []string          `json:"weaknesses"`
	RecommendedCourses []model.Course    `json:"recommendedCourses"`
}

type AssessmentResult struct {
	SessionID   uint                   `json:"sessionId"`
	Status      model.AssessmentStatus `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
	SubmittedAt *time.Time             `json:"submittedAt,omitempty"`
	Results     []SubjectResult        `json:"results"`
}

// ScoredSubject pairs a subject with its score in one session.
type ScoredSubject struct {
	Subject model.Subject
	Score   SubjectScore
}

func (s *AssessmentService) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.Subjects.ListAll(ctx)
}

func (s *AssessmentService) questionCount(n int) (int, error) {
	if n == 0 {
		return s.Cfg.DefaultQuestionsPerSubject, nil
	}
	if n < 1 || n > s.Cfg.MaxQuestionsPerSubject {
		return 0, fmt.Errorf("%w: %d not in 1..%d", util.ErrInvalidQuestionCount, n, s.Cfg.MaxQuestionsPerSubject)
	}
	return n, nil
}

// Start opens a session over subjectIDs (all subjects when empty) and samples
// its questions. No session row is written when the question set comes out empty.
func (s *AssessmentService) Start(ctx context.Context, userID uint, subjectIDs []uint, numPerSubject int) (*StartResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Start")
	defer span.End()

	n, err := s.questionCount(numPerSubject)
	if err != nil {
		return nil, err
	}

	for _, id := range subjectIDs {
		if id == 0 {
			return nil, util.ErrInvalidSubjectID
		}
	}
	ids := uniqueIDs(subjectIDs)
	if len(ids) == 0 {
		ids, err = s.Subjects.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("list subjects: %w", err)
		}
		if len(ids) == 0 {
			return nil, util.ErrNoSubjectsAvailable
		}
	}

	session := &model.AssessmentSession{
		UserID:                 userID,
		Status:                 model.AssessmentActive,
		SelectedSubjectIDs:     ids,
		NumQuestionsPerSubject: n,
	}

	questions, err := s.BuildQuestionSet(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	monitoring.SessionsStarted.Inc()
	span.SetAttributes(
		attribute.Int("assessment.session_id", int(session.ID)),
		attribute.Int("assessment.questions", len(questions)),
	)
	logger.Log.Info("Assessment started",
		zap.Uint("userId", userID),
		zap.Uint("sessionId", session.ID),
		zap.Int("subjects", len(ids)),
		zap.Int("questions", len(questions)),
	)

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:         q.ID,
			SubjectID:  q.SubjectID,
			Text:       q.Text,
			Options:    []string(q.Options),
			Difficulty: q.Difficulty,
		}
	}
	return &StartResult{SessionID: session.ID, Questions: views}, nil
}

// BuildQuestionSet samples each selected subject's pool; empty pools are skipped.
func (s *AssessmentService) BuildQuestionSet(ctx context.Context, session *model.AssessmentSession) ([]model.AssessmentQuestion, error) {
	var questions []model.AssessmentQuestion
	for _, subjectID := range session.SelectedSubjectIDs {
		pool, err := s.Questions.ListBySubject(ctx, subjectID)
		if err != nil {
			return nil, fmt.Errorf("list questions of subject %d: %w", subjectID, err)
		}
		if len(pool) == 0 {
			continue
		}
		questions = append(questions, s.Sampler.Sample(pool, session.NumQuestionsPerSubject)...)
	}
	return questions, nil
}

// Submit grades answers and closes the session. Answers to questions that do
// not exist or sit outside the selected subjects are dropped, or rejected
// with util.ErrUnknownQuestion when strict answers are configured.
func (s *AssessmentService) Submit(ctx context.Context, userID, sessionID uint, answers []AnswerInput) (result *AssessmentResult, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.Submit")
	defer span.End()
	defer func() { monitoring.Submissions.WithLabelValues(submitOutcome(err)).Inc() }()

	session, err := s.findSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsSubmitted() {
		return nil, util.ErrInvalidSessionState
	}

	// 同一题目多次作答以最后一次为准
	order := make([]uint, 0, len(answers))
	latest := make(map[uint]int, len(answers))
	for _, a := range answers {
		if _, ok := latest[a.QuestionID]; !ok {
			order = append(order, a.QuestionID)
		}
		latest[a.QuestionID] = a.SelectedIndex
	}

	questions, err := s.Questions.FindByIDs(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	selected := make(map[uint]bool, len(session.SelectedSubjectIDs))
	for _, id := range session.SelectedSubjectIDs {
		selected[id] = true
	}

	rows := make([]model.AssessmentAnswer, 0, len(order))
	skipped := 0
	for _, qid := range order {
		q, ok := questions[qid]
		if !ok || !selected[q.SubjectID] {
			if s.Cfg.StrictAnswers {
				return nil, fmt.Errorf("%w: question %d", util.ErrUnknownQuestion, qid)
			}
			skipped++
			continue
		}
		rows = append(rows, model.AssessmentAnswer{
			SessionID:     session.ID,
			QuestionID:    qid,
			SelectedIndex: latest[qid],
			IsCorrect:     q.IsCorrect(latest[qid]),
		})
	}

	now := time.Now()
	if err := s.Repo.SubmitAnswers(ctx, session.ID, rows, now); err != nil {
		if errors.Is(err, util.ErrInvalidSessionState) {
			return nil, err
		}
		return nil, fmt.Errorf("submit answers: %w", err)
	}
	session.Status = model.AssessmentSubmitted
	session.SubmittedAt = &now

	result, err = s.buildResult(ctx, session)
	if err != nil {
		return nil, err
	}
	for _, r := range result.Results {
		monitoring.SubjectPercentCorrect.Observe(r.PercentCorrect)
	}
	s.cacheResult(ctx, result)

	logger.Log.Info("Assessment submitted",
		zap.Uint("userId", userID),
		zap.Uint("sessionId", session.ID),
		zap.Int("answers", len(rows)),
		zap.Int("skipped", skipped),
	)
	return result, nil
}

// GetResults is a read-only projection of a submitted session.
func (s *AssessmentService) GetResults(ctx context.Context, userID, sessionID uint) (*AssessmentResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.GetResults")
	defer span.End()

	session, err := s.findSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsSubmitted() {
		// 仍是同一类状态错误，但对外按请求错误返回
		return nil, fmt.Errorf("%w: %w", util.ErrSessionNotCompleted, util.ErrInvalidSessionState)
	}
	return s.resultsFor(ctx, session)
}

// LatestResults projects the user's most recent submitted session.
func (s *AssessmentService) LatestResults(ctx context.Context, userID uint) (*AssessmentResult, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AssessmentService.LatestResults")
	defer span.End()

	session, err := s.LatestSubmitted(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resultsFor(ctx, session)
}

// LatestSubmitted returns util.ErrNoAssessmentFound when the user never submitted.
func (s *AssessmentService) LatestSubmitted(ctx context.Context, userID uint) (*model.AssessmentSession, error) {
	session, err := s.Repo.FindLatestSubmitted(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNoAssessmentFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest session: %w", err)
	}
	return session, nil
}

// ScoreSession scores a session per selected subject that still exists.
func (s *AssessmentService) ScoreSession(ctx context.Context, session *model.AssessmentSession) ([]ScoredSubject, error) {
	graded, err := s.Repo.ListGradedAnswers(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	subjects, err := s.Subjects.FindByIDs(ctx, session.SelectedSubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}

	scores := s.Scoring.Score(session.SelectedSubjectIDs, graded)
	out := make([]ScoredSubject, 0, len(scores))
	for _, score := range scores {
		subject, ok := subjects[score.SubjectID]
		if !ok {
			continue
		}
		out = append(out, ScoredSubject{Subject: subject, Score: score})
	}
	return out, nil
}

func (s *AssessmentService) findSession(ctx context.Context, userID, sessionID uint) (*model.AssessmentSession, error) {
	session, err := s.Repo.FindSessionForUser(ctx, sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

func (s *AssessmentService) resultsFor(ctx context.Context, session *model.AssessmentSession) (*AssessmentResult, error) {
	var cached AssessmentResult
	hit, err := s.Cache.Get(ctx, session.ID, &cached)
	if err != nil {
		logger.Log.Warn("Result cache read failed", zap.Uint("sessionId", session.ID), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	result, err := s.buildResult(ctx, session)
	if err != nil {
		return nil, err
	}
	s.cacheResult(ctx, result)
	return result, nil
}

func (s *AssessmentService) buildResult(ctx context.Context, session *model.AssessmentSession) (*AssessmentResult, error) {
	scored, err := s.ScoreSession(ctx, session)
	if err != nil {
		return nil, err
	}

	results := make([]SubjectResult, 0, len(scored))
	for _, ss := range scored {
		level := s.Levels.MapLevel(ss.Score.PercentCorrect)
		courses, err := s.Levels.ResolveCourses(ctx, ss.Subject.ID, level, 0, s.Cfg.FallbackCourseLimit)
		if err != nil {
			return nil, err
		}
		results = append(results, SubjectResult{
			SubjectID:          ss.Subject.ID,
			SubjectName:        ss.Subject.Name,
			PercentCorrect:     ss.Score.PercentCorrect,
			WeightedScore:      ss.Score.WeightedScore,
			Level:              level,
			Weaknesses:         IdentifyWeaknesses(ss.Score),
			RecommendedCourses: courses,
		})
	}

	return &AssessmentResult{
		SessionID:   session.ID,
		Status:      session.Status,
		CreatedAt:   session.CreatedAt,
		SubmittedAt: session.SubmittedAt,
		Results:     results,
	}, nil
}

func (s *AssessmentService) cacheResult(ctx context.Context, result *AssessmentResult) {
	if err := s.Cache.Set(ctx, result.SessionID, result); err != nil {
		logger.Log.Warn("Result cache write failed", zap.Uint("sessionId", result.SessionID), zap.Error(err))
	}
}

func submitOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, util.ErrInvalidSessionState):
		return "invalid_state"
	case errors.Is(err, util.ErrSessionNotFound):
		return "not_found"
	case errors.Is(err, util.ErrUnknownQuestion):
		return "unknown_question"
	default:
		return "error"
	}
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
