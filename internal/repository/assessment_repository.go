package repository

import (
	"context"
	"time"

	"skillcheck_backend/internal/model"
	"skillcheck_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// GradedAnswer is a stored answer joined with the question facts scoring needs.
type GradedAnswer struct {
	SessionID     uint
	QuestionID    uint
	SubjectID     uint
	Difficulty    model.QuestionDifficulty
	SelectedIndex int
	IsCorrect     bool
}

func (r *AssessmentRepository) CreateSession(ctx context.Context, session *model.AssessmentSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

// FindSessionForUser returns gorm.ErrRecordNotFound for foreign sessions as well.
func (r *AssessmentRepository) FindSessionForUser(ctx context.Context, sessionID, userID uint) (*model.AssessmentSession, error) {
	var s model.AssessmentSession
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindLatestSubmitted 查找用户最近一次已提交的测评
func (r *AssessmentRepository) FindLatestSubmitted(ctx context.Context, userID uint) (*model.AssessmentSession, error) {
	var s model.AssessmentSession
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.AssessmentSubmitted).
		Order("created_at desc, id desc").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SubmitAnswers upserts the graded answers and flips the session to submitted
// in one transaction. The flip only matches an active row, so a second
// submission loses the race with util.ErrInvalidSessionState and nothing is
// written.
func (r *AssessmentRepository) SubmitAnswers(ctx context.Context, sessionID uint, answers []model.AssessmentAnswer, submittedAt time.Time) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(answers) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"selected_index", "is_correct"}),
			}).Create(&answers).Error
			if err != nil {
				return err
			}
		}

		res := tx.Model(&model.AssessmentSession{}).
			Where("id = ? AND status = ?", sessionID, model.AssessmentActive).
			Updates(map[string]interface{}{
				"status":       model.AssessmentSubmitted,
				"submitted_at": submittedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrInvalidSessionState
		}
		return nil
	})
}

func (r *AssessmentRepository) ListAnswers(ctx context.Context, sessionID uint) ([]model.AssessmentAnswer, error) {
	var answers []model.AssessmentAnswer
	err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Order("id asc").Find(&answers).Error
	return answers, err
}

// ListGradedAnswers joins a session's answers with their questions.
// Soft-deleted questions are kept since the stored grade is final.
func (r *AssessmentRepository) ListGradedAnswers(ctx context.Context, sessionID uint) ([]GradedAnswer, error) {
	var rows []GradedAnswer
	err := r.DB.WithContext(ctx).
		Table("assessment_answers AS a").
		Select("a.session_id, a.question_id, q.subject_id, q.difficulty, a.selected_index, a.is_correct").
		Joins("JOIN assessment_questions AS q ON q.id = a.question_id").
		Where("a.session_id = ?", sessionID).
		Order("a.id asc").
		Scan(&rows).Error
	return rows, err
}

// ListUserGradedAnswers returns every graded answer across the user's submitted sessions.
func (r *AssessmentRepository) ListUserGradedAnswers(ctx context.Context, userID uint) ([]GradedAnswer, error) {
	var rows []GradedAnswer
	err := r.DB.WithContext(ctx).
		Table("assessment_answers AS a").
		Select("a.session_id, a.question_id, q.subject_id, q.difficulty, a.selected_index, a.is_correct").
		Joins("JOIN assessment_questions AS q ON q.id = a.question_id").
		Joins("JOIN assessment_sessions AS s ON s.id = a.session_id").
		Where("s.user_id = ? AND s.status = ? AND s.deleted_at IS NULL", userID, model.AssessmentSubmitted).
		Order("a.id asc").
		Scan(&rows).Error
	return rows, err
}
