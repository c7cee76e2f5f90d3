package controller

import (
	"strconv"

	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/service"
	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	maxRecommendationLimit = 50
	defaultQuizLimit       = 3
)

type RecommendationController struct {
	Assessments *service.AssessmentService
	Service     *service.RecommendationService
	Progress    *service.ProgressService
	Config      *config.Config
}

func NewRecommendationController(
	assessments *service.AssessmentService,
	svc *service.RecommendationService,
	progress *service.ProgressService,
	cfg *config.Config,
) *RecommendationController {
	return &RecommendationController{
		Assessments: assessments,
		Service:     svc,
		Progress:    progress,
		Config:      cfg,
	}
}

type QuizRecommendationRequest struct {
	Quizzes []service.QuizCandidate `json:"quizzes" binding:"required,dive"`
	Limit   int                     `json:"limit" binding:"omitempty,min=1,max=50"`
}

// limitQuery reads ?limit=, falling back to def; out-of-range values are clamped.
func limitQuery(ctx *gin.Context, def int) int {
	n, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > maxRecommendationLimit {
		return maxRecommendationLimit
	}
	return n
}

// @Summary 最近一次测评的课程推荐
// @Description 按最近一次已提交测评的得分映射等级并推荐课程
// @Tags 推荐
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/recommendations/latest [get]
func (c *RecommendationController) Latest(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	result, err := c.Assessments.LatestResults(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 个人课程推荐
// @Description 按学科给出薄弱点、表现等级和课程，无测评记录时返回入门课程
// @Tags 推荐
// @Produce json
// @Security BearerAuth
// @Param limit query int false "每个学科的课程数量"
// @Success 200 {object} util.Response
// @Router /api/courses/recommendations/me [get]
func (c *RecommendationController) MyCourses(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	recs, err := c.Service.RecommendCourses(ctx.Request.Context(), userID, limitQuery(ctx, c.Config.Assessment.RecommendationLimit))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, recs)
}

// @Summary 话题推荐
// @Tags 推荐
// @Produce json
// @Security BearerAuth
// @Param limit query int false "数量"
// @Success 200 {object} util.Response
// @Router /api/recommendations/topics [get]
func (c *RecommendationController) Topics(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.Progress.BuildProfile(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	topics := c.Service.RecommendTopics(profile, limitQuery(ctx, c.Config.Assessment.RecommendationLimit))
	util.Success(ctx, gin.H{
		"fallback": profile == nil,
		"topics":   topics,
	})
}

// @Summary 练习推荐
// @Description 对调用方给出的候选练习排序
// @Tags 推荐
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body QuizRecommendationRequest true "候选练习"
// @Success 200 {object} util.Response
// @Router /api/recommendations/quizzes [post]
func (c *RecommendationController) Quizzes(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req QuizRecommendationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, bindErrorMessage(err))
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultQuizLimit
	}

	profile, err := c.Progress.BuildProfile(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, c.Service.RecommendQuizzes(req.Quizzes, profile, req.Limit))
}
