package controller

import (
	"errors"
	"io"

	"skillcheck_backend/internal/service"
	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

type StartAssessmentRequest struct {
	SubjectIDs             []uint `json:"subjectIds" binding:"omitempty,dive,min=1"`
	NumQuestionsPerSubject int    `json:"numQuestionsPerSubject" binding:"omitempty,min=1,max=50"`
}

type SubmitAssessmentRequest struct {
	Answers []service.AnswerInput `json:"answers" binding:"required,dive"`
}

// @Summary 开始测评
// @Description 按难度分层抽题，subjectIds 为空时覆盖全部学科
// @Tags 学前测试评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body StartAssessmentRequest false "测评参数"
// @Success 201 {object} util.Response
// @Router /api/assessment/start [post]
func (c *AssessmentController) StartAssessment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req StartAssessmentRequest
	// 允许空请求体
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		util.BadRequest(ctx, bindErrorMessage(err))
		return
	}

	res, err := c.Service.Start(ctx.Request.Context(), userID, req.SubjectIDs, req.NumQuestionsPerSubject)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, res)
}

// @Summary 提交测评答案
// @Tags 学前测试评估
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测评ID"
// @Param body body SubmitAssessmentRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/assessment/{id}/submit [post]
func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, bindErrorMessage(err))
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), userID, sessionID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 获取测评结果
// @Tags 学前测试评估
// @Produce json
// @Security BearerAuth
// @Param id path int true "测评ID"
// @Success 200 {object} util.Response
// @Router /api/assessment/{id}/results [get]
func (c *AssessmentController) GetResults(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.Service.GetResults(ctx.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
