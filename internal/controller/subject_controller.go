package controller

import (
	"skillcheck_backend/internal/service"
	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	Service *service.AssessmentService
}

func NewSubjectController(svc *service.AssessmentService) *SubjectController {
	return &SubjectController{Service: svc}
}

// @Summary 获取学科列表
// @Tags 学科
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.Service.ListSubjects(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}
