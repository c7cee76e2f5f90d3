package controller

import (
	"math"
	"strconv"

	"skillcheck_backend/internal/service"
	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdaptiveController struct {
	Service  *service.AdaptiveService
	Progress *service.ProgressService
}

func NewAdaptiveController(svc *service.AdaptiveService, progress *service.ProgressService) *AdaptiveController {
	return &AdaptiveController{Service: svc, Progress: progress}
}

// @Summary 自适应难度系数
// @Tags 自适应练习
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/adaptive/difficulty [get]
func (c *AdaptiveController) Difficulty(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	profile, err := c.Progress.BuildProfile(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"multiplier": c.Service.Adjust(profile),
		"profile":    profile,
	})
}

// @Summary 选择下一道题
// @Description 按调整后的目标难度从学科题库中挑选下一题
// @Tags 自适应练习
// @Produce json
// @Security BearerAuth
// @Param id path int true "学科ID"
// @Param currentDifficulty query number false "当前难度(1-3)，默认2"
// @Param exclude query string false "已作答题目ID，逗号分隔"
// @Success 200 {object} util.Response
// @Router /api/adaptive/subjects/{id}/next-question [get]
func (c *AdaptiveController) NextQuestion(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	subjectID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	current := 0.0
	if raw := ctx.Query("currentDifficulty"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			util.BadRequest(ctx, "invalid currentDifficulty")
			return
		}
		current = v
	}

	res, err := c.Service.NextQuestion(ctx.Request.Context(), userID, subjectID, current, util.ParseUintList(ctx.Query("exclude")))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, res)
}
