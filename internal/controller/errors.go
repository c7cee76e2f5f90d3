package controller

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"skillcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps domain errors onto HTTP statuses; anything else is a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidQuestionCount),
		errors.Is(err, util.ErrUnknownQuestion),
		errors.Is(err, util.ErrInvalidSubjectID),
		errors.Is(err, util.ErrSessionNotCompleted):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrNoSubjectsAvailable),
		errors.Is(err, util.ErrNoQuestionsAvailable),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrNoAssessmentFound),
		errors.Is(err, util.ErrSubjectNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidSessionState):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// bindErrorMessage flattens binding failures into one readable line.
func bindErrorMessage(err error) string {
	if errors.Is(err, io.EOF) {
		return "request body is empty"
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", fe.Namespace(), fe.Tag()))
			}
		}
		return strings.Join(msgs, "; ")
	}
	return "invalid request body"
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	return user.UserID, true
}
