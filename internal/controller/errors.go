package controller

import (
	"errors"
	"net/http"
	"strconv"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

var (
	badRequestErrors = []error{
		util.ErrMissingLoginFields,
		util.ErrPasswordTooShort,
		util.ErrPasswordMismatch,
		util.ErrTermsNotAccepted,
		util.ErrTitleRequired,
		util.ErrEventTitleRequired,
		util.ErrInvalidTheme,
		util.ErrInvalidStatus,
		util.ErrInvalidModuleType,
		util.ErrInvalidDate,
		util.ErrInvalidPeriod,
		util.ErrInvalidVideoExt,
		util.ErrInvalidImageExt,
		util.ErrNotVideoModule,
		util.ErrDuplicateModule,
		util.ErrCompletionOrder,
	}
	notFoundErrors = []error{
		util.ErrUserNotFound,
		util.ErrCourseNotFound,
		util.ErrModuleNotFound,
		util.ErrPathNotFound,
		util.ErrTrainingNotFound,
		util.ErrEventNotFound,
	}
	conflictErrors = []error{
		util.ErrEmailRegistered,
		util.ErrModuleLocked,
		util.ErrManualCompletionDenied,
		util.ErrEditSessionClosed,
	}
	unauthorizedErrors = []error{
		util.ErrInvalidCredentials,
		util.ErrSessionExpired,
		util.ErrUnauthorized,
	}
)

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError 业务错误映射为对应的 HTTP 状态码，其余按 500 记录
func respondError(ctx *gin.Context, err error) {
	switch {
	case matches(err, badRequestErrors):
		util.BadRequest(ctx, err.Error())
	case matches(err, notFoundErrors):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case matches(err, conflictErrors):
		util.Conflict(ctx, err.Error())
	case matches(err, unauthorizedErrors):
		util.Error(ctx, http.StatusUnauthorized, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryUint(ctx *gin.Context, name string) uint {
	return util.MustParseUint(ctx.Query(name))
}
