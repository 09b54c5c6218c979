package controller

import (
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressionController struct {
	Service *service.ProgressionService
}

func NewProgressionController(svc *service.ProgressionService) *ProgressionController {
	return &ProgressionController{Service: svc}
}

// swagger:model CompleteModuleRequest
type CompleteModuleRequest struct {
	ActiveModuleID uint `json:"activeModuleId"`
}

// @Summary 课程查看器
// @Description 返回模块的锁定状态、是否可手动完成以及上一个/下一个模块
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int true "课程ID"
// @Param activeModuleId query int false "当前选中的模块ID"
// @Success 200 {object} util.Response{data=service.CourseViewer}
// @Failure 404 {object} util.Response
// @Router /api/course-viewer [get]
func (c *ProgressionController) CourseViewer(ctx *gin.Context) {
	courseID := queryUint(ctx, "courseId")
	if courseID == 0 {
		util.BadRequest(ctx, "courseId is required")
		return
	}
	view, err := c.Service.CourseView(courseID, queryUint(ctx, "activeModuleId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 开始学习课程
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id}/start [post]
func (c *ProgressionController) StartCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.Service.StartCourse(ctx.Request.Context(), util.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 完成模块
// @Description 前置模块未完成时返回 409；视频、阅读、演示类模块必须是当前选中的模块
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Param body body CompleteModuleRequest false "当前选中的模块"
// @Success 200 {object} util.Response{data=service.CompletionResult}
// @Failure 409 {object} util.Response "模块被锁定或需要先选中"
// @Router /api/courses/{id}/modules/{moduleId}/complete [post]
func (c *ProgressionController) CompleteModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(ctx, "moduleId")
	if !ok {
		return
	}

	var req CompleteModuleRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	if req.ActiveModuleID == 0 {
		req.ActiveModuleID = queryUint(ctx, "activeModuleId")
	}

	result, err := c.Service.CompleteModule(ctx.Request.Context(), util.GetPrincipal(ctx), id, moduleID, req.ActiveModuleID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
