package controller

import (
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	Service *service.LearningPathService
}

func NewLearningPathController(svc *service.LearningPathService) *LearningPathController {
	return &LearningPathController{Service: svc}
}

// @Summary 学习路径列表
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "All, In Progress, Completed, Not Started"
// @Success 200 {object} util.Response{data=[]model.LearningPath}
// @Router /api/learning-paths [get]
func (c *LearningPathController) ListPaths(ctx *gin.Context) {
	paths, err := c.Service.ListPaths(ctx.Query("status"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, paths)
}

// @Summary 学习路径详情
// @Tags 学习路径
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "路径ID"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/learning-paths/{id} [get]
func (c *LearningPathController) GetPath(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	path, err := c.Service.GetPath(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// @Summary 创建学习路径
// @Tags 学习路径管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.PathRequest true "路径信息"
// @Success 201 {object} util.Response{data=model.LearningPath}
// @Router /api/admin/learning-paths [post]
func (c *LearningPathController) CreatePath(ctx *gin.Context) {
	var req service.PathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	path, err := c.Service.CreatePath(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, path)
}

// @Summary 更新学习路径
// @Tags 学习路径管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "路径ID"
// @Param body body service.PathRequest true "路径信息"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/admin/learning-paths/{id} [put]
func (c *LearningPathController) UpdatePath(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.PathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	path, err := c.Service.UpdatePath(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// @Summary 删除学习路径
// @Tags 学习路径管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "路径ID"
// @Success 200 {object} util.Response
// @Router /api/admin/learning-paths/{id} [delete]
func (c *LearningPathController) DeletePath(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Service.DeletePath(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 向路径添加课程
// @Tags 学习路径管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "路径ID"
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/admin/learning-paths/{id}/courses/{courseId} [post]
func (c *LearningPathController) AddCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}
	path, err := c.Service.AddCourse(id, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// @Summary 从路径移除课程
// @Tags 学习路径管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "路径ID"
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/admin/learning-paths/{id}/courses/{courseId} [delete]
func (c *LearningPathController) RemoveCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := pathID(ctx, "courseId")
	if !ok {
		return
	}
	path, err := c.Service.RemoveCourse(id, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, path)
}
