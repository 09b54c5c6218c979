package controller

import (
	"training_portal_backend/internal/model"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
	Media   *service.MediaService
}

func NewCourseController(svc *service.CourseService, media *service.MediaService) *CourseController {
	return &CourseController{Service: svc, Media: media}
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param theme query string false "主题 (Safety, Leadership, Compliance, Soft Skills, Technical)"
// @Param status query string false "状态 (Active, Upcoming)"
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.Service.ListCourses(repository.CourseFilter{
		Theme:  model.Theme(ctx.Query("theme")),
		Status: model.CourseStatus(ctx.Query("status")),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 课程主题列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses/themes [get]
func (c *CourseController) ListThemes(ctx *gin.Context) {
	util.Success(ctx, c.Service.Themes())
}

// @Summary 按主题分组的课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.ThemeGroup}
// @Router /api/courses/by-theme [get]
func (c *CourseController) CoursesByTheme(ctx *gin.Context) {
	groups, err := c.Service.CoursesByTheme()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, groups)
}

// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.Service.GetCourse(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 创建课程
// @Description 模块按提交顺序编号
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.Service.CreateCourse(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Description 整体替换课程及模块，未列出的模块会被删除
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.Service.UpdateCourse(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteCourse(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 添加模块
// @Tags 课程管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.ModuleInput true "模块信息"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id}/modules [post]
func (c *CourseController) AddModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.ModuleInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.Service.AddModule(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 删除模块
// @Description 剩余模块重新编号为 1..n
// @Tags 课程管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/admin/courses/{id}/modules/{moduleId} [delete]
func (c *CourseController) RemoveModule(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(ctx, "moduleId")
	if !ok {
		return
	}
	course, err := c.Service.RemoveModule(id, moduleID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 上传课程封面
// @Tags 课程管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} util.Response
// @Router /api/admin/courses/{id}/image [post]
func (c *CourseController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	url, err := c.Media.UploadCourseImage(ctx.Request.Context(), id, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"image": url})
}

// @Summary 上传模块视频
// @Description 视频时长由 ffprobe 读取并写入模块
// @Tags 课程管理
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param moduleId path int true "模块ID"
// @Param file formData file true "视频文件"
// @Success 200 {object} util.Response{data=model.CourseModule}
// @Router /api/admin/courses/{id}/modules/{moduleId}/video [post]
func (c *CourseController) UploadModuleVideo(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	moduleID, ok := pathID(ctx, "moduleId")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	module, err := c.Media.UploadModuleVideo(ctx.Request.Context(), id, moduleID, file)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}
