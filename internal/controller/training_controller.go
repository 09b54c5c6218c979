package controller

import (
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TrainingController struct {
	Service *service.TrainingService
}

func NewTrainingController(svc *service.TrainingService) *TrainingController {
	return &TrainingController{Service: svc}
}

// @Summary 培训列表
// @Tags 培训
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Training}
// @Router /api/trainings [get]
func (c *TrainingController) ListTrainings(ctx *gin.Context) {
	trainings, err := c.Service.ListTrainings()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, trainings)
}

// @Summary 创建培训
// @Tags 培训管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TrainingRequest true "培训信息"
// @Success 201 {object} util.Response{data=model.Training}
// @Router /api/admin/trainings [post]
func (c *TrainingController) CreateTraining(ctx *gin.Context) {
	var req service.TrainingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	training, err := c.Service.CreateTraining(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, training)
}

// @Summary 更新培训
// @Tags 培训管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "培训ID"
// @Param body body service.TrainingRequest true "培训信息"
// @Success 200 {object} util.Response{data=model.Training}
// @Router /api/admin/trainings/{id} [put]
func (c *TrainingController) UpdateTraining(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.TrainingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	training, err := c.Service.UpdateTraining(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, training)
}

// @Summary 删除培训
// @Tags 培训管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "培训ID"
// @Success 200 {object} util.Response
// @Router /api/admin/trainings/{id} [delete]
func (c *TrainingController) DeleteTraining(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteTraining(id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
