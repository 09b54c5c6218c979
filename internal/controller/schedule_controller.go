package controller

import (
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ScheduleController struct {
	Service *service.ScheduleService
}

func NewScheduleController(svc *service.ScheduleService) *ScheduleController {
	return &ScheduleController{Service: svc}
}

// @Summary 日程事件
// @Description 培训截止日期、学习路径、即将开课的课程以及自定义事件
// @Tags 日程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CalendarEvent}
// @Router /api/schedule [get]
func (c *ScheduleController) ListEvents(ctx *gin.Context) {
	events, err := c.Service.Events(ctx.Request.Context(), util.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, events)
}

// @Summary 添加自定义事件
// @Tags 日程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.EventRequest true "事件"
// @Success 201 {object} util.Response{data=model.CalendarEvent}
// @Router /api/schedule/events [post]
func (c *ScheduleController) AddEvent(ctx *gin.Context) {
	var req service.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	event, err := c.Service.AddCustomEvent(ctx.Request.Context(), util.GetPrincipal(ctx), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// @Summary 删除自定义事件
// @Tags 日程
// @Produce json
// @Security ApiKeyAuth
// @Param eventId path string true "事件ID"
// @Success 200 {object} util.Response
// @Router /api/schedule/events/{eventId} [delete]
func (c *ScheduleController) DeleteEvent(ctx *gin.Context) {
	if err := c.Service.DeleteCustomEvent(ctx.Request.Context(), util.GetPrincipal(ctx), ctx.Param("eventId")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
