package controller

import (
	"strconv"
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *service.DashboardService
	Home      *service.HomeService
}

func NewDashboardController(dashboard *service.DashboardService, home *service.HomeService) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Home: home}
}

// @Summary 仪表盘统计
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	stats, err := c.Dashboard.Stats(util.GetPrincipal(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 学员首页
// @Description 继续学习、推荐课程、入职路径与轮播分页
// @Tags 仪表盘
// @Produce json
// @Security ApiKeyAuth
// @Param viewport query int false "视口宽度(px)，决定每页卡片数" default(1024)
// @Success 200 {object} util.Response{data=service.HomeData}
// @Router /api/home [get]
func (c *DashboardController) GetHome(ctx *gin.Context) {
	width, err := strconv.Atoi(ctx.DefaultQuery("viewport", "1024"))
	if err != nil {
		util.BadRequest(ctx, "invalid viewport")
		return
	}
	data, err := c.Home.Home(width)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, data)
}
