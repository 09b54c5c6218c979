package controller

import (
	"bytes"
	"net/http"
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *service.ReportService
}

func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{Service: svc}
}

// @Summary 报表
// @Tags 报表
// @Produce json
// @Security ApiKeyAuth
// @Param period query string false "week 或 month，缺省为全部"
// @Success 200 {object} util.Response{data=service.Report}
// @Router /api/admin/reports [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	report, err := c.Service.Build(ctx.Query("period"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 导出报表 CSV
// @Tags 报表
// @Produce text/csv
// @Security ApiKeyAuth
// @Param period query string false "week 或 month"
// @Success 200 {string} string "Training,Status,Completion"
// @Router /api/admin/reports/export [get]
func (c *ReportController) ExportCSV(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.Service.ExportCSV(&buf, ctx.Query("period")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="training-reports.csv"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
