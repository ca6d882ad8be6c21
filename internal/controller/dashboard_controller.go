package controller

import (
	"exam_prep_backend/internal/service"
	"exam_prep_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// ListAssessments godoc
// @Summary 历史成绩列表
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "条数上限" default(20)
// @Success 200 {object} util.Response{data=[]model.Assessment} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/assessments [get]
func (c *DashboardController) ListAssessments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	assessments, err := c.DashboardService.ListAssessments(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// Stats godoc
// @Summary 成绩概览与趋势
// @Tags 仪表盘
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AssessmentStats} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/assessments/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.DashboardService.Stats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
