package controller

import (
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetSummary godoc
// @Summary 学习分析汇总
// @Description 近30天每日学习时长、按子主题的正确率和掌握度差距，结果缓存5分钟
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AnalyticsSummary} "成功"
// @Router /api/analytics/summary [get]
func (c *AnalyticsController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.AnalyticsService.GetSummary(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// GetPerformance godoc
// @Summary 掌握度视图
// @Description 按子主题的答题正确率与目标差距
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/analytics/performance [get]
func (c *AnalyticsController) GetPerformance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.AnalyticsService.GetSummary(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"subtopicAccuracy": summary.SubtopicAccuracy,
		"performanceGaps":  summary.PerformanceGaps,
	})
}

// GetActivity godoc
// @Summary 学习时长视图
// @Tags 分析
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/analytics/activity [get]
func (c *AnalyticsController) GetActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.AnalyticsService.GetSummary(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"dailyStudyTime": summary.DailyStudyTime})
}
