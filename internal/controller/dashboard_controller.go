package controller

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary 学习主面板
// @Description 今日任务、考试倒计时、最弱子主题、连续签到与经验值
// @Tags 面板
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard} "成功"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetUserDashboard(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// GetTodayTasks godoc
// @Summary 今日任务列表
// @Tags 面板
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudyTask} "成功"
// @Router /api/dashboard/today-tasks [get]
func (c *DashboardController) GetTodayTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.DashboardService.GetTodayTasks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

// UpdateTaskStatus godoc
// @Summary 更新任务状态
// @Tags 面板
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body TaskStatusRequest true "目标状态"
// @Success 200 {object} util.Response "成功"
// @Router /api/dashboard/tasks/{id} [patch]
func (c *DashboardController) UpdateTaskStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	taskID := util.MustParseUint(ctx.Param("id"))
	if err := c.DashboardService.UpdateTaskStatus(claims.UserID, taskID, model.TaskStatus(req.Status)); err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
