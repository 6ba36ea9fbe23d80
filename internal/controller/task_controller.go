package controller

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// ListTasks godoc
// @Summary 学习计划任务列表
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudyTask} "成功"
// @Router /api/study-plan/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.TaskService.ListTasks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// CreateTask godoc
// @Summary 创建学习任务
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TaskRequest true "任务信息"
// @Success 201 {object} util.Response{data=model.StudyTask} "创建成功"
// @Router /api/study-plan/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.CreateTask(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, task)
}

// UpdateTask godoc
// @Summary 更新学习任务
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body service.TaskRequest true "任务信息"
// @Success 200 {object} util.Response{data=model.StudyTask} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/study-plan/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.UpdateTask(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, task)
}

// UpdateTaskStatus godoc
// @Summary 更新任务状态
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Param   body body TaskStatusRequest true "目标状态"
// @Success 200 {object} util.Response "成功"
// @Router /api/study-plan/tasks/{id}/status [patch]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
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

	err := c.TaskService.UpdateStatus(claims.UserID, util.MustParseUint(ctx.Param("id")), model.TaskStatus(req.Status))
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DeleteTask godoc
// @Summary 删除学习任务
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "任务ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/study-plan/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TaskService.DeleteTask(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
