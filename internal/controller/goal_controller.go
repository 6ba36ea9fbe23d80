package controller

import (
	"errors"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// ListGoals godoc
// @Summary 考试目标列表
// @Tags 考试目标
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ExamGoal} "成功"
// @Router /api/exam-goals [get]
func (c *GoalController) ListGoals(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	goals, err := c.GoalService.ListGoals(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, goals)
}

// CreateGoal godoc
// @Summary 创建考试目标
// @Description 两阶段日期可选；提早规划会解锁相应徽章
// @Tags 考试目标
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ExamGoalRequest true "目标信息"
// @Success 201 {object} util.Response{data=model.ExamGoal} "创建成功"
// @Router /api/exam-goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExamGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// UpdateGoal godoc
// @Summary 更新考试目标
// @Tags 考试目标
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标ID"
// @Param   body body service.ExamGoalRequest true "目标信息"
// @Success 200 {object} util.Response{data=model.ExamGoal} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/exam-goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ExamGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(claims.UserID, util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary 删除考试目标
// @Tags 考试目标
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "目标ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/exam-goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.GoalService.DeleteGoal(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrGoalNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
