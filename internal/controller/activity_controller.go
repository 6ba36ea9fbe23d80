package controller

import (
	"errors"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ActivityController struct {
	ActivityService *service.ActivityService
}

func NewActivityController(activityService *service.ActivityService) *ActivityController {
	return &ActivityController{ActivityService: activityService}
}

// ListWeek godoc
// @Summary 本周计划活动
// @Description 返回 anchor 参数（缺省今天）所在周（周一开始）的活动
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   anchor query string false "基准日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=[]model.StudyActivity} "成功"
// @Router /api/study-plan/activities [get]
func (c *ActivityController) ListWeek(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	anchor := time.Now()
	if raw := ctx.Query("anchor"); raw != "" {
		parsed, err := time.ParseInLocation(util.DateFormat, raw, time.Local)
		if err != nil {
			util.BadRequest(ctx, "anchor 日期格式应为 YYYY-MM-DD")
			return
		}
		anchor = parsed
	}

	activities, err := c.ActivityService.ListWeek(claims.UserID, anchor)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, activities)
}

// CreateActivity godoc
// @Summary 创建计划活动
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ActivityRequest true "活动信息"
// @Success 201 {object} util.Response{data=model.StudyActivity} "创建成功"
// @Router /api/study-plan/activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.ActivityService.CreateActivity(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, activity)
}

type CompleteActivityRequest struct {
	DurationMinutes int `json:"durationMinutes" binding:"min=0"`
}

// CompleteActivity godoc
// @Summary 完成计划活动
// @Description 标记完成并记录用时，完成的活动参与复习推荐
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Param   body body CompleteActivityRequest false "用时"
// @Success 200 {object} util.Response "成功"
// @Router /api/study-plan/activities/{id}/complete [post]
func (c *ActivityController) CompleteActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ActivityService.CompleteActivity(claims.UserID, util.MustParseUint(ctx.Param("id")), req.DurationMinutes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// DeleteActivity godoc
// @Summary 删除计划活动
// @Tags 学习计划
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/study-plan/activities/{id} [delete]
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ActivityService.DeleteActivity(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
