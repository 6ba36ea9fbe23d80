package controller

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PerformanceController 子主题掌握度记录的读写，目标值和权重由用户自行维护
type PerformanceController struct {
	PerformanceRepo *repository.PerformanceRepository
}

func NewPerformanceController(performanceRepo *repository.PerformanceRepository) *PerformanceController {
	return &PerformanceController{PerformanceRepo: performanceRepo}
}

// ListPerformance godoc
// @Summary 掌握度记录列表
// @Tags 掌握度
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SubtopicPerformance} "成功"
// @Router /api/performance [get]
func (c *PerformanceController) ListPerformance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	records, err := c.PerformanceRepo.FindByUserID(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

type PerformanceRequest struct {
	Goal               *float64 `json:"goal" binding:"omitempty,min=0,max=100"`
	Weight             *float64 `json:"weight" binding:"omitempty,min=0"`
	PriorityMultiplier *float64 `json:"priorityMultiplier" binding:"omitempty,min=0"`
}

// UpsertPerformance godoc
// @Summary 设置子主题的目标与权重
// @Description 未传的字段保持推荐引擎缺省值（目标100、权重1、系数1）
// @Tags 掌握度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   subtopicId path int true "子主题ID"
// @Param   body body PerformanceRequest true "目标与权重"
// @Success 200 {object} util.Response{data=model.SubtopicPerformance} "成功"
// @Router /api/performance/{subtopicId} [put]
func (c *PerformanceController) UpsertPerformance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PerformanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subtopicID := util.MustParseUint(ctx.Param("subtopicId"))
	record, err := c.PerformanceRepo.FindByUserAndSubtopic(ctx.Request.Context(), claims.UserID, subtopicID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			util.LogInternalError(ctx, err)
			return
		}
		record = &model.SubtopicPerformance{
			UserID:     claims.UserID,
			SubtopicID: subtopicID,
		}
	}

	if req.Goal != nil {
		record.Goal = req.Goal
	}
	if req.Weight != nil {
		record.Weight = req.Weight
	}
	if req.PriorityMultiplier != nil {
		record.PriorityMultiplier = req.PriorityMultiplier
	}

	if err := c.PerformanceRepo.Upsert(ctx.Request.Context(), record); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, record)
}
