package controller

import (
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MotivationController struct {
	MotivationService *service.MotivationService
}

func NewMotivationController(motivationService *service.MotivationService) *MotivationController {
	return &MotivationController{MotivationService: motivationService}
}

// GetCurrent godoc
// @Summary 每日激励语
// @Tags 激励
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/motivation [get]
func (c *MotivationController) GetCurrent(ctx *gin.Context) {
	message, err := c.MotivationService.GetCurrentMotivation()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": message})
}
