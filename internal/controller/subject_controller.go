package controller

import (
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectRepo *repository.SubjectRepository
}

func NewSubjectController(subjectRepo *repository.SubjectRepository) *SubjectController {
	return &SubjectController{SubjectRepo: subjectRepo}
}

// GetTree godoc
// @Summary 课程层级
// @Description 学科 > 主题 > 子主题 的完整层级，供选题和计划使用
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject} "成功"
// @Router /api/subjects [get]
func (c *SubjectController) GetTree(ctx *gin.Context) {
	subjects, err := c.SubjectRepo.FindAllWithTree()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}
