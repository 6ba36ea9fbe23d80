package controller

import (
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 管理后台：运行参数、课程层级、题库和激励短句维护
type AdminController struct {
	SettingRepo    *repository.AppSettingRepository
	SubjectRepo    *repository.SubjectRepository
	QuestionRepo   *repository.ExerciseQuestionRepository
	MotivationRepo *repository.MotivationRepository
}

func NewAdminController(
	settingRepo *repository.AppSettingRepository,
	subjectRepo *repository.SubjectRepository,
	questionRepo *repository.ExerciseQuestionRepository,
	motivationRepo *repository.MotivationRepository,
) *AdminController {
	return &AdminController{
		SettingRepo:    settingRepo,
		SubjectRepo:    subjectRepo,
		QuestionRepo:   questionRepo,
		MotivationRepo: motivationRepo,
	}
}

// GetSetting godoc
// @Summary 读取运行参数
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   key path string true "参数名"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "参数未设置"
// @Router /api/admin/settings/{key} [get]
func (c *AdminController) GetSetting(ctx *gin.Context) {
	key := ctx.Param("key")
	value, err := c.SettingRepo.Get(ctx.Request.Context(), key)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if value == nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"key": key, "value": *value})
}

type SettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SetSetting godoc
// @Summary 写入运行参数
// @Description 如 intensive_window_days、theoretical_threshold_days
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   key path string true "参数名"
// @Param   body body SettingRequest true "参数值"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/settings/{key} [put]
func (c *AdminController) SetSetting(ctx *gin.Context) {
	var req SettingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.SettingRepo.Set(ctx.Request.Context(), ctx.Param("key"), req.Value); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SubjectRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

// CreateSubject godoc
// @Summary 新建学科
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubjectRequest true "学科信息"
// @Success 201 {object} util.Response{data=model.Subject} "创建成功"
// @Router /api/admin/subjects [post]
func (c *AdminController) CreateSubject(ctx *gin.Context) {
	var req SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject := &model.Subject{
		Name:    req.Name,
		Color:   req.Color,
		Order:   req.Order,
		Enabled: true,
	}
	if err := c.SubjectRepo.CreateSubject(subject); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

type TopicRequest struct {
	SubjectID uint   `json:"subjectId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Order     int    `json:"order"`
}

// CreateTopic godoc
// @Summary 新建主题
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body TopicRequest true "主题信息"
// @Success 201 {object} util.Response{data=model.Topic} "创建成功"
// @Router /api/admin/topics [post]
func (c *AdminController) CreateTopic(ctx *gin.Context) {
	var req TopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic := &model.Topic{
		SubjectID: req.SubjectID,
		Name:      req.Name,
		Order:     req.Order,
	}
	if err := c.SubjectRepo.CreateTopic(topic); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

type SubtopicRequest struct {
	TopicID    uint    `json:"topicId" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Order      int     `json:"order"`
	ExamWeight float64 `json:"examWeight"`
}

// CreateSubtopic godoc
// @Summary 新建子主题
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubtopicRequest true "子主题信息"
// @Success 201 {object} util.Response{data=model.Subtopic} "创建成功"
// @Router /api/admin/subtopics [post]
func (c *AdminController) CreateSubtopic(ctx *gin.Context) {
	var req SubtopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subtopic := &model.Subtopic{
		TopicID:    req.TopicID,
		Name:       req.Name,
		Order:      req.Order,
		ExamWeight: req.ExamWeight,
	}
	if subtopic.ExamWeight == 0 {
		subtopic.ExamWeight = 1
	}
	if err := c.SubjectRepo.CreateSubtopic(subtopic); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, subtopic)
}

// DeleteSubject godoc
// @Summary 删除学科
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "学科ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/subjects/{id} [delete]
func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	if err := c.SubjectRepo.DeleteSubject(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type QuestionRequest struct {
	SubtopicID  uint   `json:"subtopicId" binding:"required"`
	Statement   string `json:"statement" binding:"required"`
	OptionA     string `json:"optionA" binding:"required"`
	OptionB     string `json:"optionB" binding:"required"`
	OptionC     string `json:"optionC"`
	OptionD     string `json:"optionD"`
	OptionE     string `json:"optionE"`
	Answer      string `json:"answer" binding:"required,oneof=A B C D E"`
	Explanation string `json:"explanation"`
	Difficulty  int    `json:"difficulty" binding:"omitempty,min=1,max=5"`
}

// CreateQuestion godoc
// @Summary 新建练习题
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.ExerciseQuestion} "创建成功"
// @Router /api/admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.ExerciseQuestion{
		SubtopicID:  req.SubtopicID,
		Statement:   req.Statement,
		OptionA:     req.OptionA,
		OptionB:     req.OptionB,
		OptionC:     req.OptionC,
		OptionD:     req.OptionD,
		OptionE:     req.OptionE,
		Answer:      req.Answer,
		Explanation: req.Explanation,
		Difficulty:  req.Difficulty,
		Enabled:     true,
	}
	if question.Difficulty == 0 {
		question.Difficulty = 2
	}
	if err := c.QuestionRepo.Create(question); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListQuestions godoc
// @Summary 按子主题分页查询题目
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   subtopicId query int true "子主题ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/admin/questions [get]
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	subtopicID := util.MustParseUint(ctx.Query("subtopicId"))
	if subtopicID == 0 {
		util.BadRequest(ctx, "缺少 subtopicId")
		return
	}

	page := 1
	limit := 20
	if raw := ctx.Query("page"); raw != "" {
		page = int(util.MustParseUint(raw))
		if page < 1 {
			page = 1
		}
	}
	if raw := ctx.Query("limit"); raw != "" {
		limit = int(util.MustParseUint(raw))
		if limit < 1 || limit > 100 {
			limit = 20
		}
	}

	questions, total, err := c.QuestionRepo.FindBySubtopicWithPagination(subtopicID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{
		"items": questions,
		"total": total,
		"page":  page,
	})
}

// ListMotivations godoc
// @Summary 激励短句列表
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Motivation} "成功"
// @Router /api/admin/motivations [get]
func (c *AdminController) ListMotivations(ctx *gin.Context) {
	motivations, err := c.MotivationRepo.FindAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, motivations)
}

type MotivationRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateMotivation godoc
// @Summary 新建激励短句
// @Tags 管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body MotivationRequest true "短句内容"
// @Success 201 {object} util.Response{data=model.Motivation} "创建成功"
// @Router /api/admin/motivations [post]
func (c *AdminController) CreateMotivation(ctx *gin.Context) {
	var req MotivationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	motivation := &model.Motivation{Content: req.Content, IsEnabled: true}
	if err := c.MotivationRepo.Create(motivation); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, motivation)
}

// SwitchMotivation godoc
// @Summary 切换当前激励短句
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "短句ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/motivations/{id}/switch [post]
func (c *AdminController) SwitchMotivation(ctx *gin.Context) {
	if err := c.MotivationRepo.Switch(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteQuestion godoc
// @Summary 删除练习题
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionRepo.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
