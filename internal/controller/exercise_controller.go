package controller

import (
	"errors"
	"studytrack_backend/internal/model"
	"studytrack_backend/internal/service"
	"studytrack_backend/internal/util"
	"studytrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ExerciseController struct {
	RecommendationService *service.RecommendationService
	ExerciseService       *service.ExerciseService
	AnalyticsService      *service.AnalyticsService
}

func NewExerciseController(
	recommendationService *service.RecommendationService,
	exerciseService *service.ExerciseService,
	analyticsService *service.AnalyticsService,
) *ExerciseController {
	return &ExerciseController{
		RecommendationService: recommendationService,
		ExerciseService:       exerciseService,
		AnalyticsService:      analyticsService,
	}
}

type RecommendationRequest struct {
	Strategy string `json:"strategy" binding:"omitempty,oneof=improvement review balanced"`
}

// Recommend godoc
// @Summary 获取下一步练习推荐
// @Description 按策略（缺省时根据考试时间分期自动决定）产出推荐的练习范围
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RecommendationRequest false "策略，可缺省"
// @Success 200 {object} util.Response{data=service.RecommendationTarget} "成功"
// @Failure 400 {object} util.Response "未知策略"
// @Failure 401 {object} util.Response "学习者档案不存在"
// @Failure 404 {object} util.Response "数据不足，无法推荐"
// @Failure 502 {object} util.Response "数据源故障"
// @Router /api/exercises/recommendation [post]
func (c *ExerciseController) Recommend(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecommendationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		util.BadRequest(ctx, err.Error())
		return
	}

	target, err := c.RecommendationService.Recommend(ctx.Request.Context(), claims.UserID, service.RecommendationStrategy(req.Strategy))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoLearnerProfile):
			util.Unauthorized(ctx)
		case errors.Is(err, util.ErrNoPerformanceData):
			util.Error(ctx, 404, "学习数据不足，先完成一些练习或计划活动")
		case errors.Is(err, util.ErrNoRecentActivity):
			util.Error(ctx, 404, "近期活动缺少学科标签，无法生成推荐")
		default:
			util.BadGateway(ctx, "推荐数据源暂时不可用")
		}
		return
	}

	monitoring.RecommendationCounter.WithLabelValues(string(target.Strategy), string(target.Phase)).Inc()
	util.Success(ctx, target)
}

type StartSessionRequest struct {
	// 直接传入推荐结果或手动指定范围
	SubtopicID *uint  `json:"subtopic"`
	TopicID    *uint  `json:"topic"`
	SubjectID  *uint  `json:"subject"`
	Mode       string `json:"mode" binding:"omitempty,oneof=auto manual"`
	Strategy   string `json:"strategy"`
	Difficulty *int   `json:"difficulty" binding:"omitempty,min=1,max=5"`
}

// StartSession godoc
// @Summary 创建练习会话
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartSessionRequest true "练习范围"
// @Success 201 {object} util.Response{data=model.ExerciseSession} "创建成功"
// @Failure 404 {object} util.Response "该范围暂无可用题目"
// @Router /api/exercises/sessions [post]
func (c *ExerciseController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.SubtopicID == nil && req.TopicID == nil && req.SubjectID == nil {
		util.BadRequest(ctx, "需要指定子主题、主题或学科")
		return
	}

	var session *model.ExerciseSession
	var err error
	if req.Mode == "auto" {
		target := &service.RecommendationTarget{
			SubtopicID: req.SubtopicID,
			TopicID:    req.TopicID,
			SubjectID:  req.SubjectID,
			Mode:       model.SessionModeAuto,
			Strategy:   service.RecommendationStrategy(req.Strategy),
			Difficulty: req.Difficulty,
		}
		session, err = c.ExerciseService.StartFromTarget(ctx.Request.Context(), claims.UserID, target)
	} else {
		session, err = c.ExerciseService.StartManual(ctx.Request.Context(), claims.UserID, req.SubtopicID, req.TopicID, req.SubjectID, req.Difficulty)
	}

	if err != nil {
		if errors.Is(err, util.ErrQuestionUnavailable) {
			util.Error(ctx, 404, "该范围暂无可用题目")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// GetSession godoc
// @Summary 查询练习会话
// @Tags 练习
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Success 200 {object} util.Response{data=model.ExerciseSession} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/exercises/sessions/{id} [get]
func (c *ExerciseController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.ExerciseService.GetSession(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

type SubmitSessionRequest struct {
	// questionId -> 所选选项字母
	Answers map[uint]string `json:"answers" binding:"required"`
}

// SubmitSession godoc
// @Summary 提交练习作答
// @Description 会话计分并刷新对应子主题的掌握度
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Param   body body SubmitSessionRequest true "作答"
// @Success 200 {object} util.Response{data=service.SessionResult} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "会话已提交"
// @Router /api/exercises/sessions/{id}/submit [post]
func (c *ExerciseController) SubmitSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExerciseService.Submit(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionFinished):
			util.Error(ctx, 409, "该会话已提交过")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// 成绩变了，分析汇总缓存作废
	c.AnalyticsService.InvalidateCache(ctx.Request.Context(), claims.UserID)

	util.Success(ctx, result)
}
