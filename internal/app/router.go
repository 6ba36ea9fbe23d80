package app

import (
	"studytrack_backend/internal/config"
	"studytrack_backend/internal/middleware"
	"studytrack_backend/internal/model"
	"studytrack_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/motivation", c.motivation.GetCurrent)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)
	rg.POST("/user/checkin", c.user.Checkin)

	// 面板
	rg.GET("/dashboard", c.dashboard.GetDashboard)
	rg.GET("/dashboard/today-tasks", c.dashboard.GetTodayTasks)
	rg.PATCH("/dashboard/tasks/:id", c.dashboard.UpdateTaskStatus)

	// 课程层级
	rg.GET("/subjects", c.subject.GetTree)

	// 学习计划
	rg.GET("/study-plan/tasks", c.task.ListTasks)
	rg.POST("/study-plan/tasks", c.task.CreateTask)
	rg.PUT("/study-plan/tasks/:id", c.task.UpdateTask)
	rg.PATCH("/study-plan/tasks/:id/status", c.task.UpdateTaskStatus)
	rg.DELETE("/study-plan/tasks/:id", c.task.DeleteTask)

	rg.GET("/study-plan/activities", c.activity.ListWeek)
	rg.POST("/study-plan/activities", c.activity.CreateActivity)
	rg.POST("/study-plan/activities/:id/complete", c.activity.CompleteActivity)
	rg.DELETE("/study-plan/activities/:id", c.activity.DeleteActivity)

	// 考试目标
	rg.GET("/exam-goals", c.goal.ListGoals)
	rg.POST("/exam-goals", c.goal.CreateGoal)
	rg.PUT("/exam-goals/:id", c.goal.UpdateGoal)
	rg.DELETE("/exam-goals/:id", c.goal.DeleteGoal)

	// 掌握度
	rg.GET("/performance", c.performance.ListPerformance)
	rg.PUT("/performance/:subtopicId", c.performance.UpsertPerformance)

	// 练习与推荐
	rg.POST("/exercises/recommendation", c.exercise.Recommend)
	rg.POST("/exercises/sessions", c.exercise.StartSession)
	rg.GET("/exercises/sessions/:id", c.exercise.GetSession)
	rg.POST("/exercises/sessions/:id/submit", c.exercise.SubmitSession)

	// 分析
	rg.GET("/analytics/summary", c.analytics.GetSummary)
	rg.GET("/analytics/performance", c.analytics.GetPerformance)
	rg.GET("/analytics/activity", c.analytics.GetActivity)

	// 成就
	rg.GET("/achievements", c.achievement.GetAchievements)
	rg.GET("/achievements/leaderboard", c.achievement.GetLeaderboard)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/settings/:key", c.admin.GetSetting)
		admin.PUT("/settings/:key", c.admin.SetSetting)

		admin.POST("/subjects", c.admin.CreateSubject)
		admin.DELETE("/subjects/:id", c.admin.DeleteSubject)
		admin.POST("/topics", c.admin.CreateTopic)
		admin.POST("/subtopics", c.admin.CreateSubtopic)

		admin.GET("/questions", c.admin.ListQuestions)
		admin.POST("/questions", c.admin.CreateQuestion)
		admin.DELETE("/questions/:id", c.admin.DeleteQuestion)

		admin.GET("/motivations", c.admin.ListMotivations)
		admin.POST("/motivations", c.admin.CreateMotivation)
		admin.POST("/motivations/:id/switch", c.admin.SwitchMotivation)
	}
}
