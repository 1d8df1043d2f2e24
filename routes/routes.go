package routes

import (
	"solarpms/config"
	"solarpms/controllers"
	"solarpms/middleware"
	"solarpms/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, conf config.Config, scheduler *services.Scheduler) {
	authController := controllers.AuthController{}
	projectController := controllers.ProjectController{}
	stageController := controllers.StageController{}
	taskController := controllers.TaskController{}
	checklistController := controllers.ChecklistController{}
	budgetController := controllers.BudgetController{}
	vendorController := controllers.VendorController{}
	dashboardController := controllers.DashboardController{PersistRiskScore: conf.PersistRiskScore}
	notificationController := controllers.NewNotificationController(scheduler)

	// 공개 라우트 (인증 불필요)
	public := r.Group("/api/v1")
	{
		public.POST("/auth/dev-login", authController.DevLogin)
	}

	// 인증 필요 라우트
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware())
	{
		// 프로젝트
		private.GET("/projects", projectController.ListProjects)
		private.POST("/projects", projectController.CreateProject)
		private.GET("/projects/:id", projectController.GetProject)
		private.PATCH("/projects/:id", projectController.UpdateProject)
		private.DELETE("/projects/:id", projectController.DeleteProject)
		private.POST("/projects/:id/instantiate", projectController.InstantiateProject)

		// 단계
		private.GET("/projects/:id/stages", stageController.ListStages)
		private.PATCH("/stages/:id", stageController.UpdateStage)
		private.PATCH("/stages/:id/active", stageController.UpdateStageActive)
		private.PATCH("/stages/:id/dates", stageController.UpdateStageDates)

		// 태스크
		private.POST("/stages/:id/tasks", taskController.CreateTask)
		private.PATCH("/tasks/:id", taskController.UpdateTask)
		private.PATCH("/tasks/:id/status", taskController.UpdateTaskStatus)
		private.DELETE("/tasks/:id", taskController.DeleteTask)

		// 체크리스트 템플릿
		private.GET("/checklists", checklistController.ListTemplates)
		private.POST("/checklists", checklistController.CreateTemplate)
		private.GET("/checklists/:id", checklistController.GetTemplate)
		private.PATCH("/checklists/:id", checklistController.UpdateTemplate)
		private.DELETE("/checklists/:id", checklistController.DeleteTemplate)
		private.PUT("/checklists/:id/items/reorder", checklistController.ReorderItems)

		// 예산
		private.GET("/projects/:id/budget", budgetController.ListBudget)
		private.POST("/projects/:id/budget", budgetController.CreateBudgetItem)
		private.PATCH("/budget/:id", budgetController.UpdateBudgetItem)
		private.DELETE("/budget/:id", budgetController.DeleteBudgetItem)
		private.PUT("/projects/:id/budget/reorder", budgetController.ReorderBudget)

		// 협력업체
		private.GET("/vendors", vendorController.ListVendors)
		private.POST("/vendors", vendorController.CreateVendor)
		private.GET("/vendors/:id", vendorController.GetVendor)
		private.PATCH("/vendors/:id", vendorController.UpdateVendor)
		private.DELETE("/vendors/:id", vendorController.DeleteVendor)

		// 대시보드
		private.GET("/dashboard/full-summary", dashboardController.FullSummary)
		private.GET("/dashboard/risk-projects", dashboardController.RiskProjects)

		// 푸시 토큰
		private.POST("/push/tokens", notificationController.RegisterPushToken)
	}

	// 내부 라우트 (크론 트리거 전용)
	internal := r.Group("/internal")
	{
		internal.POST("/cron/notifications/daily", notificationController.RunDaily)
		internal.POST("/cron/notifications/hourly", notificationController.RunHourly)
	}

	// 헬스체크
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
