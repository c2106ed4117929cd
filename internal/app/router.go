package app

import (
	"hanja_edu_backend/docs"
	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/middleware"
	"hanja_edu_backend/internal/model"
	"hanja_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 공개 라우트 (로그인 불필요)
	a.registerPublicRoutes(router, c)

	// 로그인 필요한 학생 라우트
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 관리자 라우트
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/leaderboard", c.user.Leaderboard)

		// 한자 조회는 게스트도 가능 (학습 미리보기)
		public.GET("/hanzi", c.hanzi.List)
		public.GET("/hanzi/grades", c.hanzi.Grades)
		public.GET("/hanzi/:id", c.hanzi.Get)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.PUT("/me/password", c.auth.ChangePassword)
	rg.PUT("/me/profile", c.user.UpdateProfile)
	rg.GET("/me/summary", c.user.StudySummary)
	rg.PUT("/me/grade", c.user.SetGrade)

	// 시험
	rg.POST("/exams", c.exam.Start)
	rg.GET("/exams", c.exam.History)
	rg.GET("/exams/wrong-answers", c.exam.WrongAnswers)
	rg.GET("/exams/:id", c.exam.Get)
	rg.PUT("/exams/:id/answers", c.exam.SaveAnswer)
	rg.POST("/exams/:id/submit", c.exam.Submit)
	rg.GET("/exams/:id/result", c.exam.Result)

	// 쓰기 연습
	rg.POST("/writing", c.writing.Submit)
	rg.GET("/writing", c.writing.ListMine)
	rg.GET("/writing/:id", c.writing.Get)

	// 학습 게임
	rg.POST("/games", c.game.Record)
	rg.GET("/games", c.game.History)
	rg.GET("/games/best", c.game.BestScore)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		// 한자 데이터 관리
		admin.POST("/hanzi", c.hanzi.Create)
		admin.PUT("/hanzi/:id", c.hanzi.Update)
		admin.DELETE("/hanzi/:id", c.hanzi.Delete)
		admin.POST("/hanzi/:id/stroke-video", c.hanzi.UploadStrokeVideo)

		// 회원 관리
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)

		// 쓰기 첨삭
		admin.GET("/writing/pending", c.writing.ListPending)
		admin.PUT("/writing/:id/review", c.writing.Review)

		// 통계
		admin.GET("/exams/pass-rate", c.exam.PassRate)
	}
}
