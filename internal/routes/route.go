package routes

import (
	"github.com/devlink/server/internal/container"
	"github.com/devlink/server/internal/handlers"
	"github.com/devlink/server/internal/middleware"
	"github.com/devlink/server/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{c.Config.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(200, gin.H{
				"status":  "OK",
				"service": "devlink-api",
			})
		})

		// public routes
		v1.POST("/auth/register", handlers.Register(c.AuthService))
		v1.POST("/auth/login", handlers.Login(c.AuthService))
		v1.POST("/auth/refresh", handlers.Refresh(c.AuthService))
		v1.POST("/auth/verify/request", handlers.RequestVerification(c.VerificationService))
		v1.POST("/auth/verify/confirm", handlers.ConfirmVerification(c.VerificationService))

		v1.GET("/jobs", handlers.ListJobs(c.JobService))
		v1.GET("/jobs/:id", handlers.GetJob(c.JobService))
		v1.GET("/developers/:id", handlers.GetDeveloperProfile(c.ProfileService))
		v1.GET("/employers/:id", handlers.GetEmployerProfile(c.ProfileService))
		v1.GET("/users/:id/reviews", handlers.ListUserReviews(c.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(c.Tokens))
	{
		protected.GET("/me", handlers.GetMe(c.UserService))
		protected.PATCH("/me", handlers.UpdateMe(c.UserService))
		protected.GET("/me/jobs", handlers.ListMyJobs(c.JobService))
		protected.GET("/me/applications", handlers.ListMyApplications(c.ApplicationService))
		protected.PATCH("/profiles/developer", handlers.UpdateDeveloperProfile(c.ProfileService))
		protected.PATCH("/profiles/employer", handlers.UpdateEmployerProfile(c.ProfileService))
		protected.POST("/uploads/avatar", handlers.UploadAvatar(c.Cloudinary, c.ProfileService))
		protected.POST("/uploads/resume", handlers.UploadResume(c.Cloudinary, c.ProfileService))

		protected.POST("/applications/:id/status", handlers.TransitionApplication(c.ApplicationService))

		protected.POST("/contracts", handlers.CreateContract(c.ContractService))
		protected.GET("/contracts", handlers.ListMyContracts(c.ContractService))
		protected.GET("/contracts/:id", handlers.GetContract(c.ContractService))
		protected.GET("/contracts/:id/escrow", handlers.ListEscrowLedger(c.ContractService))
		protected.POST("/contracts/:id/escrow/fund", handlers.FundEscrow(c.ContractService))
		protected.POST("/contracts/:id/escrow/refund", handlers.RefundEscrow(c.ContractService))
		protected.POST("/contracts/:id/milestones/:milestoneId/release", handlers.ReleaseMilestone(c.ContractService))
		protected.POST("/contracts/:id/reviews", handlers.CreateReview(c.ReviewService))

		protected.POST("/conversations", handlers.StartConversation(c.MessageService))
		protected.GET("/conversations", handlers.ListConversations(c.MessageService))
		protected.POST("/conversations/:id/messages", handlers.SendMessage(c.MessageService))
		protected.GET("/conversations/:id/messages", handlers.ListMessages(c.MessageService))
	}

	jobRoutes := protected.Group("/jobs")
	{
		jobRoutes.POST("", handlers.CreateJob(c.JobService))
		jobRoutes.PATCH("/:id", handlers.UpdateJob(c.JobService))
		jobRoutes.POST("/:id/status", handlers.TransitionJob(c.JobService))
		jobRoutes.POST("/:id/applications", handlers.ApplyToJob(c.ApplicationService))
		jobRoutes.GET("/:id/applications", handlers.ListJobApplications(c.ApplicationService))
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/audit", handlers.ListAuditLogs(c.AuditService))
		admin.GET("/config/:key", handlers.GetAdminConfig(c.AdminService))
		admin.PUT("/config/:key", handlers.SetAdminConfig(c.AdminService))
		admin.PATCH("/users/:id/status", handlers.SetUserStatus(c.UserService))
	}

	return r
}
