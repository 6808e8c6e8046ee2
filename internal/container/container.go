package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/devlink/server/internal/config"
	"github.com/devlink/server/internal/email"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client
	Tokens        *helpers.TokenManager

	AuthService         *services.AuthService
	VerificationService *services.VerificationService
	UserService         *services.UserService
	ProfileService      *services.ProfileService
	JobService          *services.JobService
	ApplicationService  *services.ApplicationService
	ContractService     *services.ContractService
	MessageService      *services.MessageService
	ReviewService       *services.ReviewService
	AuditService        *services.AuditService
	AdminService        *services.AdminService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
	sender email.Sender,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.DatabaseName)
	tokens := helpers.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	auditService := services.NewAuditService(repo, logger)
	authService := services.NewAuthService(repo, repo, tokens, auditService, logger)
	verificationService := services.NewVerificationService(repo, sender, cfg.OTPLifetime, logger)
	userService := services.NewUserService(repo, repo, auditService)
	profileService := services.NewProfileService(repo)
	jobService := services.NewJobService(repo, auditService)
	applicationService := services.NewApplicationService(repo, repo, auditService)
	contractService := services.NewContractService(repo, repo, repo, auditService, cfg.CommissionPercent)
	messageService := services.NewMessageService(repo, repo)
	reviewService := services.NewReviewService(repo, repo, repo, repo, logger)
	adminService := services.NewAdminService(repo, auditService)

	return &Container{
		Config:              cfg,
		Logger:              logger,
		Cloudinary:          cld,
		MongoDBClient:       mongoDBClient,
		Tokens:              tokens,
		AuthService:         authService,
		VerificationService: verificationService,
		UserService:         userService,
		ProfileService:      profileService,
		JobService:          jobService,
		ApplicationService:  applicationService,
		ContractService:     contractService,
		MessageService:      messageService,
		ReviewService:       reviewService,
		AuditService:        auditService,
		AdminService:        adminService,
	}
}
