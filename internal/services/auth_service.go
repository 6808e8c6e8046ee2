package services

import (
	"context"
	"log/slog"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthService struct {
	userRepo    models.UserRepo
	profileRepo models.ProfileRepo
	tokens      *helpers.TokenManager
	audit       *AuditService
	logger      *slog.Logger
}

func NewAuthService(userRepo models.UserRepo, profileRepo models.ProfileRepo, tokens *helpers.TokenManager, audit *AuditService, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		audit:       audit,
		logger:      logger,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=developer employer"`
	FullName string `json:"full_name"`

	// Employer fields
	CompanyName string `json:"company_name" validate:"required_if=Role employer"`
	Website     string `json:"website" validate:"omitempty,url"`

	// Developer fields
	Skills          []string `json:"skills"`
	YearsExperience int      `json:"years_experience" validate:"gte=0"`
	Availability    string   `json:"availability" validate:"omitempty,oneof=full-time part-time contract"`
	RateType        string   `json:"rate_type" validate:"omitempty,oneof=hourly monthly project"`
	RateAmount      float64  `json:"rate_amount" validate:"gte=0"`
	Location        string   `json:"location"`
}

type RegisterResult struct {
	User      *models.User      `json:"user"`
	Developer *models.Developer `json:"developer,omitempty"`
	Employer  *models.Employer  `json:"employer,omitempty"`
}

// Register creates the User and its role-matching profile extension. The two
// inserts are not transactional; a failed profile insert compensates by
// deleting the fresh User so no orphan survives the request.
func (as *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	if !helpers.IsPasswordStrong(input.Password) {
		return nil, apperrors.BadRequest("password must be at least 8 characters with upper, lower and numeric characters")
	}

	hash, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Email:        helpers.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		FullName:     input.FullName,
		Status:       models.UserStatusActive,
	}

	created, err := as.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, apperrors.FromMongo(err, apperrors.ErrEmailTaken, nil)
	}

	result := &RegisterResult{User: created}

	switch input.Role {
	case models.RoleDeveloper:
		dev := &models.Developer{
			UserID:          created.ID,
			Skills:          helpers.RemoveDuplicates(input.Skills),
			YearsExperience: input.YearsExperience,
			Availability:    valueOrDefault(input.Availability, models.AvailabilityContract),
			RateType:        valueOrDefault(input.RateType, models.RateTypeHourly),
			RateAmount:      input.RateAmount,
			Location:        input.Location,
		}
		createdDev, err := as.profileRepo.CreateDeveloper(ctx, dev)
		if err != nil {
			as.compensateUser(ctx, created.ID)
			return nil, apperrors.FromMongo(err, apperrors.ErrDuplicateKey, nil)
		}
		result.Developer = createdDev
	case models.RoleEmployer:
		emp := &models.Employer{
			UserID:      created.ID,
			CompanyName: input.CompanyName,
			Website:     input.Website,
			Location:    input.Location,
		}
		createdEmp, err := as.profileRepo.CreateEmployer(ctx, emp)
		if err != nil {
			as.compensateUser(ctx, created.ID)
			return nil, apperrors.FromMongo(err, apperrors.ErrDuplicateKey, nil)
		}
		result.Employer = createdEmp
	}

	as.audit.Record(ctx, created.ID, "user.register", "user", created.ID.Hex(), map[string]interface{}{
		"role": created.Role,
	})

	return result, nil
}

func (as *AuthService) compensateUser(ctx context.Context, userID primitive.ObjectID) {
	if err := as.userRepo.DeleteUser(ctx, userID); err != nil {
		// The orphaned User is left for reconciliation via the audit trail.
		as.logger.Error("failed to roll back user after profile insert failure",
			"user_id", userID.Hex(),
			"error", err,
		)
	}
}

// Login verifies the password and issues a fresh token pair. Every failure
// mode maps to the same generic error to avoid account enumeration.
func (as *AuthService) Login(ctx context.Context, email, password string) (*helpers.TokenPair, *models.User, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	user, err := as.userRepo.GetUserByEmail(ctx, helpers.NormalizeEmail(email))
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !helpers.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, nil, apperrors.Forbidden("Account suspended")
	}

	pair, err := as.tokens.IssuePair(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new pair. The user is
// re-checked so a suspended or deleted account cannot keep rotating tokens.
func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (*helpers.TokenPair, error) {
	principal, err := as.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := as.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Internal(err)
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.Forbidden("Account suspended")
	}

	pair, err := as.tokens.IssuePair(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return pair, nil
}

func valueOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
