package services

import (
	"context"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	userRepo    models.UserRepo
	profileRepo models.ProfileRepo
	audit       *AuditService
}

func NewUserService(userRepo models.UserRepo, profileRepo models.ProfileRepo, audit *AuditService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		audit:       audit,
	}
}

type AccountView struct {
	User      *models.User      `json:"user"`
	Developer *models.Developer `json:"developer,omitempty"`
	Employer  *models.Employer  `json:"employer,omitempty"`
}

func (us *UserService) GetAccount(ctx context.Context, principal helpers.Principal) (*AccountView, error) {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := us.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrUserNotFound)
	}

	view := &AccountView{User: user}
	switch user.Role {
	case models.RoleDeveloper:
		if dev, err := us.profileRepo.GetDeveloperByUserID(ctx, userID); err == nil {
			view.Developer = dev
		}
	case models.RoleEmployer:
		if emp, err := us.profileRepo.GetEmployerByUserID(ctx, userID); err == nil {
			view.Employer = emp
		}
	}

	return view, nil
}

type UpdateAccountInput struct {
	FullName *string `json:"full_name"`
}

func (us *UserService) UpdateAccount(ctx context.Context, principal helpers.Principal, input UpdateAccountInput) (*models.User, error) {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	fields := map[string]interface{}{}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	user, err := us.userRepo.UpdateUser(ctx, userID, fields)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// SetUserStatus is an admin operation; every change is audit-logged.
func (us *UserService) SetUserStatus(ctx context.Context, principal helpers.Principal, targetID primitive.ObjectID, status string) (*models.User, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if status != models.UserStatusActive && status != models.UserStatusSuspended && status != models.UserStatusPending {
		return nil, apperrors.BadRequest("invalid user status")
	}

	user, err := us.userRepo.UpdateUser(ctx, targetID, map[string]interface{}{"status": status})
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrUserNotFound)
	}

	actorID, _ := primitive.ObjectIDFromHex(principal.UserID)
	us.audit.Record(ctx, actorID, "user.status_change", "user", targetID.Hex(), map[string]interface{}{
		"status": status,
	})

	return user, nil
}
