package services

import (
	"context"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService exposes the runtime configuration keys admins can tune,
// commission percentage and similar platform knobs.
type AdminService struct {
	configRepo models.AdminConfigRepo
	audit      *AuditService
}

func NewAdminService(configRepo models.AdminConfigRepo, audit *AuditService) *AdminService {
	return &AdminService{
		configRepo: configRepo,
		audit:      audit,
	}
}

func (s *AdminService) GetConfig(ctx context.Context, principal helpers.Principal, key string) (*models.AdminConfig, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	cfg, err := s.configRepo.GetConfigValue(ctx, key)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrConfigKeyNotFound)
	}
	return cfg, nil
}

func (s *AdminService) SetConfig(ctx context.Context, principal helpers.Principal, key string, value interface{}) (*models.AdminConfig, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if key == "" {
		return nil, apperrors.BadRequest("config key is required")
	}

	cfg, err := s.configRepo.SetConfigValue(ctx, key, value)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, nil)
	}

	actorID, idErr := primitive.ObjectIDFromHex(principal.UserID)
	if idErr == nil {
		s.audit.Record(ctx, actorID, "config.set", "admin_config", key, map[string]interface{}{
			"value": value,
		})
	}
	return cfg, nil
}
