package services

import (
	"context"
	"log/slog"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditService struct {
	auditRepo models.AuditRepo
	logger    *slog.Logger
}

func NewAuditService(auditRepo models.AuditRepo, logger *slog.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends an audit entry. Auditing never fails the calling operation;
// a write error is logged and swallowed.
func (as *AuditService) Record(ctx context.Context, actorID primitive.ObjectID, action, entity, entityID string, metadata map[string]interface{}) {
	entry := &models.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metadata,
	}
	if err := as.auditRepo.AppendAuditLog(ctx, entry); err != nil {
		as.logger.Error("failed to append audit log",
			"action", action,
			"entity", entity,
			"entity_id", entityID,
			"error", err,
		)
	}
}

func (as *AuditService) List(ctx context.Context, offset, limit int) ([]*models.AuditLog, int, error) {
	entries, total, err := as.auditRepo.ListAuditLogs(ctx, offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return entries, total, nil
}
