package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeConfigRepo struct {
	values map[string]*models.AdminConfig
}

func (f *fakeConfigRepo) GetConfigValue(ctx context.Context, key string) (*models.AdminConfig, error) {
	cfg, ok := f.values[key]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return cfg, nil
}

func (f *fakeConfigRepo) SetConfigValue(ctx context.Context, key string, value interface{}) (*models.AdminConfig, error) {
	if f.values == nil {
		f.values = map[string]*models.AdminConfig{}
	}
	cfg := &models.AdminConfig{ID: primitive.NewObjectID(), Key: key, Value: value, UpdatedAt: time.Now()}
	f.values[key] = cfg
	return cfg, nil
}

func TestAdminConfigRoundTrip(t *testing.T) {
	audit := &fakeAuditRepo{}
	svc := NewAdminService(&fakeConfigRepo{}, NewAuditService(audit, testLogger()))
	admin := helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}

	set, err := svc.SetConfig(context.Background(), admin, "commission_percent", 12.5)
	require.NoError(t, err)
	assert.Equal(t, 12.5, set.Value)

	got, err := svc.GetConfig(context.Background(), admin, "commission_percent")
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Value)

	assert.Contains(t, audit.actions(), "config.set")
}

func TestAdminConfigMissingKey(t *testing.T) {
	svc := NewAdminService(&fakeConfigRepo{}, NewAuditService(&fakeAuditRepo{}, testLogger()))
	admin := helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}

	_, err := svc.GetConfig(context.Background(), admin, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrConfigKeyNotFound))
}

func TestAdminConfigRequiresAdmin(t *testing.T) {
	svc := NewAdminService(&fakeConfigRepo{}, NewAuditService(&fakeAuditRepo{}, testLogger()))
	employer := helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleEmployer}

	_, err := svc.GetConfig(context.Background(), employer, "commission_percent")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = svc.SetConfig(context.Background(), employer, "commission_percent", 5)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}
