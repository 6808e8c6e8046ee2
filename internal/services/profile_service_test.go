package services

import (
	"context"
	"errors"
	"testing"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seededProfileService(t *testing.T) (*ProfileService, helpers.Principal, helpers.Principal) {
	t.Helper()

	repo := newFakeProfileRepo()
	devID := primitive.NewObjectID()
	empID := primitive.NewObjectID()

	_, err := repo.CreateDeveloper(context.Background(), &models.Developer{UserID: devID})
	require.NoError(t, err)
	_, err = repo.CreateEmployer(context.Background(), &models.Employer{UserID: empID, CompanyName: "Acme"})
	require.NoError(t, err)

	dev := helpers.Principal{UserID: devID.Hex(), Role: models.RoleDeveloper}
	emp := helpers.Principal{UserID: empID.Hex(), Role: models.RoleEmployer}
	return NewProfileService(repo), dev, emp
}

func TestUpdateDeveloperProfile(t *testing.T) {
	svc, dev, _ := seededProfileService(t)

	bio := "backend engineer"
	updated, err := svc.UpdateDeveloperProfile(context.Background(), dev, UpdateDeveloperInput{
		Bio:    &bio,
		Skills: []string{"go", "mongodb", "go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "backend engineer", updated.Bio)
	assert.Equal(t, []string{"go", "mongodb"}, updated.Skills)
}

func TestUpdateDeveloperProfileRoleGate(t *testing.T) {
	svc, _, emp := seededProfileService(t)

	bio := "nope"
	_, err := svc.UpdateDeveloperProfile(context.Background(), emp, UpdateDeveloperInput{Bio: &bio})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateDeveloperProfileNoFields(t *testing.T) {
	svc, dev, _ := seededProfileService(t)

	_, err := svc.UpdateDeveloperProfile(context.Background(), dev, UpdateDeveloperInput{})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpdateDeveloperProfileInvalidAvailability(t *testing.T) {
	svc, dev, _ := seededProfileService(t)

	avail := "weekends-only"
	_, err := svc.UpdateDeveloperProfile(context.Background(), dev, UpdateDeveloperInput{Availability: &avail})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpdateEmployerProfile(t *testing.T) {
	svc, dev, emp := seededProfileService(t)

	name := "Acme Rebranded"
	updated, err := svc.UpdateEmployerProfile(context.Background(), emp, UpdateEmployerInput{CompanyName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Acme Rebranded", updated.CompanyName)

	empty := ""
	_, err = svc.UpdateEmployerProfile(context.Background(), emp, UpdateEmployerInput{CompanyName: &empty})
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	_, err = svc.UpdateEmployerProfile(context.Background(), dev, UpdateEmployerInput{CompanyName: &name})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestSetAvatarPerRole(t *testing.T) {
	svc, dev, emp := seededProfileService(t)

	require.NoError(t, svc.SetAvatar(context.Background(), dev, "https://cdn.example.com/dev.png"))
	got, err := svc.GetDeveloperProfile(context.Background(), mustObjectID(t, dev.UserID))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/dev.png", got.AvatarURL)

	require.NoError(t, svc.SetAvatar(context.Background(), emp, "https://cdn.example.com/emp.png"))
	empProfile, err := svc.GetEmployerProfile(context.Background(), mustObjectID(t, emp.UserID))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/emp.png", empProfile.AvatarURL)

	admin := helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}
	err = svc.SetAvatar(context.Background(), admin, "https://cdn.example.com/a.png")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestSetResumeDeveloperOnly(t *testing.T) {
	svc, dev, emp := seededProfileService(t)

	require.NoError(t, svc.SetResume(context.Background(), dev, "https://cdn.example.com/cv.pdf"))
	got, err := svc.GetDeveloperProfile(context.Background(), mustObjectID(t, dev.UserID))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", got.ResumeURL)

	err = svc.SetResume(context.Background(), emp, "https://cdn.example.com/cv.pdf")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := NewProfileService(newFakeProfileRepo())

	_, err := svc.GetDeveloperProfile(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, apperrors.ErrProfileNotFound))

	_, err = svc.GetEmployerProfile(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, apperrors.ErrProfileNotFound))
}

func mustObjectID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}
