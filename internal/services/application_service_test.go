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

type applicationFixture struct {
	svc       *ApplicationService
	jobs      *fakeJobRepo
	audit     *fakeAuditRepo
	employer  helpers.Principal
	developer helpers.Principal
	job       *models.Job
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()

	jobs := newFakeJobRepo()
	audit := &fakeAuditRepo{}
	jobSvc := NewJobService(jobs, NewAuditService(audit, testLogger()))
	employer := employerPrincipal()

	job, err := jobSvc.CreateJob(context.Background(), employer, validJobInput())
	require.NoError(t, err)

	return &applicationFixture{
		svc:       NewApplicationService(newFakeApplicationRepo(), jobs, NewAuditService(audit, testLogger())),
		jobs:      jobs,
		audit:     audit,
		employer:  employer,
		developer: helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleDeveloper},
		job:       job,
	}
}

func TestApply(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "I would love to work on this")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, app.Status)
	assert.Equal(t, f.developer.UserID, app.DeveloperID.Hex())
	assert.Contains(t, f.audit.actions(), "application.create")
}

func TestApplyEmployerForbidden(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.employer, f.job.ID, "")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestApplyToNonOpenJob(t *testing.T) {
	f := newApplicationFixture(t)
	f.jobs.jobs[f.job.ID].Status = models.JobStatusPaused

	_, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	assert.True(t, errors.Is(err, apperrors.ErrJobNotOpen))
}

func TestApplyTwiceConflicts(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Apply(context.Background(), f.developer, f.job.ID, "again")
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateApplication))
}

func TestApplicationTransitionByEmployer(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	require.NoError(t, err)

	shortlisted, err := f.svc.Transition(context.Background(), f.employer, app.ID, models.ApplicationStatusShortlisted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, shortlisted.Status)

	accepted, err := f.svc.Transition(context.Background(), f.employer, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, accepted.Status)

	// Accepted is terminal.
	_, err = f.svc.Transition(context.Background(), f.employer, app.ID, models.ApplicationStatusRejected)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestApplicationTransitionNonOwnerForbidden(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	require.NoError(t, err)

	_, err = f.svc.Transition(context.Background(), f.developer, app.ID, models.ApplicationStatusAccepted)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestListForJobRestrictedToOwner(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	require.NoError(t, err)

	apps, err := f.svc.ListForJob(context.Background(), f.employer, f.job.ID)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	_, err = f.svc.ListForJob(context.Background(), f.developer, f.job.ID)
	require.Error(t, err)
}

func TestListMine(t *testing.T) {
	f := newApplicationFixture(t)

	_, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	require.NoError(t, err)

	apps, err := f.svc.ListMine(context.Background(), f.developer)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	other := helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleDeveloper}
	apps, err = f.svc.ListMine(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, apps)
}

func TestApplicationTransitionLosesRaceToTerminalState(t *testing.T) {
	f := newApplicationFixture(t)

	app, err := f.svc.Apply(context.Background(), f.developer, f.job.ID, "")
	require.NoError(t, err)

	// Another request rejects the application between this request's read
	// and its write; both observed submitted, only one may win.
	repo := f.svc.applicationRepo.(*fakeApplicationRepo)
	repo.afterGet = func() {
		repo.applications[app.ID].Status = models.ApplicationStatusRejected
	}

	_, err = f.svc.Transition(context.Background(), f.employer, app.ID, models.ApplicationStatusAccepted)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

	// The terminal state set by the winner survives.
	assert.Equal(t, models.ApplicationStatusRejected, repo.applications[app.ID].Status)
}
