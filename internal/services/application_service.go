package services

import (
	"context"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationService struct {
	applicationRepo models.ApplicationRepo
	jobRepo         models.JobRepo
	audit           *AuditService
}

func NewApplicationService(applicationRepo models.ApplicationRepo, jobRepo models.JobRepo, audit *AuditService) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		audit:           audit,
	}
}

// Apply creates an application for the authenticated developer. The unique
// (job_id, developer_id) index turns a second attempt into a Conflict.
func (s *ApplicationService) Apply(ctx context.Context, principal helpers.Principal, jobID primitive.ObjectID, coverLetter string) (*models.Application, error) {
	if !principal.IsDeveloper() {
		return nil, apperrors.Forbidden("only developers can apply to jobs")
	}

	developerID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	app := &models.Application{
		JobID:       jobID,
		DeveloperID: developerID,
		CoverLetter: coverLetter,
	}

	created, err := s.applicationRepo.CreateApplication(ctx, app)
	if err != nil {
		return nil, apperrors.FromMongo(err, apperrors.ErrDuplicateApplication, nil)
	}

	s.audit.Record(ctx, developerID, "application.create", "application", created.ID.Hex(), map[string]interface{}{
		"job_id": jobID.Hex(),
	})

	return created, nil
}

// Transition moves an application along submitted → {shortlisted, rejected,
// accepted} and shortlisted → {rejected, accepted}. Only the employer owning
// the referenced job may transition.
func (s *ApplicationService) Transition(ctx context.Context, principal helpers.Principal, applicationID primitive.ObjectID, to string) (*models.Application, error) {
	app, err := s.applicationRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrApplicationNotFound)
	}

	job, err := s.jobRepo.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	if !principal.IsOwner(job.EmployerID.Hex()) && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("only the job's employer can update this application")
	}

	if !models.CanTransitionApplication(app.Status, to) {
		return nil, apperrors.ErrInvalidTransition.WithDetails(map[string]string{
			"from": app.Status,
			"to":   to,
		})
	}

	// The status filter makes the write a compare-and-set. A miss means
	// another request transitioned the application after we read it.
	if err := s.applicationRepo.SetApplicationStatus(ctx, applicationID, app.Status, to); err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrInvalidTransition.WithDetails(map[string]string{
			"from": app.Status,
			"to":   to,
		}))
	}

	actorID, _ := primitive.ObjectIDFromHex(principal.UserID)
	s.audit.Record(ctx, actorID, "application.status_change", "application", applicationID.Hex(), map[string]interface{}{
		"from": app.Status,
		"to":   to,
	})

	app.Status = to
	return app, nil
}

// ListForJob is restricted to the employer who owns the job.
func (s *ApplicationService) ListForJob(ctx context.Context, principal helpers.Principal, jobID primitive.ObjectID) ([]*models.Application, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	if !principal.IsOwner(job.EmployerID.Hex()) && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("only the job's employer can list its applications")
	}

	apps, err := s.applicationRepo.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apps, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, principal helpers.Principal) ([]*models.Application, error) {
	developerID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	apps, err := s.applicationRepo.ListApplicationsByDeveloper(ctx, developerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return apps, nil
}
