package services

import (
	"context"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type JobService struct {
	jobRepo models.JobRepo
	audit   *AuditService
}

func NewJobService(jobRepo models.JobRepo, audit *AuditService) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		audit:   audit,
	}
}

type CreateJobInput struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	RequiredSkills  []string `json:"required_skills"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=junior mid senior"`
	BudgetMin       float64  `json:"budget_min" validate:"gte=0"`
	BudgetMax       float64  `json:"budget_max" validate:"gte=0"`
	RateType        string   `json:"rate_type" validate:"required,oneof=hourly monthly project"`
	JobType         string   `json:"job_type" validate:"required,oneof=remote onsite contract"`
	Location        string   `json:"location"`
}

func (js *JobService) CreateJob(ctx context.Context, principal helpers.Principal, input CreateJobInput) (*models.Job, error) {
	if !principal.IsEmployer() && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("only employers can post jobs")
	}

	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	if input.BudgetMin > 0 && input.BudgetMax > 0 && input.BudgetMin > input.BudgetMax {
		return nil, apperrors.BadRequest("budget_min must not exceed budget_max")
	}

	employerID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	job := &models.Job{
		EmployerID:      employerID,
		Title:           input.Title,
		Description:     input.Description,
		RequiredSkills:  helpers.RemoveDuplicates(input.RequiredSkills),
		ExperienceLevel: input.ExperienceLevel,
		BudgetMin:       input.BudgetMin,
		BudgetMax:       input.BudgetMax,
		RateType:        input.RateType,
		JobType:         input.JobType,
		Location:        input.Location,
	}

	created, err := js.jobRepo.CreateJob(ctx, job)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, nil)
	}

	js.audit.Record(ctx, employerID, "job.create", "job", created.ID.Hex(), nil)

	return created, nil
}

func (js *JobService) GetJob(ctx context.Context, id primitive.ObjectID) (*models.Job, error) {
	job, err := js.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	return job, nil
}

func (js *JobService) ListJobs(ctx context.Context, filter models.JobFilter, offset, limit int) ([]*models.Job, int, error) {
	jobs, total, err := js.jobRepo.ListJobs(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return jobs, total, nil
}

func (js *JobService) ListJobsByEmployer(ctx context.Context, employerID primitive.ObjectID, offset, limit int) ([]*models.Job, int, error) {
	jobs, total, err := js.jobRepo.ListJobsByEmployer(ctx, employerID, offset, limit)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return jobs, total, nil
}

type UpdateJobInput struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	BudgetMin      *float64 `json:"budget_min" validate:"omitempty,gte=0"`
	BudgetMax      *float64 `json:"budget_max" validate:"omitempty,gte=0"`
	Location       *string  `json:"location"`
}

func (js *JobService) UpdateJob(ctx context.Context, principal helpers.Principal, id primitive.ObjectID, input UpdateJobInput) (*models.Job, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	job, err := js.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	if !principal.IsOwner(job.EmployerID.Hex()) && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("only the posting employer can update this job")
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.RequiredSkills != nil {
		fields["required_skills"] = helpers.RemoveDuplicates(input.RequiredSkills)
	}
	if input.BudgetMin != nil {
		fields["budget_min"] = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		fields["budget_max"] = *input.BudgetMax
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	newMin := job.BudgetMin
	newMax := job.BudgetMax
	if input.BudgetMin != nil {
		newMin = *input.BudgetMin
	}
	if input.BudgetMax != nil {
		newMax = *input.BudgetMax
	}
	if newMin > 0 && newMax > 0 && newMin > newMax {
		return nil, apperrors.BadRequest("budget_min must not exceed budget_max")
	}

	updated, err := js.jobRepo.UpdateJob(ctx, id, fields)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	return updated, nil
}

// TransitionJob moves a job through open → {paused, closed} and
// paused → {open, closed}; closed is terminal.
func (js *JobService) TransitionJob(ctx context.Context, principal helpers.Principal, id primitive.ObjectID, to string) (*models.Job, error) {
	job, err := js.jobRepo.GetJobByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	if !principal.IsOwner(job.EmployerID.Hex()) && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("only the posting employer can change this job's status")
	}

	if !models.CanTransitionJob(job.Status, to) {
		return nil, apperrors.ErrInvalidTransition.WithDetails(map[string]string{
			"from": job.Status,
			"to":   to,
		})
	}

	// Compare-and-set on the observed status; a miss means a concurrent
	// transition won the race.
	if err := js.jobRepo.SetJobStatus(ctx, id, job.Status, to); err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrInvalidTransition.WithDetails(map[string]string{
			"from": job.Status,
			"to":   to,
		}))
	}

	actorID, _ := primitive.ObjectIDFromHex(principal.UserID)
	js.audit.Record(ctx, actorID, "job.status_change", "job", id.Hex(), map[string]interface{}{
		"from": job.Status,
		"to":   to,
	})

	job.Status = to
	return job, nil
}
