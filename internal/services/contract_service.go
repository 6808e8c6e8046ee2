package services

import (
	"context"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContractService struct {
	contractRepo      models.ContractRepo
	applicationRepo   models.ApplicationRepo
	jobRepo           models.JobRepo
	audit             *AuditService
	commissionPercent float64
}

func NewContractService(contractRepo models.ContractRepo, applicationRepo models.ApplicationRepo, jobRepo models.JobRepo, audit *AuditService, commissionPercent float64) *ContractService {
	return &ContractService{
		contractRepo:      contractRepo,
		applicationRepo:   applicationRepo,
		jobRepo:           jobRepo,
		audit:             audit,
		commissionPercent: commissionPercent,
	}
}

type MilestoneInput struct {
	Title  string  `json:"title" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type CreateContractInput struct {
	ApplicationID string           `json:"application_id" validate:"required"`
	Milestones    []MilestoneInput `json:"milestones" validate:"required,min=1,dive"`
}

// CreateContract derives a contract from an accepted application. Only the
// employer owning the referenced job may create it.
func (cs *ContractService) CreateContract(ctx context.Context, principal helpers.Principal, input CreateContractInput) (*models.Contract, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	applicationID, err := primitive.ObjectIDFromHex(input.ApplicationID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid application id")
	}

	app, err := cs.applicationRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrApplicationNotFound)
	}
	if app.Status != models.ApplicationStatusAccepted {
		return nil, apperrors.BadRequest("contracts require an accepted application")
	}

	job, err := cs.jobRepo.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrJobNotFound)
	}
	if !principal.IsOwner(job.EmployerID.Hex()) {
		return nil, apperrors.Forbidden("only the job's employer can create this contract")
	}

	milestones := make([]models.Milestone, 0, len(input.Milestones))
	for _, m := range input.Milestones {
		milestones = append(milestones, models.Milestone{
			Title:  m.Title,
			Amount: m.Amount,
		})
	}

	contract := &models.Contract{
		JobID:         job.ID,
		ApplicationID: app.ID,
		EmployerID:    job.EmployerID,
		DeveloperID:   app.DeveloperID,
		Milestones:    milestones,
	}

	created, err := cs.contractRepo.CreateContract(ctx, contract)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, nil)
	}

	cs.audit.Record(ctx, job.EmployerID, "contract.create", "contract", created.ID.Hex(), map[string]interface{}{
		"application_id": app.ID.Hex(),
	})

	return created, nil
}

func (cs *ContractService) GetContract(ctx context.Context, principal helpers.Principal, id primitive.ObjectID) (*models.Contract, error) {
	contract, err := cs.contractRepo.GetContractByID(ctx, id)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrContractNotFound)
	}

	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !contract.IsParty(userID) && !principal.IsAdmin() {
		return nil, apperrors.Forbidden("not a party to this contract")
	}

	return contract, nil
}

func (cs *ContractService) ListMine(ctx context.Context, principal helpers.Principal) ([]*models.Contract, error) {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	contracts, err := cs.contractRepo.ListContractsByParty(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return contracts, nil
}

// ListLedger returns the escrow transactions for a contract the caller is a
// party to. The ledger is readable even though money movement is unavailable.
func (cs *ContractService) ListLedger(ctx context.Context, principal helpers.Principal, contractID primitive.ObjectID) ([]*models.EscrowTransaction, error) {
	if _, err := cs.GetContract(ctx, principal, contractID); err != nil {
		return nil, err
	}

	txs, err := cs.contractRepo.ListEscrowByContract(ctx, contractID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return txs, nil
}

// The money-movement entry points below are deliberately unavailable. When a
// settlement mechanism exists they must, per operation: create a pending
// EscrowTransaction, invoke settlement, then mark the record completed or
// failed keyed by transaction id so a crash in between stays reconcilable.
// Release must additionally record the platform commission
// (commissionPercent of the milestone amount) as a distinct commission-type
// entry. Until then every call fails with NotImplemented and writes nothing.

func (cs *ContractService) FundEscrow(ctx context.Context, principal helpers.Principal, contractID primitive.ObjectID, amount float64) (*models.EscrowTransaction, error) {
	cs.recordAttempt(ctx, principal, "escrow.fund_attempt", contractID)
	return nil, apperrors.ErrEscrowUnavailable
}

func (cs *ContractService) ReleaseMilestone(ctx context.Context, principal helpers.Principal, contractID, milestoneID primitive.ObjectID) (*models.EscrowTransaction, error) {
	cs.recordAttempt(ctx, principal, "escrow.release_attempt", contractID)
	return nil, apperrors.ErrEscrowUnavailable
}

func (cs *ContractService) RefundEscrow(ctx context.Context, principal helpers.Principal, contractID primitive.ObjectID, amount float64) (*models.EscrowTransaction, error) {
	cs.recordAttempt(ctx, principal, "escrow.refund_attempt", contractID)
	return nil, apperrors.ErrEscrowUnavailable
}

func (cs *ContractService) recordAttempt(ctx context.Context, principal helpers.Principal, action string, contractID primitive.ObjectID) {
	actorID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return
	}
	cs.audit.Record(ctx, actorID, action, "contract", contractID.Hex(), nil)
}
