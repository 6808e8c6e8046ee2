package services

import (
	"context"
	"log/slog"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviewRepo   models.ReviewRepo
	contractRepo models.ContractRepo
	profileRepo  models.ProfileRepo
	userRepo     models.UserRepo
	logger       *slog.Logger
}

func NewReviewService(reviewRepo models.ReviewRepo, contractRepo models.ContractRepo, profileRepo models.ProfileRepo, userRepo models.UserRepo, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		contractRepo: contractRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview lets either contract party review the other, once per
// contract. The reviewee is derived as the other party.
func (rs *ReviewService) CreateReview(ctx context.Context, principal helpers.Principal, contractID primitive.ObjectID, input CreateReviewInput) (*models.Review, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	reviewerID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	contract, err := rs.contractRepo.GetContractByID(ctx, contractID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrContractNotFound)
	}
	if !contract.IsParty(reviewerID) {
		return nil, apperrors.Forbidden("only contract parties can leave a review")
	}

	revieweeID := contract.EmployerID
	if reviewerID == contract.EmployerID {
		revieweeID = contract.DeveloperID
	}

	review := &models.Review{
		ContractID: contractID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	created, err := rs.reviewRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, apperrors.FromMongo(err, apperrors.ErrDuplicateReview, nil)
	}

	rs.refreshRating(ctx, revieweeID)

	return created, nil
}

// refreshRating recomputes the reviewee's developer rating average. Employers
// have no stored aggregate, so a missing developer profile is fine.
func (rs *ReviewService) refreshRating(ctx context.Context, revieweeID primitive.ObjectID) {
	avg, err := rs.reviewRepo.AverageRatingForReviewee(ctx, revieweeID)
	if err != nil {
		rs.logger.Error("failed to compute rating average", "reviewee_id", revieweeID.Hex(), "error", err)
		return
	}
	if err := rs.profileRepo.SetDeveloperRating(ctx, revieweeID, avg); err != nil {
		rs.logger.Error("failed to store rating average", "reviewee_id", revieweeID.Hex(), "error", err)
	}
}

func (rs *ReviewService) ListForUser(ctx context.Context, revieweeID primitive.ObjectID) ([]*models.Review, error) {
	reviews, err := rs.reviewRepo.ListReviewsByReviewee(ctx, revieweeID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reviews, nil
}
