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

type reviewFixture struct {
	svc       *ReviewService
	profiles  *fakeProfileRepo
	contract  *models.Contract
	employer  helpers.Principal
	developer helpers.Principal
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	employerID := primitive.NewObjectID()
	developerID := primitive.NewObjectID()

	contracts := newFakeContractRepo()
	contract := &models.Contract{
		JobID:       primitive.NewObjectID(),
		EmployerID:  employerID,
		DeveloperID: developerID,
		Milestones:  []models.Milestone{{Title: "All", Amount: 1000}},
	}
	_, err := contracts.CreateContract(context.Background(), contract)
	require.NoError(t, err)

	profiles := newFakeProfileRepo()
	profiles.developers[developerID] = &models.Developer{UserID: developerID}

	return &reviewFixture{
		svc:       NewReviewService(&fakeReviewRepo{}, contracts, profiles, newFakeUserRepo(), testLogger()),
		profiles:  profiles,
		contract:  contract,
		employer:  helpers.Principal{UserID: employerID.Hex(), Role: models.RoleEmployer},
		developer: helpers.Principal{UserID: developerID.Hex(), Role: models.RoleDeveloper},
	}
}

func TestCreateReviewDerivesReviewee(t *testing.T) {
	f := newReviewFixture(t)

	review, err := f.svc.CreateReview(context.Background(), f.employer, f.contract.ID, CreateReviewInput{
		Rating:  4,
		Comment: "solid work",
	})
	require.NoError(t, err)
	assert.Equal(t, f.contract.DeveloperID, review.RevieweeID)

	review, err = f.svc.CreateReview(context.Background(), f.developer, f.contract.ID, CreateReviewInput{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, f.contract.EmployerID, review.RevieweeID)
}

func TestCreateReviewUpdatesDeveloperRating(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.CreateReview(context.Background(), f.employer, f.contract.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	assert.Equal(t, 4.0, f.profiles.developers[f.contract.DeveloperID].RatingAvg)
}

func TestCreateReviewOncePerContract(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.CreateReview(context.Background(), f.employer, f.contract.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	_, err = f.svc.CreateReview(context.Background(), f.employer, f.contract.ID, CreateReviewInput{Rating: 2})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicateReview))
}

func TestCreateReviewNonPartyForbidden(t *testing.T) {
	f := newReviewFixture(t)

	stranger := helpers.Principal{UserID: primitive.NewObjectID().Hex(), Role: models.RoleDeveloper}
	_, err := f.svc.CreateReview(context.Background(), stranger, f.contract.ID, CreateReviewInput{Rating: 5})

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	f := newReviewFixture(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.CreateReview(context.Background(), f.employer, f.contract.ID, CreateReviewInput{Rating: rating})
		assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "rating %d", rating)
	}
}

func TestListForUser(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.CreateReview(context.Background(), f.employer, f.contract.ID, CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	reviews, err := f.svc.ListForUser(context.Background(), f.contract.DeveloperID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	reviews, err = f.svc.ListForUser(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
