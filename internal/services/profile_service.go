package services

import (
	"context"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProfileService struct {
	profileRepo models.ProfileRepo
}

func NewProfileService(profileRepo models.ProfileRepo) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// GetDeveloperProfile is public: any caller may view a developer's profile.
func (ps *ProfileService) GetDeveloperProfile(ctx context.Context, userID primitive.ObjectID) (*models.Developer, error) {
	dev, err := ps.profileRepo.GetDeveloperByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrProfileNotFound)
	}
	return dev, nil
}

func (ps *ProfileService) GetEmployerProfile(ctx context.Context, userID primitive.ObjectID) (*models.Employer, error) {
	emp, err := ps.profileRepo.GetEmployerByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrProfileNotFound)
	}
	return emp, nil
}

type UpdateDeveloperInput struct {
	Bio             *string  `json:"bio"`
	Skills          []string `json:"skills"`
	YearsExperience *int     `json:"years_experience" validate:"omitempty,gte=0"`
	PortfolioLinks  []string `json:"portfolio_links" validate:"omitempty,dive,url"`
	GithubURL       *string  `json:"github_url" validate:"omitempty,url"`
	Availability    *string  `json:"availability" validate:"omitempty,oneof=full-time part-time contract"`
	RateType        *string  `json:"rate_type" validate:"omitempty,oneof=hourly monthly project"`
	RateAmount      *float64 `json:"rate_amount" validate:"omitempty,gte=0"`
	Location        *string  `json:"location"`
}

func (ps *ProfileService) UpdateDeveloperProfile(ctx context.Context, principal helpers.Principal, input UpdateDeveloperInput) (*models.Developer, error) {
	if !principal.IsDeveloper() {
		return nil, apperrors.Forbidden("only developers have a developer profile")
	}
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	fields := map[string]interface{}{}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if input.Skills != nil {
		fields["skills"] = helpers.RemoveDuplicates(input.Skills)
	}
	if input.YearsExperience != nil {
		fields["years_experience"] = *input.YearsExperience
	}
	if input.PortfolioLinks != nil {
		fields["portfolio_links"] = input.PortfolioLinks
	}
	if input.GithubURL != nil {
		fields["github_url"] = *input.GithubURL
	}
	if input.Availability != nil {
		fields["availability"] = *input.Availability
	}
	if input.RateType != nil {
		fields["rate_type"] = *input.RateType
	}
	if input.RateAmount != nil {
		fields["rate_amount"] = *input.RateAmount
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	dev, err := ps.profileRepo.UpdateDeveloper(ctx, userID, fields)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrProfileNotFound)
	}
	return dev, nil
}

type UpdateEmployerInput struct {
	CompanyName *string `json:"company_name"`
	Website     *string `json:"website" validate:"omitempty,url"`
	About       *string `json:"about"`
	Location    *string `json:"location"`
}

func (ps *ProfileService) UpdateEmployerProfile(ctx context.Context, principal helpers.Principal, input UpdateEmployerInput) (*models.Employer, error) {
	if !principal.IsEmployer() {
		return nil, apperrors.Forbidden("only employers have an employer profile")
	}
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	fields := map[string]interface{}{}
	if input.CompanyName != nil {
		if *input.CompanyName == "" {
			return nil, apperrors.BadRequest("company_name must not be empty")
		}
		fields["company_name"] = *input.CompanyName
	}
	if input.Website != nil {
		fields["website"] = *input.Website
	}
	if input.About != nil {
		fields["about"] = *input.About
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if len(fields) == 0 {
		return nil, apperrors.BadRequest("no fields to update")
	}

	emp, err := ps.profileRepo.UpdateEmployer(ctx, userID, fields)
	if err != nil {
		return nil, apperrors.FromMongo(err, nil, apperrors.ErrProfileNotFound)
	}
	return emp, nil
}

// SetAvatar stores the uploaded media URL on whichever profile the caller has.
func (ps *ProfileService) SetAvatar(ctx context.Context, principal helpers.Principal, url string) error {
	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	fields := map[string]interface{}{"avatar_url": url}
	switch {
	case principal.IsDeveloper():
		_, err = ps.profileRepo.UpdateDeveloper(ctx, userID, fields)
	case principal.IsEmployer():
		_, err = ps.profileRepo.UpdateEmployer(ctx, userID, fields)
	default:
		return apperrors.Forbidden("no profile to attach an avatar to")
	}
	if err != nil {
		return apperrors.FromMongo(err, nil, apperrors.ErrProfileNotFound)
	}
	return nil
}

// SetResume stores the uploaded resume URL; developers only.
func (ps *ProfileService) SetResume(ctx context.Context, principal helpers.Principal, url string) error {
	if !principal.IsDeveloper() {
		return apperrors.Forbidden("only developers can upload a resume")
	}

	userID, err := primitive.ObjectIDFromHex(principal.UserID)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if _, err := ps.profileRepo.UpdateDeveloper(ctx, userID, map[string]interface{}{"resume_url": url}); err != nil {
		return apperrors.FromMongo(err, nil, apperrors.ErrProfileNotFound)
	}
	return nil
}
