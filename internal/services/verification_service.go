package services

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/email"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
)

const otpLength = 6

type VerificationService struct {
	verificationRepo models.VerificationRepo
	sender           email.Sender
	lifetime         time.Duration
	logger           *slog.Logger
}

func NewVerificationService(verificationRepo models.VerificationRepo, sender email.Sender, lifetime time.Duration, logger *slog.Logger) *VerificationService {
	return &VerificationService{
		verificationRepo: verificationRepo,
		sender:           sender,
		lifetime:         lifetime,
		logger:           logger,
	}
}

// RequestCode generates a one-time code, stores it with its expiry and mails
// it. Requesting again replaces the outstanding code.
func (vs *VerificationService) RequestCode(ctx context.Context, emailAddr string) error {
	if err := models.Validate.Var(emailAddr, "required,email"); err != nil {
		return apperrors.BadRequest("invalid email address")
	}

	normalized := helpers.NormalizeEmail(emailAddr)
	otp, err := helpers.GenerateOTP(otpLength)
	if err != nil {
		return apperrors.Internal(err)
	}

	expiresAt := time.Now().Add(vs.lifetime)
	if err := vs.verificationRepo.UpsertVerification(ctx, normalized, otp, expiresAt); err != nil {
		return apperrors.Internal(err)
	}

	if err := vs.sender.SendVerificationCode(normalized, otp); err != nil {
		return apperrors.Internal(err)
	}

	return nil
}

// VerifyCode compares the presented code case-sensitively against the stored
// one and consumes it on success. Expired, absent and already-consumed codes
// all fail the same way; verification never creates a User.
func (vs *VerificationService) VerifyCode(ctx context.Context, emailAddr, code string) error {
	if code == "" {
		return apperrors.ErrInvalidOrExpiredCode
	}

	normalized := helpers.NormalizeEmail(emailAddr)
	record, err := vs.verificationRepo.GetActiveVerification(ctx, normalized)
	if err != nil {
		return apperrors.ErrInvalidOrExpiredCode
	}

	if time.Now().After(record.ExpiresAt) {
		return apperrors.ErrInvalidOrExpiredCode
	}

	if subtle.ConstantTimeCompare([]byte(record.OTP), []byte(code)) != 1 {
		return apperrors.ErrInvalidOrExpiredCode
	}

	if err := vs.verificationRepo.ConsumeVerification(ctx, record.ID); err != nil {
		return apperrors.Internal(err)
	}

	return nil
}
