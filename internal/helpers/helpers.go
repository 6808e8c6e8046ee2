package helpers

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"golang.org/x/crypto/bcrypt"
)

const (
	AvatarFolder = "avatars"
	ResumeFolder = "resumes"
)

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashed), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasUpper && hasNumber
}

// GenerateOTP returns n random decimal digits.
func GenerateOTP(n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		digit, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate otp: %v", err)
		}
		sb.WriteString(digit.String())
	}
	return sb.String(), nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

func RemoveDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	return result
}

// UploadResult carries back what the media host returned.
type UploadResult struct {
	SecureURL string
	PublicID  string
}

func UploadBytes(ctx context.Context, cld *cloudinary.Cloudinary, data []byte, folder string) (*UploadResult, error) {
	res, err := cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"devlink"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload media: %v", err)
	}

	return &UploadResult{
		SecureURL: res.SecureURL,
		PublicID:  res.PublicID,
	}, nil
}
