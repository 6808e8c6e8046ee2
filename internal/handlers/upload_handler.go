package handlers

import (
	"io"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

// UploadAvatar accepts a multipart file field named "file", stores it in the
// media CDN and records the resulting URL on the caller's profile.
func UploadAvatar(cld *cloudinary.Cloudinary, p *services.ProfileService) gin.HandlerFunc {
	return uploadHandler(cld, helpers.AvatarFolder, func(c *gin.Context, url string, ps *services.ProfileService) error {
		principal, _ := requirePrincipal(c)
		return ps.SetAvatar(c.Request.Context(), principal, url)
	}, p)
}

func UploadResume(cld *cloudinary.Cloudinary, p *services.ProfileService) gin.HandlerFunc {
	return uploadHandler(cld, helpers.ResumeFolder, func(c *gin.Context, url string, ps *services.ProfileService) error {
		principal, _ := requirePrincipal(c)
		return ps.SetResume(c.Request.Context(), principal, url)
	}, p)
}

func uploadHandler(cld *cloudinary.Cloudinary, folder string, attach func(*gin.Context, string, *services.ProfileService) error, p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requirePrincipal(c); !ok {
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("file field is required"))
			return
		}
		if fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("file exceeds 10MB limit"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, err)
			return
		}

		result, err := helpers.UploadBytes(c.Request.Context(), cld, data, folder)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := attach(c, result.SecureURL, p); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, "File uploaded"))
	}
}
