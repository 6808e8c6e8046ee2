package handlers

import (
	"net/http"

	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
)

// GetDeveloperProfile is publicly readable so employers can evaluate
// candidates before inviting them.
func GetDeveloperProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		dev, err := p.GetDeveloperProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(dev, ""))
	}
}

func GetEmployerProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		emp, err := p.GetEmployerProfile(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(emp, ""))
	}
}

func UpdateDeveloperProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		var input services.UpdateDeveloperInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		dev, err := p.UpdateDeveloperProfile(c.Request.Context(), principal, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(dev, "Profile updated"))
	}
}

func UpdateEmployerProfile(p *services.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		var input services.UpdateEmployerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		emp, err := p.UpdateEmployerProfile(c.Request.Context(), principal, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(emp, "Profile updated"))
	}
}
