package handlers

import (
	"net/http"

	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
)

func ApplyToJob(a *services.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		jobID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			CoverLetter string `json:"cover_letter"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		app, err := a.Apply(c.Request.Context(), principal, jobID, input.CoverLetter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(app, "Application submitted"))
	}
}

func ListJobApplications(a *services.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		jobID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		apps, err := a.ListForJob(c.Request.Context(), principal, jobID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(apps, ""))
	}
}

func ListMyApplications(a *services.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		apps, err := a.ListMine(c.Request.Context(), principal)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(apps, ""))
	}
}

func TransitionApplication(a *services.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		app, err := a.Transition(c.Request.Context(), principal, id, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(app, "Application status updated"))
	}
}
