package handlers

import (
	"net/http"
	"strings"

	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateJob(j *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		var input services.CreateJobInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		job, err := j.CreateJob(c.Request.Context(), principal, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(job, "Job posted successfully"))
	}
}

func GetJob(j *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		job, err := j.GetJob(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(job, ""))
	}
}

// ListJobs is the public board. Skills arrive comma separated and match
// jobs requiring all of them.
func ListJobs(j *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		filter := models.JobFilter{
			ExperienceLevel: c.Query("experience_level"),
			JobType:         c.Query("job_type"),
			Status:          c.DefaultQuery("status", models.JobStatusOpen),
		}
		if raw := c.Query("skills"); raw != "" {
			for _, s := range strings.Split(raw, ",") {
				if s = strings.TrimSpace(s); s != "" {
					filter.Skills = append(filter.Skills, s)
				}
			}
		}

		jobs, total, err := j.ListJobs(c.Request.Context(), filter, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(jobs, page, limit, total))
	}
}

func ListMyJobs(j *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		employerID, err := primitive.ObjectIDFromHex(principal.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		jobs, total, err := j.ListJobsByEmployer(c.Request.Context(), employerID, offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(jobs, page, limit, total))
	}
}

func UpdateJob(j *services.JobService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var input services.UpdateJobInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		job, err := j.UpdateJob(c.Request.Context(), principal, id, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(job, "Job updated"))
	}
}

func TransitionJob(j *services.JobService) gin.HandlerFunc {
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

		job, err := j.TransitionJob(c.Request.Context(), principal, id, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(job, "Job status updated"))
	}
}
