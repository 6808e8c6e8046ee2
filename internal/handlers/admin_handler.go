package handlers

import (
	"net/http"

	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
)

func ListAuditLogs(a *services.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, limit, ok := parsePagination(c)
		if !ok {
			return
		}

		entries, total, err := a.List(c.Request.Context(), offset, limit)
		if err != nil {
			respondError(c, err)
			return
		}

		page := (offset / limit) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(entries, page, limit, total))
	}
}

func GetAdminConfig(s *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		cfg, err := s.GetConfig(c.Request.Context(), principal, c.Param("key"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(cfg, ""))
	}
}

func SetAdminConfig(s *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		var input struct {
			Value interface{} `json:"value"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		cfg, err := s.SetConfig(c.Request.Context(), principal, c.Param("key"), input.Value)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(cfg, "Config updated"))
	}
}

func SetUserStatus(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		targetID, ok := parseIDParam(c, "id")
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

		user, err := u.SetUserStatus(c.Request.Context(), principal, targetID, input.Status)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "User status updated"))
	}
}
