package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/devlink/server/internal/apperrors"
	"github.com/devlink/server/internal/helpers"
	"github.com/devlink/server/internal/middleware"
	"github.com/devlink/server/internal/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError renders any error through the shared taxonomy. Unknown errors
// are attached to the context so the error middleware logs them.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode >= http.StatusInternalServerError {
			_ = c.Error(appErr)
		}
		c.JSON(appErr.HTTPCode, models.ErrorDetailResponse(string(appErr.Code), appErr.Message, appErr.Details))
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal server error"))
}

func requirePrincipal(c *gin.Context) (helpers.Principal, bool) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
		return helpers.Principal{}, false
	}
	return principal, true
}

func parseIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name+" parameter"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// parsePagination reads limit and offset query parameters with bounds so a
// single request cannot page the whole collection.
func parsePagination(c *gin.Context) (offset, limit int, ok bool) {
	limitStr := c.DefaultQuery("limit", "20")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
		return 0, 0, false
	}
	offset, err = strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid offset parameter"))
		return 0, 0, false
	}
	return offset, limit, true
}
