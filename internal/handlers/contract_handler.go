package handlers

import (
	"net/http"

	"github.com/devlink/server/internal/models"
	"github.com/devlink/server/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateContract(s *services.ContractService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		var input services.CreateContractInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		contract, err := s.CreateContract(c.Request.Context(), principal, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(contract, "Contract created"))
	}
}

func GetContract(s *services.ContractService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		contract, err := s.GetContract(c.Request.Context(), principal, id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(contract, ""))
	}
}

func ListMyContracts(s *services.ContractService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}

		contracts, err := s.ListMine(c.Request.Context(), principal)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(contracts, ""))
	}
}

func ListEscrowLedger(s *services.ContractService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		entries, err := s.ListLedger(c.Request.Context(), principal, id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(entries, ""))
	}
}

func FundEscrow(s *services.ContractService) gin.HandlerFunc {
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
			Amount float64 `json:"amount"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		entry, err := s.FundEscrow(c.Request.Context(), principal, id, input.Amount)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(entry, ""))
	}
}

func ReleaseMilestone(s *services.ContractService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := requirePrincipal(c)
		if !ok {
			return
		}
		contractID, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		milestoneID, ok := parseIDParam(c, "milestoneId")
		if !ok {
			return
		}

		entry, err := s.ReleaseMilestone(c.Request.Context(), principal, contractID, milestoneID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(entry, ""))
	}
}

func RefundEscrow(s *services.ContractService) gin.HandlerFunc {
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
			Amount float64 `json:"amount"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		entry, err := s.RefundEscrow(c.Request.Context(), principal, id, input.Amount)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(entry, ""))
	}
}
