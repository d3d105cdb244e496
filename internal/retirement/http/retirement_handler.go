// Package http provides HTTP handlers for credit retirement.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/carbonledger/internal/httputil"
	"github.com/allisson/carbonledger/internal/retirement/http/dto"
	retirementUseCase "github.com/allisson/carbonledger/internal/retirement/usecase"
)

// RetirementHandler handles HTTP requests for credit retirement.
type RetirementHandler struct {
	retirementUseCase retirementUseCase.UseCase
	logger            *slog.Logger
}

// NewRetirementHandler creates a new retirement handler with required dependencies.
func NewRetirementHandler(useCase retirementUseCase.UseCase, logger *slog.Logger) *RetirementHandler {
	return &RetirementHandler{
		retirementUseCase: useCase,
		logger:            logger,
	}
}

// RetireHandler burns credits and issues a retirement certificate.
// POST /v1/retirements - Requires the consumer certificate holder.
// Returns 201 Created with the retirement receipt.
func (h *RetirementHandler) RetireHandler(c *gin.Context) {
	var req dto.RetireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	receipt, err := h.retirementUseCase.Retire(c.Request.Context(), dto.ToRetireInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapReceiptToResponse(receipt))
}
