// Package http provides HTTP handlers for governance administration.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/carbonledger/internal/governance/http/dto"
	governanceUseCase "github.com/allisson/carbonledger/internal/governance/usecase"
	"github.com/allisson/carbonledger/internal/httputil"
)

// GovernanceHandler handles HTTP requests for the governance config singleton.
type GovernanceHandler struct {
	governanceUseCase governanceUseCase.UseCase
	logger            *slog.Logger
}

// NewGovernanceHandler creates a new governance handler with required dependencies.
func NewGovernanceHandler(useCase governanceUseCase.UseCase, logger *slog.Logger) *GovernanceHandler {
	return &GovernanceHandler{
		governanceUseCase: useCase,
		logger:            logger,
	}
}

// InitializeHandler creates the governance config singleton.
// POST /v1/governance
// Returns 201 Created with the derived governance record, or 409 Conflict if
// governance is already initialized.
func (h *GovernanceHandler) InitializeHandler(c *gin.Context) {
	var req dto.InitializeGovernanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	record, err := h.governanceUseCase.Initialize(c.Request.Context(), dto.ToInitializeInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToGovernanceResponse(record))
}

// GetHandler retrieves the governance config singleton.
// GET /v1/governance
// Returns 200 OK with the governance record, or 404 Not Found before initialization.
func (h *GovernanceHandler) GetHandler(c *gin.Context) {
	record, err := h.governanceUseCase.Get(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToGovernanceResponse(record))
}
