// Package http provides HTTP handlers for the audit trail.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/carbonledger/internal/audit/http/dto"
	auditUseCase "github.com/allisson/carbonledger/internal/audit/usecase"
	"github.com/allisson/carbonledger/internal/httputil"
)

// AuditHandler handles HTTP requests for the audit trail.
type AuditHandler struct {
	auditUseCase auditUseCase.UseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler with required dependencies.
func NewAuditHandler(useCase auditUseCase.UseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditUseCase: useCase,
		logger:       logger,
	}
}

// ListHandler retrieves audit entries in sequence order.
// GET /v1/audit-entries?from_sequence=1&limit=50
// Returns 200 OK with the requested window of the chain.
func (h *AuditHandler) ListHandler(c *gin.Context) {
	fromSequence, limit, err := httputil.ParseSequenceWindow(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	entries, err := h.auditUseCase.List(c.Request.Context(), fromSequence, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEntriesToListResponse(entries))
}

// VerifyHandler walks the full audit chain and verifies every signature and link.
// GET /v1/audit-entries/verify
// Returns 200 OK with the verification result.
func (h *AuditHandler) VerifyHandler(c *gin.Context) {
	result, err := h.auditUseCase.VerifyChain(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerifyResultToResponse(result))
}
