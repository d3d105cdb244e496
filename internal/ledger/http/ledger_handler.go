// Package http provides HTTP handlers for credit ledger operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/carbonledger/internal/httputil"
	"github.com/allisson/carbonledger/internal/ledger/http/dto"
	ledgerUseCase "github.com/allisson/carbonledger/internal/ledger/usecase"
)

// LedgerHandler handles HTTP requests for credit ledger operations.
type LedgerHandler struct {
	ledgerUseCase ledgerUseCase.UseCase
	logger        *slog.Logger
}

// NewLedgerHandler creates a new ledger handler with required dependencies.
func NewLedgerHandler(useCase ledgerUseCase.UseCase, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerUseCase: useCase,
		logger:        logger,
	}
}

// MintCreditsHandler mints credits against a certificate's quota.
// POST /v1/ledgers/:cert_mint/mint - Requires the minter certificate holder.
// Returns 200 OK with the updated ledger counters.
func (h *LedgerHandler) MintCreditsHandler(c *gin.Context) {
	certMint := c.Param("cert_mint")
	if certMint == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("cert_mint cannot be empty"), h.logger)
		return
	}

	var req dto.MintCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	ledger, err := h.ledgerUseCase.MintCredits(c.Request.Context(), dto.ToMintCreditsInput(req, certMint))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLedgerToResponse(ledger))
}

// SetQuotaHandler overwrites a certificate's available credit quota.
// PUT /v1/ledgers/:cert_mint/quota - Requires the governance authority.
// Returns 200 OK with the updated ledger counters.
func (h *LedgerHandler) SetQuotaHandler(c *gin.Context) {
	certMint := c.Param("cert_mint")
	if certMint == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("cert_mint cannot be empty"), h.logger)
		return
	}

	var req dto.SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	ledger, err := h.ledgerUseCase.SetQuota(c.Request.Context(), dto.ToSetQuotaInput(req, certMint))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLedgerToResponse(ledger))
}

// GetLedgerHandler reads a certificate's ledger counters.
// GET /v1/ledgers/:cert_mint
// Returns 200 OK with the ledger snapshot.
func (h *LedgerHandler) GetLedgerHandler(c *gin.Context) {
	certMint := c.Param("cert_mint")
	if certMint == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("cert_mint cannot be empty"), h.logger)
		return
	}

	ledger, err := h.ledgerUseCase.GetLedger(c.Request.Context(), certMint)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLedgerToResponse(ledger))
}
