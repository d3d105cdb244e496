// Package http provides HTTP handlers for certificate issuance and credit
// token initialization.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/carbonledger/internal/certificate/http/dto"
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
	"github.com/allisson/carbonledger/internal/httputil"
)

// CertificateHandler handles HTTP requests for certificate operations.
type CertificateHandler struct {
	certificateUseCase certificateUseCase.UseCase
	logger             *slog.Logger
}

// NewCertificateHandler creates a new certificate handler with required dependencies.
func NewCertificateHandler(useCase certificateUseCase.UseCase, logger *slog.Logger) *CertificateHandler {
	return &CertificateHandler{
		certificateUseCase: useCase,
		logger:             logger,
	}
}

// IssueMinterCertHandler issues a minter certificate to a receiver.
// POST /v1/certificates/minter - Requires the governance authority.
// Returns 201 Created with the certificate and its controller record.
func (h *CertificateHandler) IssueMinterCertHandler(c *gin.Context) {
	var req dto.IssueMinterCertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	cert, err := h.certificateUseCase.IssueMinterCert(c.Request.Context(), dto.ToIssueMinterCertInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCertificateToResponse(cert))
}

// IssueConsumerCertHandler issues a consumer certificate to a receiver.
// POST /v1/certificates/consumer - Requires the caller to hold a minter certificate.
// Returns 201 Created with the certificate and its controller record.
func (h *CertificateHandler) IssueConsumerCertHandler(c *gin.Context) {
	var req dto.IssueConsumerCertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	cert, err := h.certificateUseCase.IssueConsumerCert(c.Request.Context(), dto.ToIssueConsumerCertInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCertificateToResponse(cert))
}

// InitCreditTokenHandler creates the credit token mint for a minter certificate.
// POST /v1/credit-tokens - Requires the caller to hold a minter certificate.
// Returns 201 Created with the mint and its derived mint authority record.
func (h *CertificateHandler) InitCreditTokenHandler(c *gin.Context) {
	var req dto.InitCreditTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, err := h.certificateUseCase.InitCreditToken(c.Request.Context(), dto.ToInitCreditTokenInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreditTokenToResponse(token))
}
