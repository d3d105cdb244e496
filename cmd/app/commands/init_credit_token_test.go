package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authorityDomain "github.com/allisson/carbonledger/internal/authority/domain"
	certificateDomain "github.com/allisson/carbonledger/internal/certificate/domain"
	certificateUseCase "github.com/allisson/carbonledger/internal/certificate/usecase"
	certificateMocks "github.com/allisson/carbonledger/internal/certificate/usecase/mocks"
)

func TestRunInitCreditToken(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	params := InitCreditTokenParams{
		Creator:  "minter-principal",
		Decimals: 0,
		Name:     "Forest Carbon Credit",
		Symbol:   "FCC",
		URI:      "https://example.com/fcc.json",
	}

	creditToken := &certificateDomain.CreditToken{
		CreditMint: "credit-mint-address",
		Decimals:   0,
		MintAuthority: &authorityDomain.Record{
			ID:      uuid.Must(uuid.NewV7()),
			Address: "mint-authority-address",
			Role:    authorityDomain.RoleMintAuthority,
			Owner:   "minter-principal",
		},
	}

	t.Run("success", func(t *testing.T) {
		mockUseCase := &certificateMocks.MockCertificateUseCase{}
		mockUseCase.On("InitCreditToken", ctx, certificateUseCase.InitCreditTokenInput{
			Creator:  params.Creator,
			Decimals: params.Decimals,
			Name:     params.Name,
			Symbol:   params.Symbol,
			URI:      params.URI,
		}).Return(creditToken, nil)

		var out bytes.Buffer
		err := RunInitCreditToken(ctx, mockUseCase, logger, &out, params, "text")
		require.NoError(t, err)
		require.Contains(t, out.String(), "Credit token initialized")
		require.Contains(t, out.String(), "credit-mint-address")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("not-certificate-holder", func(t *testing.T) {
		mockUseCase := &certificateMocks.MockCertificateUseCase{}
		mockUseCase.On("InitCreditToken", ctx, certificateUseCase.InitCreditTokenInput{
			Creator:  params.Creator,
			Decimals: params.Decimals,
			Name:     params.Name,
			Symbol:   params.Symbol,
			URI:      params.URI,
		}).Return(nil, certificateDomain.ErrNotCertificateHolder)

		var out bytes.Buffer
		err := RunInitCreditToken(ctx, mockUseCase, logger, &out, params, "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to initialize credit token")
		mockUseCase.AssertExpectations(t)
	})
}
