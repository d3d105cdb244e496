// Package integration provides integration tests for audit log chain integrity.
package integration

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/carbonledger/internal/audit/domain"
	certificateDTO "github.com/allisson/carbonledger/internal/certificate/http/dto"
	governanceDTO "github.com/allisson/carbonledger/internal/governance/http/dto"
	"github.com/allisson/carbonledger/internal/testutil"
)

// TestAuditChain_TamperDetection verifies that modifying a persisted audit
// entry breaks chain verification, both through the use case and the HTTP
// surface.
func TestAuditChain_TamperDetection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbConfigs := []struct {
		name   string
		driver string
	}{
		{name: "PostgreSQL", driver: "postgres"},
		{name: "MySQL", driver: "mysql"},
	}

	for _, dbConfig := range dbConfigs {
		t.Run(dbConfig.name, func(t *testing.T) {
			if dbConfig.driver == "postgres" {
				testutil.SkipIfNoPostgres(t)
			} else {
				testutil.SkipIfNoMySQL(t)
			}

			testCtx := setupIntegrationTest(t, dbConfig.driver)
			defer teardownIntegrationTest(t, testCtx)

			// Produce a few chained audit entries through real mutations
			resp, body := testCtx.makeRequest(t, http.MethodPost, "/v1/governance",
				governanceDTO.InitializeGovernanceRequest{Authority: "governance-principal"})
			require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

			resp, body = testCtx.makeRequest(t, http.MethodPost, "/v1/certificates/minter",
				certificateDTO.IssueMinterCertRequest{
					Authority: "governance-principal",
					Receiver:  "minter-principal",
					Name:      "Forest Restoration Project",
					Symbol:    "FRP",
					URI:       "https://example.com/projects/frp.json",
				})
			require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

			t.Run("ChainVerifiesBeforeTampering", func(t *testing.T) {
				auditUseCase, err := testCtx.container.AuditUseCase()
				require.NoError(t, err, "failed to get audit use case")

				result, err := auditUseCase.VerifyChain(context.Background())
				require.NoError(t, err, "chain verification should succeed")
				assert.True(t, result.Verified)
				assert.NotZero(t, result.Entries)
			})

			t.Run("TamperedEntryFailsVerification", func(t *testing.T) {
				// Modify the first entry's action directly in the database
				tamperQuery := "UPDATE audit_entries SET action = 'tampered' WHERE sequence = 1"
				result, err := testCtx.db.Exec(tamperQuery)
				require.NoError(t, err, "failed to tamper with audit entry")
				rows, err := result.RowsAffected()
				require.NoError(t, err)
				require.Equal(t, int64(1), rows, "expected to tamper exactly one entry")

				auditUseCase, err := testCtx.container.AuditUseCase()
				require.NoError(t, err, "failed to get audit use case")

				_, err = auditUseCase.VerifyChain(context.Background())
				require.Error(t, err, "chain verification should fail after tampering")
				assert.True(t, errors.Is(err, auditDomain.ErrSignatureInvalid),
					"expected signature error, got: %v", err)
			})

			t.Run("VerifyEndpointReportsUnauthorized", func(t *testing.T) {
				resp, body := testCtx.makeRequest(t, http.MethodGet, "/v1/audit-entries/verify", nil)
				assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "body: %s", body)
			})
		})
	}
}
