package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := DeriveAddress(RoleMinter, "cert-mint-address", 255)
		b := DeriveAddress(RoleMinter, "cert-mint-address", 255)
		assert.Equal(t, a, b)
		assert.Len(t, a, 64)
	})

	t.Run("bump changes address", func(t *testing.T) {
		a := DeriveAddress(RoleMinter, "cert-mint-address", 255)
		b := DeriveAddress(RoleMinter, "cert-mint-address", 254)
		assert.NotEqual(t, a, b)
	})

	t.Run("role and resource cannot alias", func(t *testing.T) {
		// (m, "ab") vs (ma, "b"): the separator keeps the digest inputs distinct.
		a := DeriveAddress(Role("m"), "ab", 255)
		b := DeriveAddress(Role("ma"), "b", 255)
		assert.NotEqual(t, a, b)
	})
}

func TestSeed(t *testing.T) {
	t.Run("parts cannot alias", func(t *testing.T) {
		// ("ab", "c") vs ("a", "bc"): the separator keeps the joined seeds distinct.
		a := DeriveAddress(RoleConsumer, Seed("ab", "c"), 255)
		b := DeriveAddress(RoleConsumer, Seed("a", "bc"), 255)
		assert.NotEqual(t, a, b)
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Seed("credit-mint", "receiver"), Seed("credit-mint", "receiver"))
	})
}

func TestFindAddress(t *testing.T) {
	t.Run("finds acceptable bump", func(t *testing.T) {
		addr, bump, err := FindAddress(RoleMintAuthority, "credit-mint-address")
		require.NoError(t, err)
		assert.Equal(t, DeriveAddress(RoleMintAuthority, "credit-mint-address", bump), addr)
		assert.NotEqual(t, "00", addr[:2])
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, _, err := FindAddress(Role("bogus"), "resource")
		assert.ErrorIs(t, err, ErrInvalidDerivation)
	})
}

func TestVerifyRecord(t *testing.T) {
	addr, bump, err := FindAddress(RoleConsumer, "consumer-cert-mint")
	require.NoError(t, err)

	valid := &Record{
		Address:  addr,
		Role:     RoleConsumer,
		Resource: "consumer-cert-mint",
		Bump:     bump,
	}

	t.Run("valid record", func(t *testing.T) {
		assert.NoError(t, VerifyRecord(valid))
	})

	t.Run("mismatched bump", func(t *testing.T) {
		rec := *valid
		rec.Bump = bump - 1
		assert.ErrorIs(t, VerifyRecord(&rec), ErrAuthorityMismatch)
	})

	t.Run("mismatched resource", func(t *testing.T) {
		rec := *valid
		rec.Resource = "other-cert-mint"
		assert.ErrorIs(t, VerifyRecord(&rec), ErrAuthorityMismatch)
	})

	t.Run("nil record", func(t *testing.T) {
		assert.ErrorIs(t, VerifyRecord(nil), ErrAuthorityMismatch)
	})
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleGovernance, RoleMinter, RoleConsumer, RoleMintAuthority, RoleCreditToken} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("x").Valid())
	assert.False(t, Role("").Valid())
}
