package users_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codecollab/editor-server/internal/users"
)

func TestHashPassword_VerifiesOriginal(t *testing.T) {
	t.Parallel()

	hash, err := users.HashPassword("s3cret")
	require.NoError(t, err)

	if !users.VerifyPassword(hash, "s3cret") {
		t.Error("expected hash to verify the original password")
	}

	if users.VerifyPassword(hash, "wrong") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_SaltsEachCall(t *testing.T) {
	t.Parallel()

	first, err := users.HashPassword("s3cret")
	require.NoError(t, err)

	second, err := users.HashPassword("s3cret")
	require.NoError(t, err)

	if first == second {
		t.Error("expected distinct salts to produce distinct hashes")
	}
}

func TestVerifyPassword_RejectsMalformedHashes(t *testing.T) {
	t.Parallel()

	malformed := []string{
		"",
		"nodollar",
		"zz$" + strings.Repeat("0", 64),
		strings.Repeat("0", 32) + "$zz",
	}

	for _, hash := range malformed {
		if users.VerifyPassword(hash, "s3cret") {
			t.Errorf("expected hash %q to be rejected", hash)
		}
	}
}
