package backend

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "peoplectl/internal/errors"
)

func TestMintAndVerify(t *testing.T) {
	minter := NewTokenMinter("secret", time.Hour)

	token, err := minter.Mint("alice")
	require.NoError(t, err)

	subject, err := minter.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "alice", subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenMinter("secret-a", time.Hour).Mint("alice")
	require.NoError(t, err)

	_, err = NewTokenMinter("secret-b", time.Hour).Verify(token)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	minter := NewTokenMinter("secret", time.Minute)

	issued := time.Now()
	NowTimeFunc = func() time.Time { return issued }
	defer func() { NowTimeFunc = time.Now }()

	token, err := minter.Mint("alice")
	require.NoError(t, err)

	NowTimeFunc = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = minter.Verify(token)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	minter := NewTokenMinter("secret", time.Hour)

	_, err := minter.Verify("not-a-jwt")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLongPasswordsTruncateConsistently(t *testing.T) {
	long := strings.Repeat("x", 100)

	hash, err := hashPassword(long)
	require.NoError(t, err)
	require.True(t, checkPasswordHash(long, hash))
	// Only the first 72 bytes participate in the hash.
	require.True(t, checkPasswordHash(strings.Repeat("x", 72)+"different-tail", hash))
	require.False(t, checkPasswordHash("wrong", hash))
}
