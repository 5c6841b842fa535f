package scram

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgorithmByName(t *testing.T) {
	for _, name := range []string{"SCRAM-SHA-256", "scram-sha-256", "Scram-Sha-256"} {
		algo, ok := AlgorithmByName(name)
		require.True(t, ok, "expected %q to resolve", name)
		assert.Equal(t, SHA256Name, algo.Name)
	}

	algo, ok := AlgorithmByName("scram-sha-512")
	require.True(t, ok)
	assert.Equal(t, SHA512Name, algo.Name)

	for _, name := range []string{"md5", "", "SCRAM-SHA-1"} {
		_, ok := AlgorithmByName(name)
		assert.False(t, ok, "expected %q to be rejected", name)
	}
}

func TestMakeCredentialsIterationFloor(t *testing.T) {
	cred, err := SHA256.MakeCredentials("secret", 1)
	require.NoError(t, err)
	assert.Equal(t, SHA256MinIterations, cred.Iterations)

	cred, err = SHA512.MakeCredentials("secret", 8192)
	require.NoError(t, err)
	assert.Equal(t, 8192, cred.Iterations)
}

func TestMakeCredentialsShape(t *testing.T) {
	cred, err := SHA512.MakeCredentials("secret", SHA512MinIterations)
	require.NoError(t, err)
	assert.Equal(t, SHA512Name, cred.Algorithm)
	assert.Len(t, cred.Salt, saltSize)
	assert.Len(t, cred.StoredKey, 64)
	assert.Len(t, cred.ServerKey, 64)

	cred256, err := SHA256.MakeCredentials("secret", SHA256MinIterations)
	require.NoError(t, err)
	assert.Len(t, cred256.StoredKey, 32)
}

func TestDerivationDeterministicGivenSalt(t *testing.T) {
	salt := []byte("0123456789abcdef")
	a := SHA256.makeCredentials("secret", salt, SHA256MinIterations)
	b := SHA256.makeCredentials("secret", salt, SHA256MinIterations)
	assert.True(t, bytes.Equal(a.StoredKey, b.StoredKey))
	assert.True(t, bytes.Equal(a.ServerKey, b.ServerKey))

	other := SHA256.makeCredentials("other", salt, SHA256MinIterations)
	assert.False(t, bytes.Equal(a.StoredKey, other.StoredKey))
}

func TestVerify(t *testing.T) {
	cred, err := SHA256.MakeCredentials("secret", SHA256MinIterations)
	require.NoError(t, err)

	assert.True(t, cred.Verify("secret"))
	assert.False(t, cred.Verify("wrong"))

	cred.Algorithm = "md5"
	assert.False(t, cred.Verify("secret"))
}

func TestRandomSaltsDiffer(t *testing.T) {
	a, err := SHA256.MakeCredentials("secret", SHA256MinIterations)
	require.NoError(t, err)
	b, err := SHA256.MakeCredentials("secret", SHA256MinIterations)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Salt, b.Salt))
	assert.False(t, bytes.Equal(a.StoredKey, b.StoredKey))
}
