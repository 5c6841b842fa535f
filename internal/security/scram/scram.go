// Package scram derives and verifies SCRAM credentials (RFC 5802) for the
// two supported mechanisms, SCRAM-SHA-256 and SCRAM-SHA-512. The credential
// store holding the derived material lives behind the controller; this
// package only computes it.
package scram

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Mechanism names as they appear in credential payloads. Matching is
// case-insensitive.
const (
	SHA256Name = "SCRAM-SHA-256"
	SHA512Name = "SCRAM-SHA-512"
)

// Minimum iteration counts per mechanism. Derivation never goes below these,
// whatever the caller asks for.
const (
	SHA256MinIterations = 4096
	SHA512MinIterations = 4096
)

const saltSize = 16

// Algorithm binds a mechanism name to its hash and iteration floor.
type Algorithm struct {
	Name          string
	MinIterations int
	newHash       func() hash.Hash
}

var (
	SHA256 = Algorithm{Name: SHA256Name, MinIterations: SHA256MinIterations, newHash: sha256.New}
	SHA512 = Algorithm{Name: SHA512Name, MinIterations: SHA512MinIterations, newHash: sha512.New}
)

// AlgorithmByName resolves a mechanism name, case-insensitively.
func AlgorithmByName(name string) (Algorithm, bool) {
	switch {
	case strings.EqualFold(name, SHA256Name):
		return SHA256, true
	case strings.EqualFold(name, SHA512Name):
		return SHA512, true
	}
	return Algorithm{}, false
}

// Credential is the derived secret material stored for one user. The
// password itself is never stored.
type Credential struct {
	Algorithm  string
	Salt       []byte
	Iterations int
	StoredKey  []byte
	ServerKey  []byte
}

// MakeCredentials derives a credential from password with a random salt,
// clamping iterations up to the algorithm's minimum.
func (a Algorithm) MakeCredentials(password string, iterations int) (Credential, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return Credential{}, fmt.Errorf("generating salt: %w", err)
	}
	return a.makeCredentials(password, salt, iterations), nil
}

func (a Algorithm) makeCredentials(password string, salt []byte, iterations int) Credential {
	if iterations < a.MinIterations {
		iterations = a.MinIterations
	}
	salted := pbkdf2.Key([]byte(password), salt, iterations, a.newHash().Size(), a.newHash)
	clientKey := a.hmac(salted, []byte("Client Key"))
	serverKey := a.hmac(salted, []byte("Server Key"))
	return Credential{
		Algorithm:  a.Name,
		Salt:       salt,
		Iterations: iterations,
		StoredKey:  a.sum(clientKey),
		ServerKey:  serverKey,
	}
}

// Verify re-derives the credential from password using c's salt and
// iteration count and compares the stored key in constant time.
func (c Credential) Verify(password string) bool {
	algo, ok := AlgorithmByName(c.Algorithm)
	if !ok {
		return false
	}
	derived := algo.makeCredentials(password, c.Salt, c.Iterations)
	return hmac.Equal(derived.StoredKey, c.StoredKey)
}

func (a Algorithm) hmac(key, msg []byte) []byte {
	mac := hmac.New(a.newHash, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

func (a Algorithm) sum(data []byte) []byte {
	h := a.newHash()
	h.Write(data)
	return h.Sum(nil)
}
