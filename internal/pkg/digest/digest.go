// Package digest provides one-way transformations of plaintext secrets to
// stored digests. The plaintext is never persisted or logged; callers only
// ever compare digests.
package digest

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// Hasher turns a plaintext secret into a stored digest and checks a
// candidate secret against one.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, stored string) bool
}

// SHA256Hasher is the reference scheme: deterministic, unsalted,
// single-pass SHA-256 encoded as standard base64. Verify is plain digest
// equality. Deterministic hashing is a known weakness kept for behavioral
// compatibility; see BcryptHasher for the hardened alternative.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(secret string) (string, error) {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func (h SHA256Hasher) Verify(secret, stored string) bool {
	digest, _ := h.Hash(secret)
	return digest == stored
}

// BcryptHasher is the salted, slow scheme. Digests are not deterministic,
// so Verify must go through bcrypt's comparison.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(secret, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}

// ForScheme returns the Hasher for a configured scheme name. Unknown or
// empty names fall back to the reference SHA-256 scheme.
func ForScheme(scheme string) Hasher {
	if scheme == "bcrypt" {
		return BcryptHasher{}
	}
	return SHA256Hasher{}
}
