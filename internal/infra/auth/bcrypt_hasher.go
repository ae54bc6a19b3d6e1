package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"runtime"

	"bazaar/config"
	"bazaar/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// Hash and Check share a weighted semaphore that caps concurrent bcrypt work.
// Passwords are reduced to a base64 SHA-256 digest first, so bcrypt never sees more than 44 bytes.
type bcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost, workers := bcrypt.DefaultCost, 0
	if cfg != nil && cfg.Auth != nil {
		cost, workers = cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes
	}

	return newBcryptHasher(cost, workers)
}

func newBcryptHasher(cost, workers int) *bcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &bcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(workers)),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "waiting for hasher slot")
	}
	defer h.sem.Release(1)

	bytes, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	// err is nil if the password and hash match.
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password)) == nil
}

func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(encoded, sum[:])

	return encoded
}
