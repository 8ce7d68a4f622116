package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// HashParams defines the tuning parameters for Argon2id hashing.
type HashParams struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// DefaultHashParams is used for every stored password.
var DefaultHashParams = HashParams{
	Time:       1,
	Memory:     64 * 1024,
	Threads:    4,
	KeyLength:  32,
	SaltLength: 16,
}

// errMalformedHash is returned for stored hashes that cannot be decoded.
var errMalformedHash = errors.New("malformed password hash")

// HashPassword hashes a password as argon2id$time$memory$threads$salt$hash.
func HashPassword(password string, params HashParams) (string, error) {
	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLength)
	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		params.Time, params.Memory, params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// The comparison runs in constant time.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "argon2id" {
		return false, errMalformedHash
	}

	var nums [3]uint64
	for i, raw := range parts[1:4] {
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return false, fmt.Errorf("%w: %v", errMalformedHash, err)
		}
		nums[i] = n
	}
	if nums[2] == 0 || nums[2] > 255 {
		return false, fmt.Errorf("%w: thread count must be between 1 and 255", errMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", errMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: hash", errMalformedHash)
	}

	got := argon2.IDKey([]byte(password), salt, uint32(nums[0]), uint32(nums[1]), uint8(nums[2]), uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
