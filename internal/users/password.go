package users

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const saltLength = 16

// HashPassword derives a salted SHA-256 digest of the password. The
// result embeds the salt as "salt$digest" so VerifyPassword needs no
// extra state.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	digest := sha256.Sum256(append(salt, []byte(password)...))

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(digest[:]), nil
}

// VerifyPassword reports whether the password matches a stored hash.
func VerifyPassword(stored, password string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}

	got := sha256.Sum256(append(salt, []byte(password)...))

	return subtle.ConstantTimeCompare(got[:], want) == 1
}
