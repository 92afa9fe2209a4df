package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashes use PBKDF2-SHA256 in passlib's modular-crypt encoding:
// $pbkdf2-sha256$<rounds>$<salt>$<checksum>, salt and checksum in passlib's
// adapted base64 ("." instead of "+", no padding). Existing hashes produced
// by the previous deployment verify unchanged.
const (
	pbkdf2Rounds  = 29000
	pbkdf2SaltLen = 16
	pbkdf2KeyLen  = 32
	pbkdf2Prefix  = "pbkdf2-sha256"
)

// HashPassword derives a salted PBKDF2-SHA256 hash of the password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, pbkdf2Rounds, pbkdf2KeyLen, sha256.New)

	return fmt.Sprintf("$%s$%d$%s$%s",
		pbkdf2Prefix,
		pbkdf2Rounds,
		ab64Encode(salt),
		ab64Encode(key),
	), nil
}

// VerifyPassword reports whether the password matches the encoded hash.
// Malformed hashes never match.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" || parts[1] != pbkdf2Prefix {
		return false
	}

	rounds, err := strconv.Atoi(parts[2])
	if err != nil || rounds < 1 {
		return false
	}

	salt, err := ab64Decode(parts[3])
	if err != nil {
		return false
	}

	want, err := ab64Decode(parts[4])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}
