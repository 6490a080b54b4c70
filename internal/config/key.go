package config

import (
	"strings"

	"github.com/AstroAir/create-cpp-project-sub000/internal/errors"
)

// MaxKeyLength is the maximum length of a dotted configuration key.
const MaxKeyLength = 128

// ValidateKey checks a dotted configuration key against the grammar
// segment(.segment)* where each segment matches [A-Za-z0-9_]+.
// Keys are case-sensitive and at most MaxKeyLength characters.
// Invalid keys are rejected, never normalized.
func ValidateKey(key string) error {
	if key == "" {
		return errors.Wrap(errors.ErrInvalidKey, "empty key")
	}
	if len(key) > MaxKeyLength {
		return errors.Wrapf(errors.ErrInvalidKey, "key exceeds %d characters", MaxKeyLength)
	}

	start := 0
	for i := 0; i <= len(key); i++ {
		if i == len(key) || key[i] == '.' {
			if i == start {
				return errors.Wrapf(errors.ErrInvalidKey, "empty segment in %q", key)
			}
			start = i + 1
			continue
		}
		if !isKeyByte(key[i]) {
			return errors.Wrapf(errors.ErrInvalidKey, "illegal character %q in %q", key[i], key)
		}
	}
	return nil
}

func isKeyByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_'
}

// SplitKey splits a validated key into its path segments.
func SplitKey(key string) []string {
	return strings.Split(key, ".")
}
