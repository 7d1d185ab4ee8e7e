package code

import (
	"encoding/base64"
	"fmt"
)

// Encode converts text to the base64 form Judge0 expects for binary-safe fields.
func Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Decode reverses Encode. Malformed input is an error, never empty output.
func Decode(s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("decode base64 payload: %w", err)
	}
	return string(b), nil
}
