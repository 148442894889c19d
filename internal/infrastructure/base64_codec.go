package infrastructure

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Base64Codec encodes text to Base64 and back.
type Base64Codec struct{}

// NewBase64Codec creates a new Base64Codec.
func NewBase64Codec() *Base64Codec {
	return &Base64Codec{}
}

// Encode returns the padded Base64 form of the UTF-8 bytes of text.
func (c *Base64Codec) Encode(text string, urlSafe bool) string {
	if urlSafe {
		return base64.URLEncoding.EncodeToString([]byte(text))
	}
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// Decode reverses Encode. Surrounding whitespace, line breaks anywhere in the
// input (as in wrapped MIME output) and missing padding are tolerated.
// The decoded bytes must be valid UTF-8.
func (c *Base64Codec) Decode(encoded string, urlSafe bool) (string, error) {
	encoded = strings.TrimSpace(encoded)
	encoded = strings.TrimRight(encoded, "=")

	enc := base64.RawStdEncoding
	if urlSafe {
		enc = base64.RawURLEncoding
	}

	data, err := enc.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid Base64 input: %w", err)
	}
	if !utf8.Valid(data) {
		return "", errors.New("decoded Base64 data is not valid UTF-8 text")
	}
	return string(data), nil
}
