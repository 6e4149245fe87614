package sso

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"

	"github.com/pavanmanishd/mem"
)

// Decode converts raw from enc to UTF-8 and returns it as a byte string.
func Decode(a mem.Allocator[byte], enc encoding.Encoding, raw []byte) (*String[byte], error) {
	utf8, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, errors.Wrap(err, "sso: decode")
	}
	return From(a, utf8)
}

// Encode converts the UTF-8 contents of s to enc.
func Encode(s *String[byte], enc encoding.Encoding) ([]byte, error) {
	out, err := enc.NewEncoder().Bytes(s.Chars())
	if err != nil {
		return nil, errors.Wrap(err, "sso: encode")
	}
	return out, nil
}
