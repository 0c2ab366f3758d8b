// Package token converts recorded action sequences to and from the compact
// URL-safe strings carried by share links. Symbols are small integers in
// 0..3; two schemes exist: run-length ("s4") and four-per-byte packing
// ("sol").
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned for tokens that cannot be decoded.
var ErrMalformed = errors.New("token: malformed")

// ErrSymbolRange is returned when encoding a value outside 0..3.
var ErrSymbolRange = errors.New("token: symbol out of range")

// Scheme names a token encoding.
type Scheme string

const (
	SchemeRLE    Scheme = "s4"
	SchemePacked Scheme = "sol"
)

// Encode encodes symbols with the given scheme.
func Encode(scheme Scheme, symbols []byte) (string, error) {
	switch scheme {
	case SchemeRLE:
		return EncodeRLE(symbols)
	case SchemePacked:
		return EncodePacked(symbols)
	default:
		return "", fmt.Errorf("token: unknown scheme %q", scheme)
	}
}

// Decode decodes a token with the given scheme.
func Decode(scheme Scheme, tok string) ([]byte, error) {
	switch scheme {
	case SchemeRLE:
		return DecodeRLE(tok)
	case SchemePacked:
		return DecodePacked(tok)
	default:
		return nil, fmt.Errorf("token: unknown scheme %q", scheme)
	}
}

func checkSymbols(symbols []byte) error {
	for i, s := range symbols {
		if s > 3 {
			return fmt.Errorf("%w: %d at index %d", ErrSymbolRange, s, i)
		}
	}
	return nil
}

var encoding = base64.RawURLEncoding

// decodeText accepts both padded and unpadded URL-safe base64.
func decodeText(tok string) ([]byte, error) {
	raw, err := encoding.DecodeString(strings.TrimRight(tok, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return raw, nil
}
