package token

import (
	"encoding/binary"
	"fmt"
)

// EncodePacked stores four symbols per byte, first symbol in the low bits,
// behind a uvarint symbol count.
func EncodePacked(symbols []byte) (string, error) {
	if err := checkSymbols(symbols); err != nil {
		return "", err
	}

	buf := binary.AppendUvarint(nil, uint64(len(symbols)))
	for i := 0; i < len(symbols); i += 4 {
		var b byte
		for j := 0; j < 4 && i+j < len(symbols); j++ {
			b |= symbols[i+j] << (2 * j)
		}
		buf = append(buf, b)
	}
	return encoding.EncodeToString(buf), nil
}

// DecodePacked reverses EncodePacked.
func DecodePacked(tok string) ([]byte, error) {
	raw, err := decodeText(tok)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: missing length", ErrMalformed)
	}

	n, k := binary.Uvarint(raw)
	if k <= 0 {
		return nil, fmt.Errorf("%w: bad length prefix", ErrMalformed)
	}
	payload := raw[k:]
	if n > uint64(len(payload))*4 {
		return nil, fmt.Errorf("%w: %d symbols need more than %d bytes", ErrMalformed, n, len(payload))
	}
	want := (n + 3) / 4
	if uint64(len(payload)) != want {
		return nil, fmt.Errorf("%w: %d symbols need %d bytes, got %d", ErrMalformed, n, want, len(payload))
	}

	out := make([]byte, n)
	for i := range out {
		out[i] = (payload[i/4] >> (2 * (i % 4))) & 3
	}
	return out, nil
}
