package token

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(s byte, n int) []byte {
	return bytes.Repeat([]byte{s}, n)
}

func sequences() map[string][]byte {
	mixed := make([]byte, 0, 300)
	for i := 0; i < 300; i++ {
		switch {
		case i%97 == 0:
			mixed = append(mixed, 1)
		case i%131 == 5:
			mixed = append(mixed, 3)
		case (i/40)%2 == 0:
			mixed = append(mixed, 2)
		default:
			mixed = append(mixed, 0)
		}
	}
	return map[string][]byte{
		"empty":         {},
		"single":        {2},
		"short runs":    {0, 0, 0, 2, 2},
		"all symbols":   {0, 1, 2, 3, 3, 2, 1, 0},
		"run of 63":     repeat(2, 63),
		"run of 64":     repeat(2, 64),
		"run over cap":  repeat(0, 200),
		"odd length":    {1, 2, 3, 0, 1},
		"mixed session": mixed,
	}
}

func TestRoundTrip(t *testing.T) {
	for _, scheme := range []Scheme{SchemeRLE, SchemePacked} {
		for name, seq := range sequences() {
			t.Run(string(scheme)+"/"+name, func(t *testing.T) {
				tok, err := Encode(scheme, seq)
				require.NoError(t, err)

				got, err := Decode(scheme, tok)
				require.NoError(t, err)
				assert.Equal(t, len(seq), len(got))
				if len(seq) > 0 {
					assert.Equal(t, seq, got)
				}
			})
		}
	}
}

func TestRLEShortRuns(t *testing.T) {
	tok, err := EncodeRLE([]byte{0, 0, 0, 2, 2})
	require.NoError(t, err)

	units, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Equal(t, []byte{3*4 + 0, 2*4 + 2}, units)

	got, err := DecodeRLE(tok)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2, 2}, got)
}

func TestRLESplitsLongRuns(t *testing.T) {
	tok, err := EncodeRLE(repeat(3, 130))
	require.NoError(t, err)

	units, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Equal(t, []byte{63*4 + 3, 63*4 + 3, 4*4 + 3}, units)
}

func TestRLEAcceptsPadding(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte{3 * 4, 2*4 + 2})
	got, err := DecodeRLE(padded)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2, 2}, got)
}

func TestPackedLayout(t *testing.T) {
	tok, err := EncodePacked([]byte{1, 2, 3, 0, 2})
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 1 | 2<<2 | 3<<4, 2}, raw)
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name   string
		scheme Scheme
		tok    string
	}{
		{"rle bad base64", SchemeRLE, "!!"},
		{"rle zero repeat", SchemeRLE, base64.RawURLEncoding.EncodeToString([]byte{4, 2})},
		{"packed bad base64", SchemePacked, "%%%"},
		{"packed empty", SchemePacked, ""},
		{"packed short payload", SchemePacked, base64.RawURLEncoding.EncodeToString([]byte{9, 0})},
		{"packed trailing bytes", SchemePacked, base64.RawURLEncoding.EncodeToString([]byte{1, 0, 0})},
		{"packed max length no payload", SchemePacked, "____________AQ"},
		{"packed huge length", SchemePacked, base64.RawURLEncoding.EncodeToString(
			[]byte{0xfd, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01, 0x00})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.scheme, tt.tok)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	_, err := EncodeRLE([]byte{0, 4})
	assert.ErrorIs(t, err, ErrSymbolRange)
	_, err = EncodePacked([]byte{7})
	assert.ErrorIs(t, err, ErrSymbolRange)
}

func TestUnknownScheme(t *testing.T) {
	_, err := Encode("zip", nil)
	assert.Error(t, err)
	_, err = Decode("zip", "")
	assert.Error(t, err)
}
