package token

import "fmt"

// MaxRun is the longest run stored in one RLE unit.
const MaxRun = 63

// EncodeRLE run-length encodes symbols. Each maximal run of one symbol
// becomes units of min(run, MaxRun)*4 + symbol.
func EncodeRLE(symbols []byte) (string, error) {
	if err := checkSymbols(symbols); err != nil {
		return "", err
	}

	units := make([]byte, 0, len(symbols)/8+1)
	for i := 0; i < len(symbols); {
		s := symbols[i]
		n := 1
		for i+n < len(symbols) && symbols[i+n] == s && n < MaxRun {
			n++
		}
		units = append(units, byte(n)*4+s)
		i += n
	}
	return encoding.EncodeToString(units), nil
}

// DecodeRLE reverses EncodeRLE.
func DecodeRLE(tok string) ([]byte, error) {
	units, err := decodeText(tok)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(units)*4)
	for i, u := range units {
		repeat := int(u / 4)
		if repeat == 0 {
			return nil, fmt.Errorf("%w: empty run at unit %d", ErrMalformed, i)
		}
		for j := 0; j < repeat; j++ {
			out = append(out, u%4)
		}
	}
	return out, nil
}
