// Package share builds and parses the links that describe a level and,
// optionally, a recorded attempt on it.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-drill/internal/drill"
	"github.com/vovakirdan/tui-drill/internal/token"
)

// Query parameter names.
const (
	ParamSeed     = "seed"
	ParamRnd      = "rnd"
	ParamRopd     = "ropd"
	ParamLevel    = "level"
	ParamScene    = "scene"
	ParamStarts   = "starts"
	ParamSolution = "sol"
	ParamS4       = "s4"
)

// Prefix is prepended by Link.String.
const Prefix = "drill://play"

// ErrMissingSeed is returned when a link has no seed.
var ErrMissingSeed = errors.New("share: missing seed")

// Level is everything needed to regenerate the same ground and judge an
// attempt on it under the same rules.
type Level struct {
	Seed         int64
	SpeedDivider int    // ropd
	Randomness   int    // rnd
	Boulders     int    // level
	Scene        string // empty means the default scene
	MaxStarts    int    // starts; 0 means the config value
}

// Link is a level plus an optional encoded attempt.
type Link struct {
	Level  Level
	Scheme token.Scheme // empty when the link carries no attempt
	Token  string
}

// NewLink encodes actions with scheme. Empty actions produce a plain level
// link.
func NewLink(level Level, actions drill.Sequence, scheme token.Scheme) (Link, error) {
	l := Link{Level: level}
	if len(actions) == 0 {
		return l, nil
	}
	tok, err := token.Encode(scheme, actions.Bytes())
	if err != nil {
		return Link{}, fmt.Errorf("share: encode actions: %w", err)
	}
	l.Scheme = scheme
	l.Token = tok
	return l, nil
}

// Playback reports whether the link carries a recorded attempt.
func (l Link) Playback() bool {
	return l.Scheme != "" && l.Token != ""
}

// Actions decodes the recorded attempt.
func (l Link) Actions() (drill.Sequence, error) {
	if !l.Playback() {
		return nil, nil
	}
	raw, err := token.Decode(l.Scheme, l.Token)
	if err != nil {
		return nil, fmt.Errorf("share: decode %s: %w", l.Scheme, err)
	}
	seq, err := drill.ParseSymbols(raw)
	if err != nil {
		return nil, fmt.Errorf("share: decode %s: %w", l.Scheme, err)
	}
	return seq, nil
}

// Values returns the link as query values.
func (l Link) Values() url.Values {
	v := url.Values{}
	v.Set(ParamSeed, strconv.FormatInt(l.Level.Seed, 10))
	if l.Level.Randomness != 0 {
		v.Set(ParamRnd, strconv.Itoa(l.Level.Randomness))
	}
	if l.Level.SpeedDivider != 0 {
		v.Set(ParamRopd, strconv.Itoa(l.Level.SpeedDivider))
	}
	if l.Level.Boulders != 0 {
		v.Set(ParamLevel, strconv.Itoa(l.Level.Boulders))
	}
	if l.Level.Scene != "" {
		v.Set(ParamScene, l.Level.Scene)
	}
	if l.Level.MaxStarts != 0 {
		v.Set(ParamStarts, strconv.Itoa(l.Level.MaxStarts))
	}
	if l.Playback() {
		v.Set(string(l.Scheme), l.Token)
	}
	return v
}

// String returns the link as a drill:// URL.
func (l Link) String() string {
	return Prefix + "?" + l.Values().Encode()
}

// Parse reads a link from a full URL or a bare query string.
// When both tokens are present the run-length one wins.
func Parse(raw string) (Link, error) {
	raw = strings.TrimSpace(raw)
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}
	v, err := url.ParseQuery(query)
	if err != nil {
		return Link{}, fmt.Errorf("share: parse query: %w", err)
	}
	return FromValues(v)
}

// FromValues reads a link from query values.
func FromValues(v url.Values) (Link, error) {
	var l Link

	seed := v.Get(ParamSeed)
	if seed == "" {
		return Link{}, ErrMissingSeed
	}
	n, err := strconv.ParseInt(seed, 10, 64)
	if err != nil {
		return Link{}, fmt.Errorf("share: seed %q: %w", seed, err)
	}
	l.Level.Seed = n

	ints := []struct {
		name string
		dst  *int
	}{
		{ParamRnd, &l.Level.Randomness},
		{ParamRopd, &l.Level.SpeedDivider},
		{ParamLevel, &l.Level.Boulders},
		{ParamStarts, &l.Level.MaxStarts},
	}
	for _, p := range ints {
		s := v.Get(p.name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return Link{}, fmt.Errorf("share: %s %q: %w", p.name, s, err)
		}
		*p.dst = n
	}
	l.Level.Scene = v.Get(ParamScene)

	switch {
	case v.Get(ParamS4) != "":
		l.Scheme, l.Token = token.SchemeRLE, v.Get(ParamS4)
	case v.Get(ParamSolution) != "":
		l.Scheme, l.Token = token.SchemePacked, v.Get(ParamSolution)
	}
	return l, nil
}
