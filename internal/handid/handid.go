// Package handid generates time-ordered identifiers for recorded hands.
//
// An ID is a UUIDv7 written as 26 characters of Crockford base32, so IDs sort
// lexically in creation order and can be used directly as file names.
package handid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/coder/quartz"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	idLen    = 26
	padBits  = idLen*5 - 128
)

// Generator creates hand IDs from a clock and a source of random bytes
type Generator struct {
	clock  quartz.Clock
	random io.Reader
}

// Option configures a Generator
type Option func(*Generator)

// WithClock sets the clock that supplies the ID timestamp
func WithClock(clock quartz.Clock) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithRandom sets the source of the random bits, for deterministic tests
func WithRandom(r io.Reader) Option {
	return func(g *Generator) { g.random = r }
}

// NewGenerator creates a generator using the real clock and crypto/rand by default
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{clock: quartz.NewReal(), random: rand.Reader}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New returns a fresh ID
func (g *Generator) New() (string, error) {
	var id [16]byte

	ms := g.clock.Now().UnixMilli()
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.random, id[6:]); err != nil {
		return "", fmt.Errorf("read random bits: %w", err)
	}
	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant

	return encode(id), nil
}

// Timestamp extracts the creation time encoded in id
func Timestamp(id string) (time.Time, error) {
	raw, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	var ms int64
	for i := range 6 {
		ms = ms<<8 | int64(raw[i])
	}
	return time.UnixMilli(ms).UTC(), nil
}

// Validate checks id is 26 base32 characters that fit in 128 bits
func Validate(id string) error {
	_, err := decode(id)
	return err
}

// encode writes the 128 bits left-padded with zeros to a multiple of five
func encode(id [16]byte) string {
	var out [idLen]byte
	for i := range out {
		var v byte
		for b := range 5 {
			v = v<<1 | bit(id, i*5+b-padBits)
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

func decode(s string) ([16]byte, error) {
	var id [16]byte
	if len(s) != idLen {
		return id, fmt.Errorf("hand ID must be %d characters, got %d", idLen, len(s))
	}
	for i := range len(s) {
		v := strings.IndexByte(alphabet, s[i])
		if v < 0 {
			return id, fmt.Errorf("invalid character %q at position %d", s[i], i)
		}
		if i == 0 && v >= 1<<(5-padBits) {
			return id, fmt.Errorf("hand ID first character must be 0-7, got %q", s[i])
		}
		for b := range 5 {
			pos := i*5 + b - padBits
			if pos >= 0 && v&(1<<(4-b)) != 0 {
				id[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	return id, nil
}

func bit(id [16]byte, pos int) byte {
	if pos < 0 {
		return 0
	}
	return id[pos/8] >> (7 - pos%8) & 1
}
