package md6

import (
	"encoding/binary"
	"fmt"

	"github.com/codahale/md6/internal/compress"
)

// A Mode selects how message blocks are arranged for compression.
type Mode int

const (
	// Tree arranges blocks into a 4-ary Merkle tree whose levels are
	// evaluated in parallel. This is the standard MD6 mode.
	Tree Mode = iota

	// Sequential chains blocks one after another, trading parallelism for a
	// fixed, small memory footprint.
	Sequential
)

const (
	maxRounds = 255
	maxLevels = 64
)

// A Config describes a hash computation. The zero value of every field except
// Bits selects the standard default.
type Config struct {
	// Bits is the digest length in bits, between 1 and 512.
	Bits int

	// Key is an optional secret key of at most 64 bytes.
	Key []byte

	// Rounds is the number of compression rounds, between 1 and 255. If zero,
	// the default of 40+floor(Bits/4) is used, raised to a minimum of 80 when
	// a key is present.
	Rounds int

	// Mode selects tree or sequential hashing.
	Mode Mode

	// MaxLevels caps the number of tree levels before hashing falls back to a
	// sequential chain, between 1 and 64. If zero, 64 is used. Only valid in
	// Tree mode.
	MaxLevels int
}

// Validate checks the configuration, returning a ConfigError describing the
// first problem found, if any.
func (c Config) Validate() error {
	_, err := c.params()
	return err
}

// A ConfigError reports a hash configuration outside the allowed parameter
// ranges.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "md6: invalid configuration: " + e.Reason
}

// params is the parameter block: the validated, immutable configuration
// included in every compression input.
type params struct {
	d      int // digest length in bits
	keylen int // key length in bytes
	r      int // compression rounds
	levels int // tree levels before the sequential fallback; 0 is fully sequential
	key    [compress.KeyWords]uint64
}

func (c Config) params() (params, error) {
	if c.Bits < 1 || c.Bits > MaxBits {
		return params{}, ConfigError{fmt.Sprintf("digest length must be 1..%d bits, got %d", MaxBits, c.Bits)}
	}
	if len(c.Key) > MaxKeySize {
		return params{}, ConfigError{fmt.Sprintf("key must be at most %d bytes, got %d", MaxKeySize, len(c.Key))}
	}

	r := c.Rounds
	if r == 0 {
		r = defaultRounds(c.Bits, len(c.Key))
	}
	if r < 1 || r > maxRounds {
		return params{}, ConfigError{fmt.Sprintf("rounds must be 1..%d, got %d", maxRounds, r)}
	}

	var levels int
	switch c.Mode {
	case Tree:
		levels = c.MaxLevels
		if levels == 0 {
			levels = maxLevels
		}
		if levels < 1 || levels > maxLevels {
			return params{}, ConfigError{fmt.Sprintf("max levels must be 1..%d, got %d", maxLevels, c.MaxLevels)}
		}
	case Sequential:
		if c.MaxLevels != 0 {
			return params{}, ConfigError{"sequential mode does not take a level cap"}
		}
	default:
		return params{}, ConfigError{fmt.Sprintf("unknown mode %d", c.Mode)}
	}

	p := params{d: c.Bits, keylen: len(c.Key), r: r, levels: levels}

	var kb [MaxKeySize]byte
	copy(kb[:], c.Key)
	for i := range p.key {
		p.key[i] = binary.BigEndian.Uint64(kb[i*8:])
	}

	return p, nil
}

// defaultRounds returns the standard round count for the given digest length
// and key length.
func defaultRounds(bits, keylen int) int {
	r := 40 + bits/4
	if keylen > 0 && r < 80 {
		r = 80
	}
	return r
}

// controlWord packs the parameter block fields, the final-node flag, and the
// count of zero padding bits in the current block into the control word
// included in every compression input.
func (p *params) controlWord(final bool, padBits int) uint64 {
	var z uint64
	if final {
		z = 1
	}
	return uint64(p.r)<<48 |
		uint64(p.levels)<<40 |
		z<<36 |
		uint64(padBits)<<20 |
		uint64(p.keylen)<<12 |
		uint64(p.d)
}

// nodeID packs a node's tree level (1-based) and index within that level into
// the unique node identifier word.
func nodeID(level, index int) uint64 {
	return uint64(level)<<56 | uint64(index)
}
