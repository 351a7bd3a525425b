// Package compress implements the MD6 compression function: a fixed-size
// nonlinear transform mapping an 89-word input (constants, key, node ID,
// control word, and a 64-word data block) to a 16-word chaining value.
package compress

const (
	// WordBytes is the size of a word in bytes.
	WordBytes = 8

	// ChainWords is the number of words in a chaining value (c).
	ChainWords = 16

	// BlockWords is the number of data words in a compression input (b).
	BlockWords = 64

	// KeyWords is the number of key words in a compression input (k).
	KeyWords = 8

	// InputWords is the total number of words in a compression input (n):
	// 15 constant words, 8 key words, a node ID word, a control word, and
	// 64 data words.
	InputWords = 89
)

// Tap positions of the feedback recurrence.
const (
	t0 = 17
	t1 = 18
	t2 = 21
	t3 = 31
	t4 = 67
)

// Feedback constant for round 0 and the mask used to evolve it between
// rounds.
const (
	s0    = 0x0123456789abcdef
	sMask = 0x7311c2812425cfa0
)

// q holds the 15 constant words derived from the fractional part of sqrt(6).
var q = [15]uint64{ //nolint:gochecknoglobals // these are constants
	0x7311c2812425cfa0, 0x6432286434aac8e7,
	0xb60450e9ef68b7c1, 0xe8fb23908d9f06f1,
	0xdd2e76cba691e5bf, 0x0cd0d63b2c30bc41,
	0x1f8ccf6823058f8a, 0x54e5ed5b88e3775d,
	0x4ad12aae0a6d6031, 0x3e7f16bb88222e0d,
	0x8af8671d3fb50c2c, 0x995ad1178bd25c31,
	0xc878c1dd04c4b633, 0x3b72066c7a1552ac,
	0x0d6f3522631effcb,
}

// Per-step shift amounts, indexed by step number mod 16.
var rShift = [16]uint{10, 5, 13, 10, 11, 12, 2, 7, 14, 15, 7, 13, 11, 7, 6, 12} //nolint:gochecknoglobals // these are constants

var lShift = [16]uint{11, 24, 9, 16, 15, 9, 27, 15, 6, 2, 29, 8, 15, 5, 31, 9} //nolint:gochecknoglobals // these are constants

// Compress applies r rounds of the MD6 feedback recurrence to the input
// assembled from key, nodeID, control, and block, and writes the resulting
// chaining value to out. r must be at least 1.
func Compress(out *[ChainWords]uint64, key *[KeyWords]uint64, nodeID, control uint64, block *[BlockWords]uint64, r int) {
	a := make([]uint64, r*ChainWords+InputWords)

	copy(a, q[:])
	copy(a[15:], key[:])
	a[23] = nodeID
	a[24] = control
	copy(a[25:], block[:])

	s := uint64(s0)
	i := InputWords
	for round := 0; round < r; round++ {
		for step := 0; step < ChainWords; step++ {
			x := s
			x ^= a[i+step-InputWords]
			x ^= a[i+step-t0]
			x ^= a[i+step-t1] & a[i+step-t2]
			x ^= a[i+step-t3] & a[i+step-t4]
			x ^= x >> rShift[step]
			a[i+step] = x ^ (x << lShift[step])
		}
		s = (s << 1) ^ (s >> 63) ^ (s & sMask)
		i += ChainWords
	}

	copy(out[:], a[len(a)-ChainWords:])
}
