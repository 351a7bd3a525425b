// Package md6 implements the MD6 cryptographic hash function, a parameterized,
// tree-structured hash designed by Rivest et al. for the NIST SHA-3 competition.
//
// MD6 produces digests of 1 to 512 bits, optionally keyed with up to 64 bytes of
// secret key. Its compression function applies a nonlinear shift/XOR/AND
// recurrence over 64-bit words for a configurable number of rounds, and its mode
// of operation arranges input blocks into a 4-ary Merkle tree whose independent
// nodes are evaluated in parallel. A sequential (single-chain) mode is available
// for memory-constrained use, and the tree's height can be capped, in which case
// hashing falls back to a sequential chain above the cap.
//
// The one-shot [Sum] function and the fixed-size [Sum224], [Sum256], [Sum384],
// and [Sum512] helpers cover most uses. [Session] provides incremental hashing,
// and the digest subpackage adapts MD6 to the standard hash.Hash interface.
//
// [MD6]: http://groups.csail.mit.edu/cis/md6
package md6

const (
	// MaxBits is the largest supported digest length in bits.
	MaxBits = 512

	// MaxKeySize is the largest supported key length in bytes.
	MaxKeySize = 64

	// BlockSize is the number of message bytes in a leaf compression block.
	BlockSize = 512
)

// Sum returns the MD6 digest of data under the given configuration. The digest
// is ceil(cfg.Bits/8) bytes long.
func Sum(cfg Config, data []byte) ([]byte, error) {
	p, err := cfg.params()
	if err != nil {
		return nil, err
	}
	return p.hash(data), nil
}

// Sum224 returns the MD6-224 digest of data.
func Sum224(data []byte) [28]byte {
	var out [28]byte
	sumFixed(out[:], 224, data)
	return out
}

// Sum256 returns the MD6-256 digest of data.
func Sum256(data []byte) [32]byte {
	var out [32]byte
	sumFixed(out[:], 256, data)
	return out
}

// Sum384 returns the MD6-384 digest of data.
func Sum384(data []byte) [48]byte {
	var out [48]byte
	sumFixed(out[:], 384, data)
	return out
}

// Sum512 returns the MD6-512 digest of data.
func Sum512(data []byte) [64]byte {
	var out [64]byte
	sumFixed(out[:], 512, data)
	return out
}

func sumFixed(dst []byte, bits int, data []byte) {
	p, err := Config{Bits: bits}.params()
	if err != nil {
		// The fixed configurations are all valid.
		panic(err)
	}
	copy(dst, p.hash(data))
}
