// Package digest adapts the MD6 hash function to the standard hash.Hash
// interface.
package digest

import (
	"hash"

	"github.com/codahale/md6"
)

// New returns a hash.Hash computing the MD6 digest of the given bit length.
func New(bits int) (hash.Hash, error) {
	return NewKeyed(bits, nil)
}

// NewKeyed returns a hash.Hash computing the MD6 digest of the given bit
// length under the given key.
func NewKeyed(bits int, key []byte) (hash.Hash, error) {
	cfg := md6.Config{Bits: bits, Key: key}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &digest{cfg: cfg}, nil
}

// The tree shape depends on the total message length, so the message is
// buffered and hashed from scratch on each Sum. That also makes Sum
// non-destructive, as hash.Hash requires.
type digest struct {
	cfg md6.Config
	buf []byte
}

func (d *digest) Write(p []byte) (n int, err error) {
	d.buf = append(d.buf, p...)
	return len(p), nil
}

func (d *digest) Sum(b []byte) []byte {
	sum, err := md6.Sum(d.cfg, d.buf)
	if err != nil {
		// The configuration was validated at construction.
		panic(err)
	}
	return append(b, sum...)
}

func (d *digest) Reset() {
	d.buf = d.buf[:0]
}

func (d *digest) Size() int {
	return (d.cfg.Bits + 7) / 8
}

func (d *digest) BlockSize() int {
	return md6.BlockSize
}

var _ hash.Hash = (*digest)(nil)
