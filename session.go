package md6

import (
	"errors"

	"github.com/codahale/md6/internal/compress"
)

// ErrUseAfterFinalize is returned when a Session is written to or finalized
// after Final has already been called.
var ErrUseAfterFinalize = errors.New("md6: use after finalize")

// A Session hashes a message incrementally. Bytes are supplied with any number
// of Write calls, and Final returns the digest of their concatenation. A
// finalized Session cannot be reused.
//
// The shape of the hash tree depends on the total message length, so in Tree
// mode a Session buffers the whole message and defers compression to Final.
// In Sequential mode blocks are compressed as they fill and only the last
// block is held back, keeping memory use constant.
//
// Sessions are not concurrent-safe.
type Session struct {
	p      params
	buf    []byte
	cv     [compress.ChainWords]uint64
	blocks int
	done   bool
}

// NewSession returns a Session for the given configuration.
func NewSession(cfg Config) (*Session, error) {
	p, err := cfg.params()
	if err != nil {
		return nil, err
	}
	return &Session{p: p}, nil
}

// Write adds b to the message being hashed. It returns ErrUseAfterFinalize if
// Final has already been called.
func (s *Session) Write(b []byte) (int, error) {
	if s.done {
		return 0, ErrUseAfterFinalize
	}

	s.buf = append(s.buf, b...)
	if s.p.levels == 0 {
		s.drain()
	}
	return len(b), nil
}

// drain compresses all buffered sequential blocks known not to be the last
// one. A full block is held until at least one more byte arrives, since the
// final block carries the final-node flag and padding count.
func (s *Session) drain() {
	for len(s.buf) > seqDataBytes {
		var b [compress.BlockWords]uint64
		copy(b[:], s.cv[:])
		loadWords(b[compress.ChainWords:], s.buf[:seqDataBytes])

		compress.Compress(&s.cv, &s.p.key, nodeID(1, s.blocks), s.p.controlWord(false, 0), &b, s.p.r)
		s.blocks++
		s.buf = append(s.buf[:0], s.buf[seqDataBytes:]...)
	}
}

// Final completes the hash and returns the digest of all bytes written. It
// returns ErrUseAfterFinalize on the second and subsequent calls.
func (s *Session) Final() ([]byte, error) {
	if s.done {
		return nil, ErrUseAfterFinalize
	}
	s.done = true

	if s.p.levels > 0 {
		digest := s.p.hash(s.buf)
		s.buf = nil
		return digest, nil
	}

	var b [compress.BlockWords]uint64
	copy(b[:], s.cv[:])
	loadWords(b[compress.ChainWords:], s.buf)
	pad := (seqDataBytes - len(s.buf)) * 8

	compress.Compress(&s.cv, &s.p.key, nodeID(1, s.blocks), s.p.controlWord(true, pad), &b, s.p.r)
	s.buf = nil
	return s.p.extract(&s.cv), nil
}

// Size returns the length of the digest Final will produce, in bytes.
func (s *Session) Size() int {
	return (s.p.d + 7) / 8
}
