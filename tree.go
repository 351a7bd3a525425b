package md6

import (
	"encoding/binary"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/codahale/md6/internal/compress"
)

const (
	// blockBytes is the number of message bytes in a leaf compression block.
	blockBytes = compress.BlockWords * compress.WordBytes

	// seqDataBytes is the number of message bytes in a sequential compression
	// block, after the 16-word chaining value.
	seqDataBytes = (compress.BlockWords - compress.ChainWords) * compress.WordBytes

	// parentWords is the number of child chaining-value words consumed by one
	// parent node.
	parentWords = compress.BlockWords

	// seqDataWords is the number of data words in a sequential compression
	// block.
	seqDataWords = compress.BlockWords - compress.ChainWords

	// parallelThreshold is the minimum number of blocks at a level before the
	// level is evaluated across multiple goroutines.
	parallelThreshold = 16
)

// hash pads and partitions data, reduces it level by level to a single root
// chaining value, and extracts the digest from it.
func (p *params) hash(data []byte) []byte {
	var root [compress.ChainWords]uint64

	if p.levels == 0 {
		p.seqBytes(&root, data)
		return p.extract(&root)
	}

	cvs := p.parBytes(data)
	for level := 2; len(cvs) > compress.ChainWords; level++ {
		if level > p.levels {
			// The level cap has been reached with more than one chaining
			// value outstanding: chain the remainder sequentially.
			p.seqWords(&root, level, cvs)
			return p.extract(&root)
		}
		cvs = p.parWords(cvs, level)
	}
	copy(root[:], cvs)
	return p.extract(&root)
}

// parBytes computes the first tree level, mapping message bytes to the
// concatenated chaining values of the leaf nodes. Empty input still produces
// one all-padding leaf.
func (p *params) parBytes(data []byte) []uint64 {
	j := max(1, (len(data)+blockBytes-1)/blockBytes)
	out := make([]uint64, j*compress.ChainWords)

	eachNode(j, func(i int) {
		start := i * blockBytes
		end := min(start+blockBytes, len(data))

		var b [compress.BlockWords]uint64
		loadWords(b[:], data[start:end])

		var pad int
		if i == j-1 {
			pad = (blockBytes - (end - start)) * 8
		}

		var cv [compress.ChainWords]uint64
		compress.Compress(&cv, &p.key, nodeID(1, i), p.controlWord(j == 1, pad), &b, p.r)
		copy(out[i*compress.ChainWords:], cv[:])
	})

	return out
}

// parWords computes one interior tree level, mapping the chaining values of
// level-1 to the concatenated chaining values of its parents. A short final
// group of children is zero-padded to the full branching degree.
func (p *params) parWords(cvs []uint64, level int) []uint64 {
	j := (len(cvs) + parentWords - 1) / parentWords
	out := make([]uint64, j*compress.ChainWords)

	eachNode(j, func(i int) {
		start := i * parentWords
		end := min(start+parentWords, len(cvs))

		var b [compress.BlockWords]uint64
		copy(b[:], cvs[start:end])

		var pad int
		if i == j-1 {
			pad = (parentWords - (end - start)) * 64
		}

		var cv [compress.ChainWords]uint64
		compress.Compress(&cv, &p.key, nodeID(level, i), p.controlWord(j == 1, pad), &b, p.r)
		copy(out[i*compress.ChainWords:], cv[:])
	})

	return out
}

// seqBytes chains message bytes through a single sequence of compressions,
// writing the final chaining value to out.
func (p *params) seqBytes(out *[compress.ChainWords]uint64, data []byte) {
	var cv [compress.ChainWords]uint64
	j := max(1, (len(data)+seqDataBytes-1)/seqDataBytes)
	for i := 0; i < j; i++ {
		start := i * seqDataBytes
		end := min(start+seqDataBytes, len(data))

		var b [compress.BlockWords]uint64
		copy(b[:], cv[:])
		loadWords(b[compress.ChainWords:], data[start:end])

		var pad int
		if i == j-1 {
			pad = (seqDataBytes - (end - start)) * 8
		}

		compress.Compress(&cv, &p.key, nodeID(1, i), p.controlWord(i == j-1, pad), &b, p.r)
	}
	*out = cv
}

// seqWords chains a level's worth of chaining values through a single sequence
// of compressions, writing the final chaining value to out.
func (p *params) seqWords(out *[compress.ChainWords]uint64, level int, cvs []uint64) {
	var cv [compress.ChainWords]uint64
	j := (len(cvs) + seqDataWords - 1) / seqDataWords
	for i := 0; i < j; i++ {
		start := i * seqDataWords
		end := min(start+seqDataWords, len(cvs))

		var b [compress.BlockWords]uint64
		copy(b[:], cv[:])
		copy(b[compress.ChainWords:], cvs[start:end])

		var pad int
		if i == j-1 {
			pad = (seqDataWords - (end - start)) * 64
		}

		compress.Compress(&cv, &p.key, nodeID(level, i), p.controlWord(i == j-1, pad), &b, p.r)
	}
	*out = cv
}

// eachNode invokes f for every node index in [0, j). The nodes of a level are
// mutually independent, so large levels are split into contiguous spans and
// evaluated concurrently; eachNode returns once every node is done, forming
// the barrier between levels.
func eachNode(j int, f func(i int)) {
	workers := runtime.GOMAXPROCS(0)
	if j < parallelThreshold || workers < 2 {
		for i := 0; i < j; i++ {
			f(i)
		}
		return
	}

	span := (j + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < j; start += span {
		start := start
		end := min(start+span, j)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait() // node computations are pure and never fail
}

// loadWords fills dst with big-endian words from src, zero-padding the tail.
// src must fit in dst.
func loadWords(dst []uint64, src []byte) {
	for len(src) >= compress.WordBytes {
		dst[0] = binary.BigEndian.Uint64(src)
		dst = dst[1:]
		src = src[compress.WordBytes:]
	}
	if len(src) > 0 {
		var tail [compress.WordBytes]byte
		copy(tail[:], src)
		dst[0] = binary.BigEndian.Uint64(tail[:])
	}
}

// extract returns the digest: the trailing d bits of the root chaining value,
// most-significant-word first, left-aligned in ceil(d/8) bytes.
func (p *params) extract(cv *[compress.ChainWords]uint64) []byte {
	var full [compress.ChainWords * compress.WordBytes]byte
	for i, w := range cv {
		binary.BigEndian.PutUint64(full[i*compress.WordBytes:], w)
	}

	out := make([]byte, (p.d+7)/8)
	copy(out, full[len(full)-len(out):])

	if bits := uint(p.d % 8); bits != 0 {
		for i := range out {
			b := out[i] << (8 - bits)
			if i+1 < len(out) {
				b |= out[i+1] >> bits
			}
			out[i] = b
		}
	}
	return out
}
