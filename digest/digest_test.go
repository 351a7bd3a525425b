package digest_test

import (
	"bytes"
	"testing"

	"github.com/codahale/md6/digest"
)

func TestDigest_Size(t *testing.T) {
	for _, bits := range []int{224, 256, 384, 512} {
		h, err := digest.New(bits)
		if err != nil {
			t.Fatalf("New(%d) = %v", bits, err)
		}
		if got, want := h.Size(), bits/8; got != want {
			t.Errorf("Size() = %d, want %d", got, want)
		}
	}

	// Partial-byte digest lengths round up.
	h, err := digest.New(7)
	if err != nil {
		t.Fatalf("New(7) = %v", err)
	}
	if got, want := h.Size(), 1; got != want {
		t.Errorf("Size() = %d, want %d", got, want)
	}
}

func TestDigest_BlockSize(t *testing.T) {
	h, err := digest.New(256)
	if err != nil {
		t.Fatal(err)
	}
	if bs := h.BlockSize(); bs != 512 {
		t.Errorf("BlockSize() = %d, want 512", bs)
	}
}

func TestDigest_New_Invalid(t *testing.T) {
	if _, err := digest.New(513); err == nil {
		t.Error("New(513) = nil, want error")
	}
	if _, err := digest.NewKeyed(256, make([]byte, 65)); err == nil {
		t.Error("NewKeyed(256, 65-byte key) = nil, want error")
	}
}

func TestDigest_Sum(t *testing.T) {
	h, err := digest.New(256)
	if err != nil {
		t.Fatal(err)
	}
	input := []byte("Hello, world!")
	h.Write(input)

	sum := h.Sum(nil)
	if len(sum) != 32 {
		t.Errorf("Sum length = %d, want 32", len(sum))
	}

	// Sum must not disturb the running state.
	sum2 := h.Sum(nil)
	if !bytes.Equal(sum, sum2) {
		t.Errorf("Sum() = %x, want %x", sum2, sum)
	}

	h.Write(input) // "Hello, world!Hello, world!"
	sum3 := h.Sum(nil)
	if bytes.Equal(sum, sum3) {
		t.Error("Sum() should change after Write()")
	}
}

func TestDigest_Keyed(t *testing.T) {
	unkeyed, err := digest.New(256)
	if err != nil {
		t.Fatal(err)
	}
	keyed, err := digest.NewKeyed(256, []byte("key"))
	if err != nil {
		t.Fatal(err)
	}

	input := []byte("data")
	unkeyed.Write(input)
	keyed.Write(input)

	if bytes.Equal(unkeyed.Sum(nil), keyed.Sum(nil)) {
		t.Error("keyed and unkeyed digests should differ")
	}
}

func TestDigest_Reset(t *testing.T) {
	h, err := digest.New(256)
	if err != nil {
		t.Fatal(err)
	}
	h.Write([]byte("data"))
	sum1 := h.Sum(nil)

	h.Reset()
	sumEmpty := h.Sum(nil)

	if bytes.Equal(sum1, sumEmpty) {
		t.Error("Reset() didn't clear the buffer")
	}

	h.Write([]byte("data"))
	sum2 := h.Sum(nil)

	if !bytes.Equal(sum1, sum2) {
		t.Errorf("Sum() after Reset+Write = %x, want %x", sum2, sum1)
	}
}
