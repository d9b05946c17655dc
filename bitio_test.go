package lzw

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
)

func TestPackUnpack(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for width := MinWidth; width <= MaxWidth; width++ {
		for _, n := range []int{0, 1, 2, 3, 7, 8, 100} {
			codes := make([]uint32, n)
			for i := range codes {
				codes[i] = rng.Uint32N(EndCode(width))
			}
			testPackUnpack(t, width, codes)
		}
	}
}

func testPackUnpack(t *testing.T, width int, codes []uint32) {
	t.Helper()
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	p := newBitPacker(bw, width)
	for _, c := range codes {
		if err := p.emit(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.finish(EndCode(width)); err != nil {
		t.Fatal(err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}

	if got, want := int64(buf.Len()), streamLen(int64(len(codes)), width); got != want {
		t.Fatalf("width %d, %d codes: %d bytes, want %d", width, len(codes), got, want)
	}

	u := newBitUnpacker(bytes.NewReader(buf.Bytes()), width)
	for i, want := range codes {
		got, err := u.next()
		if err != nil {
			t.Fatalf("width %d code %d: %v", width, i, err)
		}
		if got != want {
			t.Fatalf("width %d code %d: got %d, want %d", width, i, got, want)
		}
	}
	end, err := u.next()
	if err != nil || end != EndCode(width) {
		t.Fatalf("width %d: end code %d, %v", width, end, err)
	}
	if rest := int64(buf.Len()) - (u.codes*int64(width)+7)/8; rest != u.flushLen() {
		t.Fatalf("width %d: %d bytes after end code, flushLen %d", width, rest, u.flushLen())
	}
}

func TestPackMSBFirst(t *testing.T) {
	codes := []uint32{65, 256, 65}
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	p := newBitPacker(bw, 12)
	for _, c := range codes {
		if err := p.emit(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := p.finish(EndCode(12)); err != nil {
		t.Fatal(err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	for _, c := range append(codes, EndCode(12), 0) {
		sb.WriteString(fmt.Sprintf("%012b", c))
	}
	bits := sb.String()
	// The tail of the zero code never reaches the output.
	bits = bits[:len(bits)/8*8]

	var got strings.Builder
	for _, b := range buf.Bytes() {
		got.WriteString(fmt.Sprintf("%08b", b))
	}
	if got.String() != bits {
		t.Errorf("\ngot  %s\nwant %s", got.String(), bits)
	}
}

func TestUnpackTruncated(t *testing.T) {
	u := newBitUnpacker(bytes.NewReader([]byte{0xff}), 12)
	if _, err := u.next(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
}
