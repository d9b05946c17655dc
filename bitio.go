package lzw

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// byteWriter is a sink the packer can hand to bitio without an internal
// bufio wrapper, so unwritten tail bits are dropped instead of padded.
type byteWriter interface {
	io.Writer
	io.ByteWriter
}

// bitPacker writes fixed-width codes most significant bit first, with no
// alignment between codes. Complete bytes go straight to the sink; a partial
// byte stays buffered until later codes complete it.
type bitPacker struct {
	w     *bitio.Writer
	width uint8
	codes int64 // codes emitted so far
}

func newBitPacker(w byteWriter, width int) *bitPacker {
	return &bitPacker{
		w:     bitio.NewWriter(w),
		width: uint8(width), // #nosec G115 -- width is validated by newDictionary
	}
}

// emit writes the low width bits of code.
func (p *bitPacker) emit(code uint32) error {
	if err := p.w.WriteBits(uint64(code), p.width); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	p.codes++

	return nil
}

// finish terminates the stream with the end code and a zero code. The zero
// code pushes the last bits of the end code out; its own leftover bits are
// discarded.
func (p *bitPacker) finish(end uint32) error {
	if err := p.emit(end); err != nil {
		return err
	}

	return p.emit(0)
}

// bitUnpacker reads fixed-width codes written by bitPacker. Bytes are pulled
// from the source one at a time and only when the next code needs them.
type bitUnpacker struct {
	r     *bitio.Reader
	width uint8
	codes int64 // codes read so far
}

func newBitUnpacker(r io.ByteReader, width int) *bitUnpacker {
	return &bitUnpacker{
		r:     bitio.NewReader(byteReader{r}),
		width: uint8(width), // #nosec G115 -- width is validated by newDictionary
	}
}

// next returns the next code. Running out of input is ErrUnexpectedEOF: a
// well-formed stream always ends with the end code first.
func (u *bitUnpacker) next() (uint32, error) {
	code, err := u.r.ReadBits(u.width)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%w: after %d codes", ErrUnexpectedEOF, u.codes)
		}

		return 0, fmt.Errorf("reading input: %w", err)
	}

	u.codes++

	return uint32(code), nil // #nosec G115 -- at most MaxWidth bits
}

// flushLen returns how many bytes of the flush code follow the bytes read so
// far. The flush code is skipped, never decoded.
func (u *bitUnpacker) flushLen() int64 {
	bits := u.codes * int64(u.width)

	return (bits+int64(u.width))/8 - (bits+7)/8
}
