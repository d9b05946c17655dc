package lzw

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/exp/slices"
)

// Expand expands a complete stream produced by Compress.
// Options nil means DefaultOptions(); the width must match the one used to compress.
func Expand(src []byte, opts *Options) ([]byte, error) {
	reader := &sliceByteReader{data: src}

	var out bytes.Buffer
	out.Grow(2 * len(src))

	if _, err := expandFromByteReader(&out, reader, opts); err != nil {
		return nil, err
	}

	if reader.pos != len(src) {
		return nil, fmt.Errorf("%w: consumed=%d input=%d", ErrTrailingData, reader.pos, len(src))
	}

	return out.Bytes(), nil
}

// ExpandStream expands one stream from r into w.
// Decoding stops right after the stream's flush code, so streams written
// back to back can be expanded by calling ExpandStream repeatedly on the same
// io.ByteReader. Stats.In reports the compressed bytes consumed.
// After an error, whatever reached w must be discarded.
func ExpandStream(w io.Writer, r io.Reader, opts *Options) (Stats, error) {
	if r == nil {
		return Stats{}, ErrNilReader
	}
	if w == nil {
		return Stats{}, ErrNilWriter
	}

	var byteReader io.ByteReader
	if existing, ok := r.(io.ByteReader); ok {
		byteReader = existing
	} else {
		byteReader = bufio.NewReader(r)
	}

	return expandFromByteReader(w, byteReader, opts)
}

// expandFromByteReader runs one expansion pass with a fresh dictionary.
func expandFromByteReader(w io.Writer, r io.ByteReader, opts *Options) (Stats, error) {
	var st Stats
	width := opts.width()

	dict, err := newDictionary(width)
	if err != nil {
		return st, err
	}

	countingReader := &countingByteReader{base: r}
	in := newBitUnpacker(countingReader, width)
	bw := bufio.NewWriter(w)
	end := EndCode(width)

	// Write one decoded string to the sink.
	write := func(p []byte) error {
		n, err := bw.Write(p)
		st.Out += int64(n)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}

	first, err := in.next()
	if err != nil {
		return st, err
	}

	if first != end {
		if first > literalMax {
			return st, fmt.Errorf("%w: first code %d is not a literal (width %d)", ErrWidthMismatch, first, width)
		}
		if err := write([]byte{byte(first)}); err != nil {
			return st, err
		}
		st.Codes++

		oldCode := first
		firstChar := byte(first) // first byte of the previous string

		// Longest string: a full prefix chain, its root, and the extra
		// character of the KwKwK case.
		buf := make([]byte, 0, dict.chainLimit()+2)

		for {
			newCode, err := in.next()
			if err != nil {
				return st, err
			}
			if newCode == end {
				break
			}

			buf = buf[:0]
			switch {
			case newCode > dict.next:
				return st, fmt.Errorf("%w: code %d read before code %d was defined (width %d)",
					ErrWidthMismatch, newCode, dict.next, width)
			case newCode == dict.next:
				// The compressor defined newCode right after emitting oldCode:
				// it is the previous string plus its own first byte.
				buf = append(buf, firstChar)
				buf, err = dict.reconstruct(buf, oldCode)
				st.KwKwK++
			default:
				buf, err = dict.reconstruct(buf, newCode)
			}
			if err != nil {
				return st, err
			}

			firstChar = buf[len(buf)-1]
			slices.Reverse(buf)
			if err := write(buf); err != nil {
				return st, err
			}
			st.Codes++

			// Always one entry behind the compressor.
			if dict.define(oldCode, firstChar) {
				st.Defined++
				if dict.full() {
					opts.logf("lzw: dictionary full after %d output bytes; no new codes", st.Out)
				}
			}
			oldCode = newCode
		}
	}

	if err := skipFlush(countingReader, in.flushLen()); err != nil {
		return st, err
	}
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("writing output: %w", err)
	}

	st.In = countingReader.count
	st.Full = dict.full()
	opts.logf("lzw: expanded %d bytes into %d bytes (%d codes, %d defined, width %d)",
		st.In, st.Out, st.Codes, st.Defined, width)

	return st, nil
}

// skipFlush consumes the n bytes carrying the flush code. They may be missing
// at the very end of the input.
func skipFlush(r io.ByteReader, n int64) error {
	for ; n > 0; n-- {
		if _, err := r.ReadByte(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("reading input: %w", err)
		}
	}

	return nil
}
