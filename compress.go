package lzw

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Compress compresses src. Options nil means DefaultOptions().
// An empty src yields a stream holding only the end and flush codes.
func Compress(src []byte, opts *Options) ([]byte, error) {
	var out bytes.Buffer
	// Rough guess: half the input plus the trailing codes.
	out.Grow(len(src)/2 + 8)

	if _, err := compressFromByteReader(&out, &sliceByteReader{data: src}, opts); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// CompressStream compresses everything read from r into w.
// The stream is complete once CompressStream returns without error;
// after an error, whatever reached w must be discarded.
func CompressStream(w io.Writer, r io.Reader, opts *Options) (Stats, error) {
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

	return compressFromByteReader(w, byteReader, opts)
}

// compressFromByteReader runs one compression pass with a fresh dictionary.
func compressFromByteReader(w io.Writer, r io.ByteReader, opts *Options) (Stats, error) {
	var st Stats
	width := opts.width()

	dict, err := newDictionary(width)
	if err != nil {
		return st, err
	}

	bw := bufio.NewWriter(w)
	out := newBitPacker(bw, width)

	// Read a byte from the source.
	// io.EOF is passed through so the caller can end the stream.
	readByte := func() (byte, error) {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}

			return 0, fmt.Errorf("reading input: %w", err)
		}
		st.In++

		return b, nil
	}

	first, err := readByte()
	switch {
	case err == nil:
		// current is the code of the longest string matched so far.
		current := uint32(first)
		for {
			b, err := readByte()
			if err == io.EOF {
				break
			}
			if err != nil {
				return st, err
			}

			slot := dict.locate(current, b)
			if code, ok := dict.lookup(slot); ok {
				current = code
				continue
			}

			if err := out.emit(current); err != nil {
				return st, err
			}
			if _, ok := dict.insert(slot, current, b); ok {
				st.Defined++
				if dict.full() {
					opts.logf("lzw: dictionary full after %d input bytes; no new codes", st.In)
				}
			}
			current = uint32(b)
		}

		if err := out.emit(current); err != nil {
			return st, err
		}
	case err != io.EOF:
		return st, err
	}

	if err := out.finish(EndCode(width)); err != nil {
		return st, err
	}
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("writing output: %w", err)
	}

	st.Codes = out.codes - 2
	st.Out = streamLen(st.Codes, width)
	st.Full = dict.full()
	opts.logf("lzw: compressed %d bytes into %d bytes (%d codes, %d defined, width %d)",
		st.In, st.Out, st.Codes, st.Defined, width)

	return st, nil
}
