/*
Package lzw implements a fixed-width LZW dictionary codec.

Format: a sequence of W-bit codes packed back to back, most significant bit
first, with no alignment between codes and no header. Codes 0..255 are literal
bytes; codes 256..2^W-2 are dictionary strings assigned in increasing order;
2^W-1 ends the stream and is followed by one zero code that pushes the last
bits out. Bits left over after the zero code are not written.
W is 9..14 (default 12) and is not stored in the stream: both sides must use
the same width.

The compressor and the expander each build their own dictionary from the data
seen so far; no dictionary is transferred. The dictionary stops growing when
its codes run out and the stream continues with the codes already defined.

Use Compress(src, opts) and Expand(src, opts) with nil for default options.
Use CompressStream(w, r, opts) and ExpandStream(w, r, opts) for io streams.
ExpandStream stops right after the stream, so consecutive streams can be read
from one io.ByteReader.
Set Options.Logf to receive diagnostics.

# Examples

Round-trip compress and expand:

	enc, err := lzw.Compress(data, nil)
	if err != nil {
		return err
	}
	dec, err := lzw.Expand(enc, nil)
	if err != nil {
		return err
	}
	// dec equals data

Compress a file with 14-bit codes:

	opts := &lzw.Options{Width: 14}
	st, err := lzw.CompressStream(dst, src, opts)
	if err != nil {
		return err
	}
	_ = st.Out

Expand two streams written back to back:

	br := bufio.NewReader(f)
	if _, err := lzw.ExpandStream(outA, br, nil); err != nil {
		return err
	}
	if _, err := lzw.ExpandStream(outB, br, nil); err != nil {
		return err
	}
*/
package lzw
