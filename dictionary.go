package lzw

import "fmt"

// unusedSlot marks an empty slot. Code 0 is a literal and is never assigned
// to a dictionary entry.
const unusedSlot = 0

// dictionary maps (prefix code, appended byte) pairs to codes.
//
// The compressor addresses entries by hash slot (locate, insert). The expander
// addresses them by code (define, reconstruct); every code is a valid slot
// index since the table is larger than MaxCode.
type dictionary struct {
	codes  []uint16 // slot -> assigned code, unusedSlot when empty
	prefix []uint16 // slot -> prefix code
	suffix []byte   // slot -> appended byte

	shift   uint   // hashing shift, width-8
	size    int    // number of slots (prime)
	maxCode uint32 // last assignable code
	next    uint32 // next code to assign
}

// newDictionary returns an empty dictionary sized for width.
func newDictionary(width int) (*dictionary, error) {
	if !ValidWidth(width) {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrUnsupportedWidth, width, MinWidth, MaxWidth)
	}

	size := TableSize(width)

	return &dictionary{
		codes:   make([]uint16, size),
		prefix:  make([]uint16, size),
		suffix:  make([]byte, size),
		shift:   uint(width - hashShift),
		size:    size,
		maxCode: MaxCode(width),
		next:    FirstCode,
	}, nil
}

// full reports whether every dictionary code has been assigned.
func (d *dictionary) full() bool {
	return d.next > d.maxCode
}

// chainLimit is the longest prefix chain a valid dictionary can hold.
func (d *dictionary) chainLimit() int {
	return int(d.maxCode - literalMax)
}

// locate returns the slot holding (prefix, b), or the empty slot where the
// pair would be inserted.
func (d *dictionary) locate(prefix uint32, b byte) int {
	index := int((uint32(b)<<d.shift)^prefix) % d.size
	step := 1
	if index != 0 {
		step = d.size - index
	}

	for {
		if d.codes[index] == unusedSlot {
			return index
		}

		if uint32(d.prefix[index]) == prefix && d.suffix[index] == b {
			return index
		}

		index -= step
		if index < 0 {
			index += d.size
		}
	}
}

// lookup returns the code stored at slot.
func (d *dictionary) lookup(slot int) (uint32, bool) {
	c := d.codes[slot]

	return uint32(c), c != unusedSlot
}

// insert assigns the next code to (prefix, b) at slot, which must come from
// locate. It reports false once the dictionary is full.
func (d *dictionary) insert(slot int, prefix uint32, b byte) (uint32, bool) {
	if d.full() {
		return 0, false
	}

	c := d.next
	d.codes[slot] = uint16(c) // #nosec G115 -- c <= MaxCode(MaxWidth)
	d.prefix[slot] = uint16(prefix)
	d.suffix[slot] = b
	d.next++

	return c, true
}

// define registers (prefix, b) under the next code on the expanding side.
// It reports false once the dictionary is full.
func (d *dictionary) define(prefix uint32, b byte) bool {
	if d.full() {
		return false
	}

	d.prefix[d.next] = uint16(prefix) // #nosec G115 -- prefix < next
	d.suffix[d.next] = b
	d.next++

	return true
}

// reconstruct appends the string for c to buf back to front: the last byte
// first and the root literal last.
//
// The expander only defines codes whose prefix is smaller than the code
// itself and rejects codes beyond next, so streams never produce a chain
// that fails here; ErrCorruptStream guards the table against direct misuse.
func (d *dictionary) reconstruct(buf []byte, c uint32) ([]byte, error) {
	limit := d.chainLimit()
	for steps := 0; c > literalMax; steps++ {
		if steps >= limit || c > d.maxCode {
			return buf, fmt.Errorf("%w: prefix chain of code %d exceeds %d steps", ErrCorruptStream, c, limit)
		}

		buf = append(buf, d.suffix[c])
		c = uint32(d.prefix[c])
	}

	return append(buf, byte(c)), nil
}
