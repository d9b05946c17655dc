package lzw

// Code layout constants.
const (
	MinWidth     = 9   // Smallest code width that leaves room for dictionary codes.
	MaxWidth     = 14  // Largest code width with a known table size.
	DefaultWidth = 12  // Code width used when Options.Width is 0.
	FirstCode    = 256 // First dictionary code; codes 0..255 are literal bytes.

	literalMax = FirstCode - 1
	hashShift  = 8 // hash shift is width-hashShift
)

// Dictionary table sizes. Each is a prime somewhat larger than 2^width.
const (
	tableSize12 = 5021  // width <= 12
	tableSize13 = 9029  // width 13
	tableSize14 = 18041 // width 14
)

// ValidWidth reports whether width is a supported code width.
func ValidWidth(width int) bool {
	return width >= MinWidth && width <= MaxWidth
}

// EndCode returns the end-of-stream code for width (2^width - 1).
func EndCode(width int) uint32 {
	return 1<<uint(width) - 1
}

// MaxCode returns the largest dictionary code for width (2^width - 2).
func MaxCode(width int) uint32 {
	return EndCode(width) - 1
}

// TableSize returns the number of dictionary slots used for width.
func TableSize(width int) int {
	switch {
	case width <= 12:
		return tableSize12
	case width == 13:
		return tableSize13
	default:
		return tableSize14
	}
}

// streamLen returns the encoded length in bytes of a stream carrying codes
// data codes. The end and flush codes follow the data; the bits left over
// after the flush code are never written.
func streamLen(codes int64, width int) int64 {
	return (codes + 2) * int64(width) / 8
}
