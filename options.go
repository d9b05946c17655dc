package lzw

// Options configures Compress and Expand behavior.
// The stream carries no header, so both sides must agree on Width out of band.
type Options struct {
	// Width is the code width in bits, MinWidth..MaxWidth. Zero means DefaultWidth.
	Width int
	// Logf, if set, receives diagnostics: the dictionary filling up and a
	// summary line per call.
	Logf func(format string, args ...any)
}

// DefaultOptions returns options for default behavior: 12-bit codes, no logging.
func DefaultOptions() *Options {
	return &Options{
		Width: DefaultWidth,
	}
}

func (o *Options) width() int {
	if o == nil || o.Width == 0 {
		return DefaultWidth
	}

	return o.Width
}

func (o *Options) logf(f string, args ...any) {
	if o != nil && o.Logf != nil {
		o.Logf(f, args...)
	}
}
