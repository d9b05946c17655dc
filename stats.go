package lzw

// Stats describes one compress or expand call.
type Stats struct {
	In      int64 // Bytes consumed from the source.
	Out     int64 // Bytes written to the sink.
	Codes   int64 // Data codes written or read, not counting the end and flush codes.
	Defined int   // Dictionary entries created.
	Full    bool  // The dictionary ran out of codes.

	// KwKwK counts codes the expander met one step before it could define
	// them (string, char, string, char, string input). Expand only.
	KwKwK int
}
