// Command nzip compresses a file into <name>.nzip with fixed-width LZW codes
// and checks the result by expanding it again.
//
//	nzip [-w width] [-k] [-n] [-o out] file      compress file to file.nzip
//	nzip -d [-w width] [-o out] file.nzip         expand to file.out
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/lzw"
	"golang.org/x/crypto/blake2b"
)

const (
	compressedExt = ".nzip"
	expandedExt   = ".out"
)

var errSameFile = errors.New("output would overwrite the input")

var (
	dashw int
	dashd bool
	dashk bool
	dashn bool
	dashv bool
	dashh bool
	dasho string
)

func init() {
	flag.IntVar(&dashw, "w", lzw.DefaultWidth, "code width in bits (9..14); expanding needs the same width")
	flag.BoolVar(&dashd, "d", false, "expand instead of compress")
	flag.BoolVar(&dashk, "k", false, "keep the expanded file written while verifying")
	flag.BoolVar(&dashn, "n", false, "skip verification after compressing")
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.StringVar(&dasho, "o", "", "output file (default: input name with .nzip or .out)")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if dashh {
		usage()
		os.Exit(0)
	}
	args := flag.Args()
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	if !lzw.ValidWidth(dashw) {
		exitf("width %d out of range %d..%d\n", dashw, lzw.MinWidth, lzw.MaxWidth)
	}

	opts := &lzw.Options{Width: dashw}
	if dashv {
		opts.Logf = logf
	}

	if dashd {
		if err := expandFile(args[0], outputName(args[0], dasho, expandedExt), opts); err != nil {
			exitf("%s\n", err)
		}
		return
	}
	if err := compressFile(args[0], outputName(args[0], dasho, compressedExt), opts); err != nil {
		exitf("%s\n", err)
	}
}

// outputName returns override if set, otherwise name with its extension
// replaced by ext.
func outputName(name, override, ext string) string {
	if override != "" {
		return override
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" || strings.HasSuffix(base, string(filepath.Separator)) {
		base = name
	}

	return base + ext
}

// compressFile compresses src into dst and, unless -n is set, expands dst
// again and compares digests with src.
func compressFile(src, dst string, opts *lzw.Options) error {
	data, release, err := readInput(src)
	if err != nil {
		return err
	}
	defer release()

	if err := checkDistinct(dst, src); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	st, err := lzw.CompressStream(f, bytes.NewReader(data), opts)
	if err == nil {
		err = f.Close()
	} else {
		f.Close()
	}
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("compressing %s: %w", src, err)
	}
	if dashv {
		logf("%s: %d -> %d bytes (%.1f%%)", src, st.In, st.Out, ratio(st.Out, st.In))
	}

	if dashn {
		return nil
	}

	return verify(src, dst, blake2b.Sum256(data), opts)
}

// verify expands the compressed file and checks that the result hashes to want.
// With -k the expanded bytes are kept next to the compressed file.
func verify(src, compressed string, want [blake2b.Size256]byte, opts *lzw.Options) error {
	f, err := os.Open(compressed)
	if err != nil {
		return err
	}
	defer f.Close()

	h, _ := blake2b.New256(nil)
	var sink io.Writer = h
	var kept *os.File
	if dashk {
		keep := outputName(compressed, "", expandedExt)
		if err := checkDistinct(keep, src, compressed); err != nil {
			return err
		}
		kept, err = os.Create(keep)
		if err != nil {
			return err
		}
		defer kept.Close()
		sink = io.MultiWriter(h, kept)
	}

	if _, err := lzw.ExpandStream(sink, f, opts); err != nil {
		return fmt.Errorf("verifying %s: %w", compressed, err)
	}
	if got := h.Sum(nil); !bytes.Equal(got, want[:]) {
		return fmt.Errorf("verifying %s: expanded data does not match the input (blake2b %x, want %x)", compressed, got, want)
	}
	if dashv {
		logf("%s: verified (blake2b %x)", compressed, want[:8])
	}

	return nil
}

// expandFile expands src into dst. A partial dst is removed on failure.
func expandFile(src, dst string, opts *lzw.Options) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := checkDistinct(dst, src); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	st, err := lzw.ExpandStream(out, in, opts)
	if err == nil {
		err = out.Close()
	} else {
		out.Close()
	}
	if err != nil {
		os.Remove(dst)
		if errors.Is(err, lzw.ErrWidthMismatch) || errors.Is(err, lzw.ErrUnexpectedEOF) {
			return fmt.Errorf("expanding %s: %w (was it compressed with -w %d?)", src, err, opts.Width)
		}
		return fmt.Errorf("expanding %s: %w", src, err)
	}
	if dashv {
		logf("%s: %d -> %d bytes", src, st.In, st.Out)
	}

	return nil
}

// checkDistinct fails if dst names one of the inputs, directly or through
// another path to the same file.
func checkDistinct(dst string, inputs ...string) error {
	dstInfo, statErr := os.Stat(dst)
	for _, in := range inputs {
		if filepath.Clean(dst) == filepath.Clean(in) {
			return fmt.Errorf("%s: %w %s", dst, errSameFile, in)
		}
		if statErr != nil {
			continue
		}
		if inInfo, err := os.Stat(in); err == nil && os.SameFile(dstInfo, inInfo) {
			return fmt.Errorf("%s: %w %s", dst, errSameFile, in)
		}
	}

	return nil
}

func ratio(out, in int64) float64 {
	if in == 0 {
		return 0
	}

	return 100 * float64(out) / float64(in)
}

// readInput returns the contents of name, mapped read-only where the
// platform allows it. release must be called once the data is no longer used.
func readInput(name string) ([]byte, func(), error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if mem, ok := mmap(f, info.Size()); ok {
		return mem, func() { unmap(mem) }, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, err
	}

	return data, func() {}, nil
}
