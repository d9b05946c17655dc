package lzw_test

import (
	"fmt"

	"github.com/woozymasta/lzw"
)

func Example() {
	data := []byte("TOBEORNOTTOBEORTOBEORNOT")
	enc, err := lzw.Compress(data, nil)
	if err != nil {
		panic(err)
	}
	dec, err := lzw.Expand(enc, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(dec))
	// Output:
	// TOBEORNOTTOBEORTOBEORNOT
}
