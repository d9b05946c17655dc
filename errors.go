// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/lzw

package lzw

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrUnsupportedWidth = errors.New("unsupported code width")
	ErrCorruptStream    = errors.New("corrupt code stream")
	ErrWidthMismatch    = errors.New("code not defined at this width")
	ErrUnexpectedEOF    = errors.New("unexpected end of input before end code")
	ErrTrailingData     = errors.New("trailing bytes after lzw stream")
	ErrNilReader        = errors.New("reader is nil")
	ErrNilWriter        = errors.New("writer is nil")
)
