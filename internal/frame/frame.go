// go-fastboot
// Copyright (c) 2026 The go-fastboot Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-fastboot.
//
// go-fastboot is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-fastboot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-fastboot; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Package frame provides wire-format helpers and protocol constants for
// fastboot command/response framing
package frame

import (
	"bytes"
	"fmt"
)

// Frame size limits
const (
	// CommandBufferSize is the maximum command or response payload on the
	// wire. Buffers carry one extra terminator slot beyond this.
	CommandBufferSize = 64

	// TagSize is the length of the literal response tag.
	TagSize = 4

	// MessageSize is the maximum response message after the tag.
	MessageSize = CommandBufferSize - TagSize

	// SizeDigits is the exact width of the hex size field in a
	// download request.
	SizeDigits = 8
)

// ResponseType selects the 4-byte literal tag of a response frame
type ResponseType int

const (
	// ResponseInfo tags an informative message during a longer operation.
	ResponseInfo ResponseType = iota
	// ResponseFail tags a refused or failed command.
	ResponseFail
	// ResponseOkay tags a completed command.
	ResponseOkay
	// ResponseData tags acceptance of a data phase of the echoed size.
	ResponseData
)

// Tag returns the literal 4-byte tag for the response type
func (t ResponseType) Tag() string {
	switch t {
	case ResponseInfo:
		return "INFO"
	case ResponseFail:
		return "FAIL"
	case ResponseOkay:
		return "OKAY"
	case ResponseData:
		return "DATA"
	default:
		return "FAIL"
	}
}

// BuildResponse assembles a response frame into buf: the 4-byte tag, then
// the message truncated to MessageSize bytes, remainder zero-filled. buf
// must be at least CommandBufferSize+1 bytes so a terminator slot always
// survives.
func BuildResponse(buf []byte, typ ResponseType, message string) {
	clear(buf)
	copy(buf, typ.Tag())
	if len(message) > MessageSize {
		message = message[:MessageSize]
	}
	copy(buf[TagSize:], message)
}

// Line returns buf interpreted as a NUL-terminated string.
func Line(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return string(buf[:i])
	}
	return string(buf)
}

// PayloadLength returns the NUL-terminated length of buf, which is the
// transmitted length of a response frame.
func PayloadLength(buf []byte) int {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return i
	}
	return len(buf)
}

// ParseSize reads the window as big-endian hex nibbles, case-insensitive.
// Every byte must be a hex digit or the parse fails; a NUL from the
// zero-filled remainder of a short command fails it like any other
// non-hex byte.
func ParseSize(window []byte) (uint32, bool) {
	var size uint32
	for _, ch := range window {
		size <<= 4
		switch {
		case ch >= '0' && ch <= '9':
			size |= uint32(ch - '0')
		case ch >= 'a' && ch <= 'f':
			size |= uint32(ch-'a') + 0xa
		case ch >= 'A' && ch <= 'F':
			size |= uint32(ch-'A') + 0xa
		default:
			return 0, false
		}
	}
	return size, true
}

// FormatSize renders a size as 8 lowercase hex digits (DATA responses).
func FormatSize(size uint32) string {
	return fmt.Sprintf("%08x", size)
}

// FormatSizeUpper renders a size as 8 uppercase hex digits
// (the max-download-size variable).
func FormatSizeUpper(size uint32) string {
	return fmt.Sprintf("%08X", size)
}
