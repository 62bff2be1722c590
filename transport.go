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

package fastboot

// Transport is the bulk endpoint pair the protocol engine runs over.
// This can be implemented by USB gadget (FunctionFS) or serial backends.
//
// All I/O is non-blocking with poll-for-completion semantics: a Begin call
// arms at most one transfer per direction, and the matching Poll call
// reports completion. While a transfer is still in flight, Poll returns
// ErrTransferPending; the caller is expected to come back on a later loop
// tick rather than wait. A Poll must never block.
type Transport interface {
	// BeginRead arms a single inbound transfer of up to len(buf) bytes.
	// The buffer stays owned by the transport until ReadPoll completes.
	BeginRead(buf []byte) error

	// ReadPoll reports the armed read. It returns ErrTransferPending while
	// the transfer is still in flight, or the number of bytes received.
	ReadPoll() (int, error)

	// BeginWrite arms a single outbound transfer of the given bytes.
	BeginWrite(buf []byte) error

	// WritePoll reports the armed write. It returns ErrTransferPending
	// while the transfer is still in flight, or the number of bytes sent.
	WritePoll() (int, error)

	// ControlEventPoll returns true when the host performed a reset or
	// reconfiguration on the control channel. It must not block.
	ControlEventPoll() bool

	// IsSuspended returns true while the link is suspended, which the
	// engine treats as an ordinary disconnect.
	IsSuspended() bool

	// MaxTransferSize returns the largest single bulk read the transport
	// supports. Download staging chunks its reads to this bound.
	MaxTransferSize() int

	// Close releases the transport. The engine calls it exactly once on
	// every exit path; in-flight transfers are abandoned to teardown.
	Close() error

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportFunctionFS represents Linux USB gadget FunctionFS transport.
	TransportFunctionFS TransportType = "functionfs"
	// TransportSerial represents serial port transport.
	TransportSerial TransportType = "serial"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)
