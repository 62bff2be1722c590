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

import (
	"errors"
	"fmt"
)

// Transport poll outcomes and contract violations.
//
// A transfer poll has three outcomes: completion, ErrTransferPending, or a
// real failure. The engine only ever distinguishes "pending" from "failed";
// any failure other than ErrTransferPending raises StatusUSBError.
var (
	// ErrTransferPending indicates the armed transfer has not completed
	// yet (not an error condition; poll again on a later tick).
	ErrTransferPending = errors.New("transfer still in flight")

	// ErrTransferActive indicates a Begin call while a transfer in the
	// same direction is already armed.
	ErrTransferActive = errors.New("transfer already in flight")

	// ErrNoTransfer indicates a Poll call with no transfer armed.
	ErrNoTransfer = errors.New("no transfer in flight")

	// ErrTransportClosed indicates an operation on a closed transport.
	ErrTransportClosed = errors.New("transport is closed")
)

// Session construction errors
var (
	// ErrNoTransport indicates a Session was constructed without a transport.
	ErrNoTransport = errors.New("no transport")

	// ErrNoDownloadRegion indicates a nil or empty download staging region.
	ErrNoDownloadRegion = errors.New("no download staging region")

	// ErrInvalidParameter indicates an option value that cannot be applied.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// TransportError wraps transport-level errors with additional context
type TransportError struct {
	Err  error  // Underlying error
	Op   string // Operation that failed
	Port string // Port, endpoint or device identifier
}

func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError with the given context
func NewTransportError(op, port string, err error) *TransportError {
	return &TransportError{Op: op, Port: port, Err: err}
}
