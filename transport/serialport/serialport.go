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

// Package serialport provides a development transport carrying fastboot
// framing over a serial port
package serialport

import (
	"fmt"
	"sync"

	"go.bug.st/serial"

	fastboot "github.com/misson20000/go-fastboot"
)

const (
	defaultBaudRate = 115200

	// One port read returns whatever is buffered, up to this bound.
	maxSerialTransfer = 4096
)

// pendingTransfer records the completion of one in-flight port operation.
type pendingTransfer struct {
	done bool
	n    int
	err  error
}

// Transport implements the fastboot.Transport interface over a serial
// port. The port API blocks, so each armed transfer runs on its own
// goroutine and the poll calls only inspect its recorded completion;
// the engine never blocks.
//
// A raw serial line has no control channel and no suspend signalling, so
// ControlEventPoll and IsSuspended are always false; link loss surfaces
// as a read or write error instead.
type Transport struct {
	port     serial.Port
	portName string

	mu    sync.Mutex
	read  *pendingTransfer
	write *pendingTransfer

	closed bool
}

// New opens a serial port at 115200 baud
func New(portName string) (*Transport, error) {
	mode := &serial.Mode{BaudRate: defaultBaudRate}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}

	return &Transport{port: port, portName: portName}, nil
}

// BeginRead arms a read of up to len(buf) bytes
func (t *Transport) BeginRead(buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fastboot.ErrTransportClosed
	}
	if t.read != nil {
		return fastboot.ErrTransferActive
	}

	transfer := &pendingTransfer{}
	t.read = transfer

	go func() {
		n, err := t.port.Read(buf)

		t.mu.Lock()
		defer t.mu.Unlock()
		transfer.n = n
		transfer.err = err
		transfer.done = true
	}()

	return nil
}

// ReadPoll reports the armed read
func (t *Transport) ReadPoll() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.read == nil {
		return 0, fastboot.ErrNoTransfer
	}
	if !t.read.done {
		return 0, fastboot.ErrTransferPending
	}

	transfer := t.read
	t.read = nil
	if transfer.err != nil {
		return 0, fastboot.NewTransportError("ReadPoll", t.portName, transfer.err)
	}
	return transfer.n, nil
}

// BeginWrite arms a write of the given bytes
func (t *Transport) BeginWrite(buf []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fastboot.ErrTransportClosed
	}
	if t.write != nil {
		return fastboot.ErrTransferActive
	}

	transfer := &pendingTransfer{}
	t.write = transfer

	go func() {
		n, err := t.port.Write(buf)

		t.mu.Lock()
		defer t.mu.Unlock()
		transfer.n = n
		transfer.err = err
		transfer.done = true
	}()

	return nil
}

// WritePoll reports the armed write
func (t *Transport) WritePoll() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.write == nil {
		return 0, fastboot.ErrNoTransfer
	}
	if !t.write.done {
		return 0, fastboot.ErrTransferPending
	}

	transfer := t.write
	t.write = nil
	if transfer.err != nil {
		return 0, fastboot.NewTransportError("WritePoll", t.portName, transfer.err)
	}
	return transfer.n, nil
}

// ControlEventPoll always returns false; a raw serial line carries no
// control channel
func (*Transport) ControlEventPoll() bool {
	return false
}

// IsSuspended always returns false
func (*Transport) IsSuspended() bool {
	return false
}

// MaxTransferSize returns the read chunking bound
func (*Transport) MaxTransferSize() int {
	return maxSerialTransfer
}

// Close closes the port; in-flight transfer goroutines fail out
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fastboot.ErrTransportClosed
	}
	t.closed = true

	if err := t.port.Close(); err != nil {
		return fmt.Errorf("failed to close serial port %s: %w", t.portName, err)
	}
	return nil
}

// Type returns fastboot.TransportSerial
func (*Transport) Type() fastboot.TransportType {
	return fastboot.TransportSerial
}
