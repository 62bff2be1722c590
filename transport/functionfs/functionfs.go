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

//go:build linux

// Package functionfs provides the Linux USB gadget transport for fastboot,
// built on FunctionFS bulk endpoints
package functionfs

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	fastboot "github.com/misson20000/go-fastboot"
)

const (
	// Endpoint files appear in descriptor order under the mount:
	// ep0 control, ep1 bulk IN, ep2 bulk OUT.
	ep0Name   = "ep0"
	epInName  = "ep1"
	epOutName = "ep2"

	// One non-blocking bulk read accepts up to this many bytes.
	maxBulkTransfer = 4096
)

// FunctionFS event types (linux/usb/functionfs.h)
const (
	eventBind = iota
	eventUnbind
	eventEnable
	eventDisable
	eventSetup
	eventSuspend
	eventResume
)

// eventSize is the fixed size of struct usb_functionfs_event.
const eventSize = 12

// Transport implements the fastboot.Transport interface over FunctionFS.
// The caller is expected to have mounted FunctionFS and bound the function
// to a UDC via configfs; New only speaks to the endpoint files.
type Transport struct {
	dir string

	ep0   int
	epIn  int
	epOut int

	readBuf   []byte
	readArmed bool

	writeBuf    []byte
	writeOffset int
	writeArmed  bool

	suspended bool
	closed    bool
}

// New opens the endpoint files under the given FunctionFS mount, writes
// the fastboot interface descriptors and strings, and leaves all
// endpoints in non-blocking mode.
func New(dir string) (*Transport, error) {
	t := &Transport{dir: dir, ep0: -1, epIn: -1, epOut: -1}

	ep0, err := unix.Open(filepath.Join(dir, ep0Name), unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", ep0Name, err)
	}
	t.ep0 = ep0

	if _, err := unix.Write(t.ep0, ffsDescriptors()); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("failed to write descriptors: %w", err)
	}
	if _, err := unix.Write(t.ep0, ffsStrings()); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("failed to write strings: %w", err)
	}

	if t.epIn, err = unix.Open(filepath.Join(dir, epInName), unix.O_RDWR, 0); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("failed to open %s: %w", epInName, err)
	}
	if t.epOut, err = unix.Open(filepath.Join(dir, epOutName), unix.O_RDWR, 0); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("failed to open %s: %w", epOutName, err)
	}

	for _, fd := range []int{t.ep0, t.epIn, t.epOut} {
		if err := unix.SetNonblock(fd, true); err != nil {
			_ = t.Close()
			return nil, fmt.Errorf("failed to set nonblocking: %w", err)
		}
	}

	return t, nil
}

// BeginRead arms a read on the bulk OUT endpoint
func (t *Transport) BeginRead(buf []byte) error {
	if t.closed {
		return fastboot.ErrTransportClosed
	}
	if t.readArmed {
		return fastboot.ErrTransferActive
	}
	t.readBuf = buf
	t.readArmed = true
	return nil
}

// ReadPoll attempts the armed read; EAGAIN maps to a pending transfer
func (t *Transport) ReadPoll() (int, error) {
	if !t.readArmed {
		return 0, fastboot.ErrNoTransfer
	}

	n, err := unix.Read(t.epOut, t.readBuf)
	if err == unix.EAGAIN {
		return 0, fastboot.ErrTransferPending
	}
	t.readArmed = false
	if err != nil {
		return 0, fastboot.NewTransportError("ReadPoll", t.dir, err)
	}
	return n, nil
}

// BeginWrite arms a write on the bulk IN endpoint
func (t *Transport) BeginWrite(buf []byte) error {
	if t.closed {
		return fastboot.ErrTransportClosed
	}
	if t.writeArmed {
		return fastboot.ErrTransferActive
	}
	t.writeBuf = buf
	t.writeOffset = 0
	t.writeArmed = true
	return nil
}

// WritePoll pushes the armed write forward; short writes keep the
// transfer pending until the whole frame has been accepted
func (t *Transport) WritePoll() (int, error) {
	if !t.writeArmed {
		return 0, fastboot.ErrNoTransfer
	}

	n, err := unix.Write(t.epIn, t.writeBuf[t.writeOffset:])
	if err == unix.EAGAIN {
		return 0, fastboot.ErrTransferPending
	}
	if err != nil {
		t.writeArmed = false
		return 0, fastboot.NewTransportError("WritePoll", t.dir, err)
	}

	t.writeOffset += n
	if t.writeOffset < len(t.writeBuf) {
		return 0, fastboot.ErrTransferPending
	}

	t.writeArmed = false
	return t.writeOffset, nil
}

// ControlEventPoll drains pending ep0 events. SETUP reports a
// host-initiated reconfiguration; ENABLE/DISABLE/SUSPEND/RESUME update
// the suspension flag.
func (t *Transport) ControlEventPoll() bool {
	reset := false
	var event [eventSize]byte

	for {
		n, err := unix.Read(t.ep0, event[:])
		if err != nil || n < eventSize {
			break
		}

		switch event[8] {
		case eventSetup:
			t.ackSetup(event[0])
			reset = true
		case eventEnable, eventResume:
			t.suspended = false
		case eventDisable, eventSuspend:
			t.suspended = true
		}
	}

	return reset
}

// ackSetup completes the zero-length status stage of a control transfer
// so the host is not left hanging while the session winds down.
func (t *Transport) ackSetup(bmRequestType byte) {
	const usbDirIn = 0x80
	if bmRequestType&usbDirIn != 0 {
		_, _ = unix.Write(t.ep0, nil)
	} else {
		_, _ = unix.Read(t.ep0, nil)
	}
}

// IsSuspended reports the link state as of the last event drain
func (t *Transport) IsSuspended() bool {
	return t.suspended
}

// MaxTransferSize returns the bulk read chunking bound
func (*Transport) MaxTransferSize() int {
	return maxBulkTransfer
}

// Close closes the endpoint files
func (t *Transport) Close() error {
	if t.closed {
		return fastboot.ErrTransportClosed
	}
	t.closed = true
	for _, fd := range []int{t.epOut, t.epIn, t.ep0} {
		if fd >= 0 {
			_ = unix.Close(fd)
		}
	}
	return nil
}

// Type returns fastboot.TransportFunctionFS
func (*Transport) Type() fastboot.TransportType {
	return fastboot.TransportFunctionFS
}
