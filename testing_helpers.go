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

import "sync"

// MockTransport is a scripted stand-in for the host side of the link.
// Queued transfers are delivered to whatever read the engine has armed;
// data pushed with Send while no read is armed is recorded as lost, which
// is how the tests observe the no-loss-under-burst guarantee.
type MockTransport struct {
	mu sync.Mutex

	queue []hostTransfer
	read  *mockTransfer
	write *mockTransfer

	writes [][]byte
	lost   [][]byte
	ops    []string

	writeDelay    int
	readErr       error
	writeErr      error
	beginReadErr  error
	beginWriteErr error

	resetPending bool
	suspended    bool
	maxTransfer  int
	closeCount   int

	// WriteCompleteFunc, if set, runs as soon as an outbound transfer
	// completes, before WritePoll returns. It models a host reacting to a
	// response the instant the final byte arrives.
	WriteCompleteFunc func(data []byte)
}

type hostTransfer struct {
	data  []byte
	delay int
}

type mockTransfer struct {
	buf     []byte // engine's buffer (reads) or a snapshot (writes)
	data    []byte
	hasData bool
	delay   int
}

// NewMockTransport creates a mock transport with a 512-byte transfer bound
func NewMockTransport() *MockTransport {
	return &MockTransport{maxTransfer: 512}
}

// QueueCommand schedules a command line the host will send as soon as a
// read is armed for it.
func (m *MockTransport) QueueCommand(line string) {
	m.Queue([]byte(line), 0)
}

// Queue schedules host data with a poll delay: once attached to an armed
// read, the transfer stays pending for delay polls before completing.
func (m *MockTransport) Queue(data []byte, delay int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read != nil && !m.read.hasData {
		m.read.data = append([]byte(nil), data...)
		m.read.hasData = true
		m.read.delay = delay
		return
	}
	m.queue = append(m.queue, hostTransfer{data: append([]byte(nil), data...), delay: delay})
}

// Send pushes host data right now. If no read is armed to receive it the
// data is recorded as lost.
func (m *MockTransport) Send(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read != nil && !m.read.hasData {
		m.read.data = append([]byte(nil), data...)
		m.read.hasData = true
		return
	}
	m.lost = append(m.lost, append([]byte(nil), data...))
}

// BeginRead arms an inbound transfer, binding any queued host data to it
func (m *MockTransport) BeginRead(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beginReadErr != nil {
		err := m.beginReadErr
		m.beginReadErr = nil
		return err
	}
	if m.read != nil {
		return ErrTransferActive
	}
	m.ops = append(m.ops, "BeginRead")
	m.read = &mockTransfer{buf: buf}
	if len(m.queue) > 0 {
		next := m.queue[0]
		m.queue = m.queue[1:]
		m.read.data = next.data
		m.read.hasData = true
		m.read.delay = next.delay
	}
	return nil
}

// ReadPoll reports the armed read
func (m *MockTransport) ReadPoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		err := m.readErr
		m.readErr = nil
		m.read = nil
		return 0, err
	}
	if m.read == nil {
		return 0, ErrNoTransfer
	}
	if !m.read.hasData {
		return 0, ErrTransferPending
	}
	if m.read.delay > 0 {
		m.read.delay--
		return 0, ErrTransferPending
	}
	n := copy(m.read.buf, m.read.data)
	m.read = nil
	return n, nil
}

// BeginWrite arms an outbound transfer of a snapshot of buf
func (m *MockTransport) BeginWrite(buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.beginWriteErr != nil {
		err := m.beginWriteErr
		m.beginWriteErr = nil
		return err
	}
	if m.write != nil {
		return ErrTransferActive
	}
	m.ops = append(m.ops, "BeginWrite")
	m.write = &mockTransfer{buf: append([]byte(nil), buf...), delay: m.writeDelay}
	return nil
}

// WritePoll reports the armed write, running WriteCompleteFunc on the
// completing poll
func (m *MockTransport) WritePoll() (int, error) {
	m.mu.Lock()
	if m.writeErr != nil {
		err := m.writeErr
		m.writeErr = nil
		m.write = nil
		m.mu.Unlock()
		return 0, err
	}
	if m.write == nil {
		m.mu.Unlock()
		return 0, ErrNoTransfer
	}
	if m.write.delay > 0 {
		m.write.delay--
		m.mu.Unlock()
		return 0, ErrTransferPending
	}
	data := m.write.buf
	m.writes = append(m.writes, data)
	callback := m.WriteCompleteFunc
	m.write = nil
	m.mu.Unlock()

	if callback != nil {
		callback(data)
	}
	return len(data), nil
}

// ControlEventPoll consumes a pending scripted reset
func (m *MockTransport) ControlEventPoll() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	pending := m.resetPending
	m.resetPending = false
	return pending
}

// TriggerReset scripts a host-initiated control-channel reset
func (m *MockTransport) TriggerReset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetPending = true
}

// IsSuspended reports the scripted suspension flag
func (m *MockTransport) IsSuspended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.suspended
}

// SetSuspended scripts link suspension
func (m *MockTransport) SetSuspended(suspended bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suspended = suspended
}

// MaxTransferSize returns the configured transfer bound
func (m *MockTransport) MaxTransferSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxTransfer
}

// SetMaxTransferSize overrides the transfer bound (chunking tests)
func (m *MockTransport) SetMaxTransferSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxTransfer = size
}

// SetWriteDelay makes every subsequent write stay pending for the given
// number of polls before completing
func (m *MockTransport) SetWriteDelay(polls int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeDelay = polls
}

// SetReadError scripts a failure on the next ReadPoll
func (m *MockTransport) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetWriteError scripts a failure on the next WritePoll
func (m *MockTransport) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetBeginReadError scripts a failure on the next BeginRead
func (m *MockTransport) SetBeginReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beginReadErr = err
}

// SetBeginWriteError scripts a failure on the next BeginWrite
func (m *MockTransport) SetBeginWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.beginWriteErr = err
}

// Close counts teardown calls
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
	return nil
}

// CloseCount returns how many times Close was called
func (m *MockTransport) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

// Writes returns the completed outbound transfers in order
func (m *MockTransport) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	writes := make([][]byte, len(m.writes))
	copy(writes, m.writes)
	return writes
}

// LostBytes returns host data that found no armed read
func (m *MockTransport) LostBytes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	lost := make([][]byte, len(m.lost))
	copy(lost, m.lost)
	return lost
}

// Ops returns the order of Begin calls the engine issued
func (m *MockTransport) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]string, len(m.ops))
	copy(ops, m.ops)
	return ops
}

// ReadArmed reports whether the engine currently has a read in flight
func (m *MockTransport) ReadArmed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read != nil
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}
