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

	"github.com/misson20000/go-fastboot/internal/frame"
)

// txState is the state of the transmit path. Its visibility at idle is the
// synchronization signal the RX gate states watch.
type txState int

const (
	txIdle txState = iota
	txSendResponse
)

func (t txState) String() string {
	switch t {
	case txIdle:
		return "idle"
	case txSendResponse:
		return "send response"
	default:
		return "invalid"
	}
}

func (s *Session) stepTX() {
	switch s.txState {
	case txIdle:
		// nothing in flight
	case txSendResponse:
		s.txStateSendResponse()
	default:
		s.setStatus(StatusInvalidState)
	}
}

// state entry

func (s *Session) txEnterIdle() {
	s.txState = txIdle
}

func (s *Session) txEnterSendResponse() {
	// An empty download completes inside disposition resolution and has
	// already armed its closing response; the outer arm must not fire a
	// second write for the same buffer.
	if s.txState == txSendResponse {
		return
	}

	s.txLength = frame.PayloadLength(s.txBuffer[:])

	if err := s.transport.BeginWrite(s.txBuffer[:s.txLength]); err != nil {
		s.setStatus(StatusUSBError)
	}

	s.txState = txSendResponse
}

// state process

func (s *Session) txStateSendResponse() {
	n, err := s.transport.WritePoll()
	if errors.Is(err, ErrTransferPending) {
		return // still active, wait a bit longer
	}
	if err != nil {
		s.setStatus(StatusUSBError)
		return
	}

	s.txLength = n

	s.txEnterIdle() // the rx state machine will pick up on this if it cares
}
