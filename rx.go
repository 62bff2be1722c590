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

	"github.com/misson20000/go-fastboot/internal/frame"
)

// rxState is the state of the receive path. The two waiting states are
// gates: they stall until the transmit path reaches idle, so the response
// buffer is never reused while a previous answer is still in flight.
type rxState int

const (
	rxIdle rxState = iota
	rxCommand
	rxDownload
	rxWaitingTxForProcess
	rxWaitingTxForRebootBootloader
)

func (r rxState) String() string {
	switch r {
	case rxIdle:
		return "idle"
	case rxCommand:
		return "command"
	case rxDownload:
		return "download"
	case rxWaitingTxForProcess:
		return "wtx process"
	case rxWaitingTxForRebootBootloader:
		return "wtx reboot"
	default:
		return "invalid"
	}
}

func (s *Session) stepRX() {
	switch s.rxState {
	case rxIdle:
		// transient target only, right before the interpreter runs
	case rxCommand:
		s.rxStateCommand()
	case rxDownload:
		s.rxStateDownload()
	case rxWaitingTxForProcess:
		s.rxStateWaitingTxForProcess()
	case rxWaitingTxForRebootBootloader:
		s.rxStateWaitingTxForRebootBootloader()
	default:
		s.setStatus(StatusInvalidState)
	}
}

// state entry

func (s *Session) rxEnterIdle() {
	s.rxState = rxIdle
}

func (s *Session) rxEnterCommand() {
	// Zero-fill so anything beyond the received length reads as
	// terminators; short download commands rely on this.
	clear(s.rxBuffer[:])

	if err := s.transport.BeginRead(s.rxBuffer[:frame.CommandBufferSize]); err != nil {
		s.setStatus(StatusUSBError)
	}

	s.rxState = rxCommand
}

func (s *Session) rxEnterWaitingTxForProcess() {
	s.rxState = rxWaitingTxForProcess
}

func (s *Session) rxEnterWaitingTxForRebootBootloader() {
	s.rxState = rxWaitingTxForRebootBootloader
}

func (s *Session) rxEnterDownload() {
	if !s.staging.done() {
		s.display.SetText(fmt.Sprintf("downloading (%d/%d KiB)", s.staging.head/1024, s.staging.size/1024))

		if err := s.transport.BeginRead(s.staging.nextChunk(s.transport.MaxTransferSize())); err != nil {
			s.setStatus(StatusUSBError)
		}

		s.rxState = rxDownload
	} else {
		s.tightTurnaround = false

		s.sendResponse(frame.ResponseOkay, dispositionNormal, "got it!")
	}
}

// state process

func (s *Session) rxStateCommand() {
	n, err := s.transport.ReadPoll()
	if errors.Is(err, ErrTransferPending) {
		return // still active, wait a bit longer
	}
	if err != nil {
		s.setStatus(StatusUSBError)
		return
	}

	s.rxLength = n
	// terminate so the interpreter sees a bounded line
	s.rxBuffer[s.rxLength] = 0

	s.rxEnterWaitingTxForProcess()
}

func (s *Session) rxStateDownload() {
	n, err := s.transport.ReadPoll()
	if errors.Is(err, ErrTransferPending) {
		return
	}
	if err != nil {
		s.setStatus(StatusUSBError)
		return
	}

	s.staging.advance(uint32(n))

	s.rxEnterDownload()
}

func (s *Session) rxStateWaitingTxForProcess() {
	/*
	   We only stay in this state if the host turns around faster than we do:

	   Host:   "getvar:version"
	   (device handles command)
	   (device begins to read another command, to be safe for fast host turnaround)
	   (device begins to send response, but does not finish)
	   Host:   "download:00001234"
	   (device must wait until the first response has fully left before
	    handling the next command)
	*/

	if s.txState == txIdle {
		s.rxEnterIdle()
		s.handleCommand()
	}
}

func (s *Session) rxStateWaitingTxForRebootBootloader() {
	if s.txState == txIdle {
		s.rxEnterIdle()
		s.setStatus(StatusRebootBootloader)
	}
}
