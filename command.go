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
	"strings"

	"github.com/misson20000/go-fastboot/internal/frame"
)

// protocolVersion is the fastboot protocol version this engine speaks.
const protocolVersion = "0.4"

// disposition decides which RX target gets armed after a response is
// queued. It is computed by the command interpreter and consumed exactly
// once by sendResponse.
type disposition int

const (
	dispositionNormal disposition = iota
	dispositionDownload
	dispositionRebootBootloader
)

// sendResponse builds the response frame and arms both state machines.
//
// The next receive is armed before the transmit: a fast host may pipeline
// its next command the moment the response lands, and it has to find a
// read already waiting or the bytes are lost.
func (s *Session) sendResponse(typ frame.ResponseType, disp disposition, message string) {
	frame.BuildResponse(s.txBuffer[:], typ, message)

	switch disp {
	case dispositionNormal:
		s.rxEnterCommand()
	case dispositionDownload:
		s.rxEnterDownload()
	case dispositionRebootBootloader:
		s.rxEnterWaitingTxForRebootBootloader()
	}

	s.txEnterSendResponse()
}

// handleCommand interprets the completed command line in the receive
// buffer and emits exactly one response.
func (s *Session) handleCommand() {
	command := frame.Line(s.rxBuffer[:])

	switch {
	case strings.HasPrefix(command, "getvar:"):
		s.handleGetVar(strings.TrimPrefix(command, "getvar:"))
	case command == "reboot-bootloader":
		s.sendResponse(frame.ResponseOkay, dispositionRebootBootloader, "")
	case strings.HasPrefix(command, "download:"):
		s.handleDownload()
	default:
		// frame building truncates the echoed line so the total frame
		// still fits on the wire
		s.sendResponse(frame.ResponseFail, dispositionNormal, "unknown command: "+command)
	}
}

func (s *Session) handleGetVar(variable string) {
	switch variable {
	case "version":
		s.sendResponse(frame.ResponseOkay, dispositionNormal, protocolVersion)
	case "product":
		s.sendResponse(frame.ResponseOkay, dispositionNormal, s.product)
	case "serialno":
		if s.serialNumber != "" {
			s.sendResponse(frame.ResponseOkay, dispositionNormal, s.serialNumber)
			return
		}
		s.sendResponse(frame.ResponseFail, dispositionNormal, "unknown variable")
	case "max-download-size":
		s.sendResponse(frame.ResponseOkay, dispositionNormal, frame.FormatSizeUpper(s.staging.capacity()))
	default:
		s.sendResponse(frame.ResponseFail, dispositionNormal, "unknown variable")
	}
}

func (s *Session) handleDownload() {
	// Exactly eight hex digits follow the colon; the window is read raw
	// from the receive buffer so a short command fails the digit test on
	// the zero fill instead of slipping through.
	window := s.rxBuffer[len("download:") : len("download:")+frame.SizeDigits]

	size, ok := frame.ParseSize(window)
	if !ok {
		s.sendResponse(frame.ResponseFail, dispositionNormal, "failed to parse size")
		return
	}

	if size > s.staging.capacity() {
		s.sendResponse(frame.ResponseFail, dispositionNormal, "download size too large")
		return
	}

	s.staging.begin(size)
	s.tightTurnaround = true

	s.sendResponse(frame.ResponseData, dispositionDownload, frame.FormatSize(size))
}
