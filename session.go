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
	"context"
	"fmt"
	"math"
	"time"

	"github.com/misson20000/go-fastboot/internal/frame"
)

// defaultProduct is the getvar:product answer when none is configured.
const defaultProduct = "go-fastboot"

// Session is a single fastboot protocol run over one transport.
//
// Thread Safety: Session is NOT thread-safe. It is mutated exclusively by
// the goroutine that calls Run; there are no locks and correctness rests
// on the fixed step order (RX before TX within a tick) and the TX-idle
// gating of command dispatch.
type Session struct {
	transport Transport
	display   StatusSink
	staging   *downloadStaging
	sched     maintenanceScheduler

	urgentMaintenance  func()
	routineMaintenance func()
	restart            func()

	product      string
	serialNumber string

	status          Status
	rxState         rxState
	txState         txState
	tightTurnaround bool

	// one extra slot so a terminator always fits after a full payload
	rxBuffer [frame.CommandBufferSize + 1]byte
	rxLength int
	txBuffer [frame.CommandBufferSize + 1]byte
	txLength int
}

// New creates a session over the given transport. Downloads are staged
// into region, whose length is the advertised max-download-size.
func New(transport Transport, region []byte, opts ...Option) (*Session, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}
	if len(region) == 0 {
		return nil, ErrNoDownloadRegion
	}
	if int64(len(region)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: staging region larger than 4 GiB", ErrInvalidParameter)
	}

	session := &Session{
		transport: transport,
		display:   NopSink{},
		staging:   newDownloadStaging(region),
		sched:     maintenanceScheduler{now: time.Now},
		product:   defaultProduct,
		status:    StatusNormal,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// Run drives the session until it reaches a terminal status or the
// transport reports suspension (an ordinary disconnect, status stays
// normal). Cancelling the context ends the run as a protocol reset.
//
// The transport is closed exactly once on every exit path; the restart
// action, if any, fires after teardown and only when the terminal status
// is StatusRebootBootloader. Run returns the terminal status.
func (s *Session) Run(ctx context.Context) Status {
	s.display.SetText("fastboot started")

	s.pollControlEvents()

	s.rxEnterCommand()
	s.txEnterIdle()

	for s.status == StatusNormal {
		if ctx.Err() != nil {
			s.setStatus(StatusProtocolReset)
			break
		}

		if !s.tightTurnaround {
			s.sched.tick(s.urgentMaintenance, s.routineMaintenance)
		}

		// Check for a suspended link in case the cable was pulled.
		if s.transport.IsSuspended() {
			break // Disconnected.
		}

		s.pollControlEvents()

		s.stepRX()
		s.stepTX()

		if !s.tightTurnaround {
			s.display.SetText("rx state: " + s.rxState.String() + "\ntx state: " + s.txState.String())
		}
	}

	s.display.SetText(s.endText())

	_ = s.transport.Close()

	if s.status == StatusRebootBootloader && s.restart != nil {
		s.restart()
	}

	return s.status
}

// pollControlEvents folds a pending host-initiated control-channel reset
// into the status ratchet.
func (s *Session) pollControlEvents() {
	if s.transport.ControlEventPoll() {
		s.setStatus(StatusProtocolReset)
	}
}

func (s *Session) endText() string {
	switch s.status {
	case StatusNormal:
		return "fastboot ended"
	case StatusProtocolReset:
		return "fastboot ended (protocol reset)"
	case StatusInvalidState:
		return fmt.Sprintf("fastboot ended (invalid state: %d/%d)", s.rxState, s.txState)
	case StatusUSBError:
		return "fastboot ended (usb error)"
	case StatusRebootBootloader:
		return "fastboot ended (rebooting to bootloader)"
	default:
		return "fastboot ended"
	}
}

// Download returns the staging region slice holding the most recently
// declared payload. It is fully populated once the session has answered
// the download's closing OKAY.
func (s *Session) Download() []byte {
	return s.staging.bytes()
}
