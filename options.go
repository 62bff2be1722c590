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
	"fmt"
	"time"

	"github.com/misson20000/go-fastboot/internal/frame"
)

// Option is a functional option for configuring a Session
type Option func(*Session) error

// WithProduct sets the getvar:product answer. It must fit a response
// message.
func WithProduct(name string) Option {
	return func(s *Session) error {
		if name == "" || len(name) > frame.MessageSize {
			return fmt.Errorf("%w: product name %q", ErrInvalidParameter, name)
		}
		s.product = name
		return nil
	}
}

// WithSerialNumber sets the getvar:serialno answer. Without it the
// variable reads as unknown.
func WithSerialNumber(serial string) Option {
	return func(s *Session) error {
		if len(serial) > frame.MessageSize {
			return fmt.Errorf("%w: serial number %q", ErrInvalidParameter, serial)
		}
		s.serialNumber = serial
		return nil
	}
}

// WithDisplay sets the sink receiving human-readable session status text
func WithDisplay(sink StatusSink) Option {
	return func(s *Session) error {
		if sink == nil {
			return fmt.Errorf("%w: nil status sink", ErrInvalidParameter)
		}
		s.display = sink
		return nil
	}
}

// WithMaintenance binds the periodic upkeep hooks: urgent runs at 100 ms
// cadence, routine at 30 s. Either may be nil. Both are skipped while a
// download holds the loop in tight turnaround.
func WithMaintenance(urgent, routine func()) Option {
	return func(s *Session) error {
		s.urgentMaintenance = urgent
		s.routineMaintenance = routine
		return nil
	}
}

// WithRestart binds the action fired once after teardown when the session
// ends with StatusRebootBootloader.
func WithRestart(restart func()) Option {
	return func(s *Session) error {
		s.restart = restart
		return nil
	}
}

// WithClock overrides the time source of the maintenance scheduler.
// Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) error {
		if now == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidParameter)
		}
		s.sched.now = now
		return nil
	}
}
