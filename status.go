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

// Status is the session-level outcome. It is a ratchet: once raised it can
// move to an equal-or-higher value but never back down, and the scheduling
// loop exits at the end of the tick that moved it off StatusNormal.
type Status int

const (
	// StatusNormal is the only value under which the loop keeps running.
	StatusNormal Status = iota
	// StatusProtocolReset records a host-initiated control-channel reset.
	// A graceful end, not a failure.
	StatusProtocolReset
	// StatusInvalidState records a dispatcher reaching an unrecognized
	// state value. A defect, immediately fatal.
	StatusInvalidState
	// StatusUSBError records a transport primitive failing.
	StatusUSBError
	// StatusRebootBootloader is the controlled termination chosen by the
	// reboot-bootloader command. Not an error; the restart action fires
	// after teardown.
	StatusRebootBootloader
)

// IsError reports whether the status describes a failure rather than a
// clean or commanded end.
func (s Status) IsError() bool {
	return s == StatusInvalidState || s == StatusUSBError
}

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusProtocolReset:
		return "protocol reset"
	case StatusInvalidState:
		return "invalid state"
	case StatusUSBError:
		return "usb error"
	case StatusRebootBootloader:
		return "reboot bootloader"
	default:
		return "unknown"
	}
}

// setStatus applies the ratchet: an attempt to lower the status is
// rejected. Returns true if the new status was accepted.
func (s *Session) setStatus(status Status) bool {
	if s.status <= status {
		s.status = status
		return true
	}
	return false
}
