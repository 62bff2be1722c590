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

// StatusSink receives free-form human-readable session status text:
// download progress, the current RX/TX state names and the end-of-run
// message. The session calls SetText from its own goroutine only, possibly
// once per loop tick, so implementations should be cheap or deduplicate.
type StatusSink interface {
	SetText(text string)
}

// SinkFunc adapts a plain function to the StatusSink interface
type SinkFunc func(text string)

// SetText calls f(text)
func (f SinkFunc) SetText(text string) {
	f(text)
}

// NopSink discards all status text. It is the default sink.
type NopSink struct{}

// SetText does nothing
func (NopSink) SetText(string) {}
