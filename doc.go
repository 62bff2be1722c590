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

/*
Package fastboot implements the device side of the Fastboot bootloader
protocol (version 0.4) over a single bidirectional bulk transport.

The engine is built around two cooperatively scheduled state machines, one
for the receive path and one for the transmit path, stepped once each per
loop tick over a non-blocking, poll-based Transport. The session accepts the
standard control commands (getvar queries, size-bounded download staging,
reboot-bootloader) and answers everything else with an ordinary FAIL
response; malformed input never terminates a session.

Basic Usage:

	import (
	    "github.com/misson20000/go-fastboot"
	    "github.com/misson20000/go-fastboot/transport/functionfs"
	)

	// Open the USB gadget endpoints
	transport, err := functionfs.New("/dev/usb-ffs/fastboot")
	if err != nil {
	    log.Fatal(err)
	}

	// Stage downloads into a 64 MiB region
	region := make([]byte, 64<<20)

	session, err := fastboot.New(transport, region,
	    fastboot.WithProduct("myboard"),
	    fastboot.WithRestart(rebootToBootloader),
	)
	if err != nil {
	    log.Fatal(err)
	}

	status := session.Run(context.Background())
	fmt.Println(status)

Transport Selection:

The library ships two transports:

  - functionfs: Linux USB gadget bulk endpoints (the intended deployment)
  - serialport: fastboot framing over a serial port, for development

Any implementation of the Transport interface works; see MockTransport for
the scripted transport the test suite uses.

Synchronization:

A host is allowed to pipeline its next command immediately behind a
response. The engine therefore always arms the next receive before handing
a response to the transmit path, and gates command dispatch on the transmit
path returning to idle. See Session for details.

Thread Safety:

A Session is owned by the single goroutine that calls Run. No other
goroutine may touch it while Run is in progress.
*/
package fastboot
