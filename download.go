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

// downloadStaging tracks a declared-size payload being received into a
// fixed-capacity region. Invariant: head <= size <= capacity. amount holds
// only the byte count of the most recent single read.
type downloadStaging struct {
	region []byte
	head   uint32
	size   uint32
	amount uint32
}

func newDownloadStaging(region []byte) *downloadStaging {
	return &downloadStaging{region: region}
}

func (d *downloadStaging) capacity() uint32 {
	return uint32(len(d.region))
}

// begin resets progress for a freshly declared payload. The caller must
// have checked size against capacity already.
func (d *downloadStaging) begin(size uint32) {
	d.head = 0
	d.amount = 0
	d.size = size
}

// done reports whether the declared payload has fully landed.
func (d *downloadStaging) done() bool {
	return d.head >= d.size
}

// nextChunk returns the region slice for the next read: at most
// maxTransfer bytes starting at the current head.
func (d *downloadStaging) nextChunk(maxTransfer int) []byte {
	remaining := d.size - d.head
	if remaining > uint32(maxTransfer) {
		remaining = uint32(maxTransfer)
	}
	return d.region[d.head : d.head+remaining]
}

// advance records a completed read of n bytes.
func (d *downloadStaging) advance(n uint32) {
	d.amount = n
	d.head += n
}

// bytes returns the received payload. Meaningful once done reports true.
func (d *downloadStaging) bytes() []byte {
	return d.region[:d.size]
}
