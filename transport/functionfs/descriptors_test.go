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

//go:build linux

package functionfs

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func le32(blob []byte, offset int) uint32 {
	return binary.LittleEndian.Uint32(blob[offset:])
}

func TestFFSDescriptors(t *testing.T) {
	t.Parallel()

	blob := ffsDescriptors()

	// header: magic, length, flags
	require.GreaterOrEqual(t, len(blob), 20)
	assert.Equal(t, uint32(descriptorsMagicV2), le32(blob, 0))
	assert.Equal(t, uint32(len(blob)), le32(blob, 4))
	assert.Equal(t, uint32(hasFSDesc|hasHSDesc), le32(blob, 8))

	// one interface plus two endpoints per speed
	assert.Equal(t, uint32(3), le32(blob, 12))
	assert.Equal(t, uint32(3), le32(blob, 16))

	// 20-byte header, then per speed: 9-byte interface + two 7-byte
	// endpoints
	const perSpeed = 9 + 7 + 7
	require.Len(t, blob, 20+2*perSpeed)

	fs := blob[20 : 20+perSpeed]
	hs := blob[20+perSpeed:]

	for _, speed := range [][]byte{fs, hs} {
		iface := speed[:9]
		assert.Equal(t, uint8(descTypeInterface), iface[1])
		assert.Equal(t, uint8(2), iface[4])
		assert.Equal(t, uint8(interfaceClassVendor), iface[5])
		assert.Equal(t, uint8(interfaceSubclassADB), iface[6])
		assert.Equal(t, uint8(interfaceProtocolFastboot), iface[7])

		in := speed[9:16]
		out := speed[16:23]
		assert.Equal(t, uint8(endpointIn), in[2])
		assert.Equal(t, uint8(endpointOut), out[2])
		assert.Equal(t, uint8(bulk), in[3])
		assert.Equal(t, uint8(bulk), out[3])
	}

	// packet sizes differ by speed
	assert.Equal(t, uint16(maxPacketFS), binary.LittleEndian.Uint16(fs[9+4:]))
	assert.Equal(t, uint16(maxPacketHS), binary.LittleEndian.Uint16(hs[9+4:]))
}

func TestFFSStrings(t *testing.T) {
	t.Parallel()

	blob := ffsStrings()

	assert.Equal(t, uint32(stringsMagic), le32(blob, 0))
	assert.Equal(t, uint32(len(blob)), le32(blob, 4))
	assert.Equal(t, uint32(1), le32(blob, 8))  // str_count
	assert.Equal(t, uint32(1), le32(blob, 12)) // lang_count
	assert.Equal(t, uint16(stringLangEnglishUS), binary.LittleEndian.Uint16(blob[16:]))
	assert.Equal(t, append([]byte("fastboot"), 0), blob[18:])
}
