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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadStaging_Begin(t *testing.T) {
	t.Parallel()

	staging := newDownloadStaging(make([]byte, 64))
	staging.head = 10
	staging.amount = 3
	staging.size = 12

	staging.begin(32)

	assert.Equal(t, uint32(0), staging.head)
	assert.Equal(t, uint32(0), staging.amount)
	assert.Equal(t, uint32(32), staging.size)
	assert.Equal(t, uint32(64), staging.capacity())
}

func TestDownloadStaging_Progress(t *testing.T) {
	t.Parallel()

	staging := newDownloadStaging(make([]byte, 64))
	staging.begin(20)

	require.False(t, staging.done())

	// chunking is bounded by the transfer size
	assert.Len(t, staging.nextChunk(8), 8)
	staging.advance(8)
	assert.Equal(t, uint32(8), staging.head)
	assert.Equal(t, uint32(8), staging.amount)

	// and by the remaining payload
	assert.Len(t, staging.nextChunk(64), 12)
	staging.advance(12)
	assert.Equal(t, uint32(12), staging.amount)

	assert.True(t, staging.done())
	assert.Len(t, staging.bytes(), 20)
}

func TestDownloadStaging_ZeroSize(t *testing.T) {
	t.Parallel()

	staging := newDownloadStaging(make([]byte, 64))
	staging.begin(0)

	// an empty payload is complete before any read happens
	assert.True(t, staging.done())
	assert.Empty(t, staging.bytes())
}

func TestDownloadStaging_ChunkWindowsTileTheRegion(t *testing.T) {
	t.Parallel()

	region := make([]byte, 16)
	staging := newDownloadStaging(region)
	staging.begin(16)

	first := staging.nextChunk(8)
	copy(first, "AAAAAAAA")
	staging.advance(8)

	second := staging.nextChunk(8)
	copy(second, "BBBBBBBB")
	staging.advance(8)

	assert.Equal(t, []byte("AAAAAAAABBBBBBBB"), staging.bytes())
}
