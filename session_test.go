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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSessionUntil runs the session until the host has received the given
// number of responses, then cancels the run. The timeout is a backstop so
// a stalled engine fails the test instead of hanging it.
func runSessionUntil(t *testing.T, session *Session, mock *MockTransport, responses int) Status {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seen := 0
	previous := mock.WriteCompleteFunc
	mock.WriteCompleteFunc = func(data []byte) {
		if previous != nil {
			previous(data)
		}
		seen++
		if seen >= responses {
			cancel()
		}
	}

	status := session.Run(ctx)
	require.GreaterOrEqual(t, seen, responses, "session stalled before all responses left")
	return status
}

func responseStrings(mock *MockTransport) []string {
	writes := mock.Writes()
	responses := make([]string, 0, len(writes))
	for _, write := range writes {
		responses = append(responses, string(write))
	}
	return responses
}

func TestSession_CommandResponse(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueCommand("getvar:version")

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	status := runSessionUntil(t, session, mock, 1)

	assert.Equal(t, StatusProtocolReset, status)
	assert.Equal(t, []string{"OKAY0.4"}, responseStrings(mock))
	assert.Empty(t, mock.LostBytes())
	assert.Equal(t, 1, mock.CloseCount())
}

func TestSession_DownloadRoundTrip(t *testing.T) {
	t.Parallel()

	payload := []byte("0123456789abcdef")

	mock := NewMockTransport()
	mock.QueueCommand("download:00000010")
	mock.Queue(payload, 0)

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 2)

	assert.Equal(t, []string{"DATA00000010", "OKAYgot it!"}, responseStrings(mock))
	assert.Equal(t, payload, session.Download())
	assert.Empty(t, mock.LostBytes())
}

func TestSession_DownloadMultiChunk(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetMaxTransferSize(8)
	mock.QueueCommand("download:00000014")
	mock.Queue([]byte("AAAAAAAA"), 1)
	mock.Queue([]byte("BBBBBBBB"), 0)
	mock.Queue([]byte("CCCC"), 2)

	session, err := New(mock, make([]byte, 64))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 2)

	assert.Equal(t, []string{"DATA00000014", "OKAYgot it!"}, responseStrings(mock))
	assert.Equal(t, []byte("AAAAAAAABBBBBBBBCCCC"), session.Download())
	assert.Empty(t, mock.LostBytes())
}

func TestSession_DownloadThenNextCommand(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueCommand("download:00000004")
	mock.Queue([]byte("data"), 0)
	mock.QueueCommand("getvar:version")

	session, err := New(mock, make([]byte, 64))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 3)

	assert.Equal(t, []string{"DATA00000004", "OKAYgot it!", "OKAY0.4"}, responseStrings(mock))
	assert.Empty(t, mock.LostBytes())
}

func TestSession_DownloadTooLargeKeepsServing(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueCommand("download:00000020")
	mock.QueueCommand("getvar:version")

	session, err := New(mock, make([]byte, 16))
	require.NoError(t, err)

	status := runSessionUntil(t, session, mock, 2)

	assert.Equal(t, StatusProtocolReset, status)
	assert.Equal(t, []string{"FAILdownload size too large", "OKAY0.4"}, responseStrings(mock))
}

func TestSession_BurstTurnaroundLosesNothing(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetWriteDelay(2)
	mock.QueueCommand("getvar:version")

	// the host fires its next command the instant the first response
	// lands; a read must already be armed for it
	first := true
	mock.WriteCompleteFunc = func([]byte) {
		if first {
			first = false
			mock.Send([]byte("getvar:product"))
		}
	}

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 2)

	assert.Equal(t, []string{"OKAY0.4", "OKAYgo-fastboot"}, responseStrings(mock))
	assert.Empty(t, mock.LostBytes())
}

func TestSession_PipelinedCommandWaitsForTxIdle(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetWriteDelay(3)
	mock.QueueCommand("getvar:version")
	mock.QueueCommand("getvar:product")

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 2)

	assert.Equal(t, []string{"OKAY0.4", "OKAYgo-fastboot"}, responseStrings(mock))
	assert.Empty(t, mock.LostBytes())
	// the second response is only armed once the first has fully left;
	// its read however was armed alongside the first response
	assert.Equal(t, []string{"BeginRead", "BeginRead", "BeginWrite", "BeginRead", "BeginWrite"}, mock.Ops())
}

func TestSession_RebootBootloader(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetWriteDelay(2)
	mock.QueueCommand("reboot-bootloader")

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	restartCalled := false
	require.NoError(t, WithRestart(func() {
		restartCalled = true
		// the restart fires only after the OKAY fully left and the
		// transport was torn down
		assert.Equal(t, []string{"OKAY"}, responseStrings(mock))
		assert.Equal(t, 1, mock.CloseCount())
	})(session))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status := session.Run(ctx)

	assert.Equal(t, StatusRebootBootloader, status)
	assert.True(t, restartCalled)
	assert.Empty(t, mock.LostBytes())
}

func TestSession_RebootBootloaderWithoutRestartAction(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueCommand("reboot-bootloader")

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(t, StatusRebootBootloader, session.Run(ctx))
	assert.Equal(t, 1, mock.CloseCount())
}

func TestSession_SuspendEndsRunCleanly(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetSuspended(true)

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(t, StatusNormal, session.Run(ctx))
	assert.Equal(t, 1, mock.CloseCount())
}

func TestSession_ControlResetEndsRun(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.TriggerReset()

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Equal(t, StatusProtocolReset, session.Run(ctx))
	assert.Equal(t, 1, mock.CloseCount())
}

func TestSession_ContextCancellationIsAReset(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()

	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, StatusProtocolReset, session.Run(ctx))
	assert.Equal(t, 1, mock.CloseCount())
}

func TestSession_TransportErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*MockTransport)
	}{
		{
			name: "Arming the command read fails",
			setup: func(m *MockTransport) {
				m.SetBeginReadError(errors.New("endpoint gone"))
			},
		},
		{
			name: "Polling the command read fails",
			setup: func(m *MockTransport) {
				m.SetReadError(errors.New("endpoint gone"))
			},
		},
		{
			name: "Polling the response write fails",
			setup: func(m *MockTransport) {
				m.QueueCommand("getvar:version")
				m.SetWriteError(errors.New("endpoint gone"))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := NewMockTransport()
			tt.setup(mock)

			session, err := New(mock, make([]byte, 1024))
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			assert.Equal(t, StatusUSBError, session.Run(ctx))
			assert.Equal(t, 1, mock.CloseCount())
		})
	}
}

func TestSession_InvalidStatesAreFatal(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session, err := New(mock, make([]byte, 1024))
	require.NoError(t, err)

	session.rxState = rxState(99)
	session.stepRX()
	assert.Equal(t, StatusInvalidState, session.status)

	session2, err := New(NewMockTransport(), make([]byte, 1024))
	require.NoError(t, err)

	session2.txState = txState(99)
	session2.stepTX()
	assert.Equal(t, StatusInvalidState, session2.status)
}

func TestSession_StatusDisplay(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.QueueCommand("getvar:version")

	var texts []string
	session, err := New(mock, make([]byte, 1024),
		WithDisplay(SinkFunc(func(text string) {
			texts = append(texts, text)
		})))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 1)

	require.NotEmpty(t, texts)
	assert.Equal(t, "fastboot started", texts[0])
	assert.Equal(t, "fastboot ended (protocol reset)", texts[len(texts)-1])
	assert.Contains(t, texts, "rx state: command\ntx state: idle")
}

func TestSession_MaintenanceRunsBetweenCommands(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	now := func() time.Time {
		clock.advance(time.Second)
		return clock.t
	}

	mock := NewMockTransport()
	mock.QueueCommand("getvar:version")

	urgent := 0
	session, err := New(mock, make([]byte, 1024),
		WithClock(now),
		WithMaintenance(func() { urgent++ }, nil))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 1)

	assert.Positive(t, urgent)
}

func TestSession_MaintenanceSuppressedDuringDownload(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	now := func() time.Time {
		clock.advance(time.Second)
		return clock.t
	}

	mock := NewMockTransport()
	mock.QueueCommand("download:00000010")
	mock.Queue([]byte("0123456789abcdef"), 5)

	urgent := 0
	atData, atOkay := -1, -1
	mock.WriteCompleteFunc = func(data []byte) {
		switch string(data[:4]) {
		case "DATA":
			atData = urgent
		case "OKAY":
			atOkay = urgent
		}
	}

	session, err := New(mock, make([]byte, 1024),
		WithClock(now),
		WithMaintenance(func() { urgent++ }, nil))
	require.NoError(t, err)

	runSessionUntil(t, session, mock, 2)

	// the hook is due on every tick with this clock, yet nothing may run
	// between the DATA going out and the download completing
	require.GreaterOrEqual(t, atData, 0)
	require.GreaterOrEqual(t, atOkay, 0)
	assert.Equal(t, atData, atOkay)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()

	_, err := New(nil, make([]byte, 16))
	assert.ErrorIs(t, err, ErrNoTransport)

	_, err = New(mock, nil)
	assert.ErrorIs(t, err, ErrNoDownloadRegion)

	_, err = New(mock, make([]byte, 16), WithProduct(""))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(mock, make([]byte, 16), WithDisplay(nil))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = New(mock, make([]byte, 16), WithClock(nil))
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
