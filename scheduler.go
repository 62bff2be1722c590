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

import "time"

// Maintenance cadence. Urgent upkeep (e.g. DRAM periodic training on the
// original hardware) runs at 100 ms; routine upkeep (status bar style work)
// at 30 s. Both are suppressed entirely under tight turnaround.
const (
	urgentMaintenanceInterval  = 100 * time.Millisecond
	routineMaintenanceInterval = 30 * time.Second
)

// maintenanceScheduler tracks next-due timestamps for the two maintenance
// hooks. At most one hook runs per tick, urgent taking priority.
type maintenanceScheduler struct {
	now        func() time.Time
	urgentDue  time.Time
	routineDue time.Time
}

func (m *maintenanceScheduler) tick(urgent, routine func()) {
	now := m.now()

	if m.urgentDue.Before(now) {
		if urgent != nil {
			urgent()
		}
		m.urgentDue = m.now().Add(urgentMaintenanceInterval)
	} else if m.routineDue.Before(now) {
		if routine != nil {
			routine()
		}
		m.routineDue = m.now().Add(routineMaintenanceInterval)
	}
}
