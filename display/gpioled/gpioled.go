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

// Package gpioled provides a status sink for headless boards: an activity
// LED on a GPIO pin that toggles as the session reports progress
package gpioled

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Sink implements fastboot.StatusSink on a GPIO pin. The text itself is
// discarded; each update toggles the pin, so the LED reads as solid-ish
// while idle ticks stream in and flickers during a download.
type Sink struct {
	pin   gpio.PinIO
	level gpio.Level
}

// New initializes periph and claims the named pin, driving it high
func New(pinName string) (*Sink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("no gpio pin named %q", pinName)
	}

	if err := pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("failed to drive %s: %w", pinName, err)
	}

	return &Sink{pin: pin, level: gpio.High}, nil
}

// SetText toggles the activity LED
func (s *Sink) SetText(string) {
	s.level = !s.level
	_ = s.pin.Out(s.level)
}

// Off turns the LED off, for end of session
func (s *Sink) Off() error {
	s.level = gpio.Low
	if err := s.pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to drive %s low: %w", s.pin.Name(), err)
	}
	return nil
}
