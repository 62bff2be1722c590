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

// fastbootd serves the fastboot protocol on a USB gadget or serial port
// until the session ends or the process is interrupted.
//
// Exit code 1 means the transport could not be brought up before the
// protocol loop started; everything after that, including a usb error or
// a host-initiated reset, exits 0.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	fastboot "github.com/misson20000/go-fastboot"
	"github.com/misson20000/go-fastboot/display/gpioled"
	"github.com/misson20000/go-fastboot/transport/serialport"
)

type config struct {
	ffsDir   *string
	port     *string
	product  *string
	serial   *string
	size     *uint64
	led      *string
	onReboot *string
	quiet    *bool
}

func parseFlags() *config {
	cfg := &config{
		ffsDir: flag.String("ffs", "",
			"FunctionFS mount directory (e.g., /dev/usb-ffs/fastboot)"),
		port:    flag.String("port", "", "Serial device path (e.g., /dev/ttyGS0 or COM3)"),
		product: flag.String("product", "go-fastboot", "getvar:product answer"),
		serial:  flag.String("serial", "", "getvar:serialno answer (default: generated)"),
		size:    flag.Uint64("size", 64<<20, "Download staging capacity in bytes"),
		led:     flag.String("led", "", "GPIO pin name for an activity LED (e.g., GPIO16)"),
		onReboot: flag.String("on-reboot", "",
			"Shell command to run after a reboot-bootloader session ends"),
		quiet: flag.Bool("quiet", false, "Suppress per-tick status output"),
	}
	flag.Parse()
	return cfg
}

// consoleSink prints deduplicated status lines; the session repeats its
// state text every tick.
type consoleSink struct {
	last string
}

func (c *consoleSink) SetText(text string) {
	if text == c.last {
		return
	}
	c.last = text
	fmt.Println(text)
}

// multiSink fans status text out to several sinks
type multiSink []fastboot.StatusSink

func (m multiSink) SetText(text string) {
	for _, sink := range m {
		sink.SetText(text)
	}
}

func openTransport(cfg *config) (fastboot.Transport, error) {
	switch {
	case *cfg.ffsDir != "" && *cfg.port != "":
		return nil, errors.New("-ffs and -port are mutually exclusive")
	case *cfg.ffsDir != "":
		return openFunctionFS(*cfg.ffsDir)
	case *cfg.port != "":
		transport, err := serialport.New(*cfg.port)
		if err != nil {
			return nil, fmt.Errorf("failed to create serial transport: %w", err)
		}
		return transport, nil
	default:
		return nil, errors.New("one of -ffs or -port is required")
	}
}

func buildSink(cfg *config) (fastboot.StatusSink, error) {
	sinks := multiSink{}
	if !*cfg.quiet {
		sinks = append(sinks, &consoleSink{})
	}
	if *cfg.led != "" {
		led, err := gpioled.New(*cfg.led)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, led)
	}
	if len(sinks) == 0 {
		return fastboot.NopSink{}, nil
	}
	return sinks, nil
}

func buildRestart(cfg *config) func() {
	command := *cfg.onReboot
	if command == "" {
		return func() {
			fmt.Println("fastbootd: host requested reboot to bootloader")
		}
	}
	return func() {
		cmd := exec.Command("/bin/sh", "-c", command)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "fastbootd: reboot command failed: %v\n", err)
		}
	}
}

func run() int {
	cfg := parseFlags()

	if *cfg.size == 0 || *cfg.size > math.MaxUint32 {
		fmt.Fprintf(os.Stderr, "fastbootd: -size %d out of range\n", *cfg.size)
		return 1
	}

	transport, err := openTransport(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastbootd: %v\n", err)
		return 1
	}

	sink, err := buildSink(cfg)
	if err != nil {
		_ = transport.Close()
		fmt.Fprintf(os.Stderr, "fastbootd: %v\n", err)
		return 1
	}

	serialNumber := *cfg.serial
	if serialNumber == "" {
		serialNumber = uuid.NewString()
	}

	session, err := fastboot.New(transport, make([]byte, *cfg.size),
		fastboot.WithProduct(*cfg.product),
		fastboot.WithSerialNumber(serialNumber),
		fastboot.WithDisplay(sink),
		fastboot.WithRestart(buildRestart(cfg)),
	)
	if err != nil {
		_ = transport.Close()
		fmt.Fprintf(os.Stderr, "fastbootd: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status := session.Run(ctx)
	fmt.Printf("fastbootd: session over (%s)\n", status)
	return 0
}

func main() {
	os.Exit(run())
}
