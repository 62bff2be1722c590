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
	"bytes"
	"encoding/binary"
)

// FunctionFS blob magics and flags (linux/usb/functionfs.h)
const (
	descriptorsMagicV2 = 3
	stringsMagic       = 2

	hasFSDesc = 1 << 0
	hasHSDesc = 1 << 1
)

// USB descriptor constants for the fastboot interface
const (
	descTypeInterface = 0x04
	descTypeEndpoint  = 0x05

	interfaceClassVendor      = 0xFF
	interfaceSubclassADB      = 0x42 // the Android vendor subclass fastboot shares
	interfaceProtocolFastboot = 0x03

	endpointIn  = 0x81
	endpointOut = 0x01
	bulk        = 0x02

	maxPacketFS = 64
	maxPacketHS = 512
)

const stringLangEnglishUS = 0x0409

// interfaceDescriptor mirrors struct usb_interface_descriptor.
type interfaceDescriptor struct {
	Length            uint8
	DescriptorType    uint8
	InterfaceNumber   uint8
	AlternateSetting  uint8
	NumEndpoints      uint8
	InterfaceClass    uint8
	InterfaceSubClass uint8
	InterfaceProtocol uint8
	Interface         uint8
}

// endpointDescriptor mirrors struct usb_endpoint_descriptor_no_audio.
type endpointDescriptor struct {
	Length          uint8
	DescriptorType  uint8
	EndpointAddress uint8
	Attributes      uint8
	MaxPacketSize   uint16
	Interval        uint8
}

// fastbootInterface returns the one-interface, two-bulk-endpoint layout
// for the given packet size.
func fastbootInterface(maxPacket uint16) []any {
	return []any{
		interfaceDescriptor{
			Length:            9,
			DescriptorType:    descTypeInterface,
			NumEndpoints:      2,
			InterfaceClass:    interfaceClassVendor,
			InterfaceSubClass: interfaceSubclassADB,
			InterfaceProtocol: interfaceProtocolFastboot,
			Interface:         1,
		},
		endpointDescriptor{
			Length:          7,
			DescriptorType:  descTypeEndpoint,
			EndpointAddress: endpointIn,
			Attributes:      bulk,
			MaxPacketSize:   maxPacket,
		},
		endpointDescriptor{
			Length:          7,
			DescriptorType:  descTypeEndpoint,
			EndpointAddress: endpointOut,
			Attributes:      bulk,
			MaxPacketSize:   maxPacket,
		},
	}
}

// ffsDescriptors assembles the v2 descriptors blob written to ep0:
// header, per-speed descriptor counts, then full-speed and high-speed
// variants of the fastboot interface.
func ffsDescriptors() []byte {
	var body bytes.Buffer

	fs := fastbootInterface(maxPacketFS)
	hs := fastbootInterface(maxPacketHS)

	_ = binary.Write(&body, binary.LittleEndian, uint32(len(fs)))
	_ = binary.Write(&body, binary.LittleEndian, uint32(len(hs)))
	for _, desc := range append(fs, hs...) {
		_ = binary.Write(&body, binary.LittleEndian, desc)
	}

	var blob bytes.Buffer
	_ = binary.Write(&blob, binary.LittleEndian, uint32(descriptorsMagicV2))
	_ = binary.Write(&blob, binary.LittleEndian, uint32(12+body.Len()))
	_ = binary.Write(&blob, binary.LittleEndian, uint32(hasFSDesc|hasHSDesc))
	blob.Write(body.Bytes())

	return blob.Bytes()
}

// ffsStrings assembles the strings blob: a single en-US table naming the
// interface "fastboot".
func ffsStrings() []byte {
	name := append([]byte("fastboot"), 0)

	var blob bytes.Buffer
	_ = binary.Write(&blob, binary.LittleEndian, uint32(stringsMagic))
	_ = binary.Write(&blob, binary.LittleEndian, uint32(16+2+len(name)))
	_ = binary.Write(&blob, binary.LittleEndian, uint32(1)) // str_count
	_ = binary.Write(&blob, binary.LittleEndian, uint32(1)) // lang_count
	_ = binary.Write(&blob, binary.LittleEndian, uint16(stringLangEnglishUS))
	blob.Write(name)

	return blob.Bytes()
}
