/*
NAME
  transport.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package transport exposes the USB vendor control/interrupt capability set
// the protocol engine drives the ColorMunki over, and a scripted mock of it
// for testing the layers above without real hardware.
package transport

import (
	"fmt"
	"time"
)

// Default timeouts per spec.md §4.A.
const (
	DefaultControlTimeout   = 2 * time.Second
	DefaultInterruptTimeout = 5 * time.Second
)

// bmRequestType values for the two control transfer directions.
const (
	requestTypeVendorIn  = 0xC0 // vendor, device, IN
	requestTypeVendorOut = 0x40 // vendor, device, OUT
)

// InterruptEndpoint is the single interrupt IN endpoint the device uses for
// streaming measurement frames and EEPROM reads.
const InterruptEndpoint = 0x81

// Transport is the capability set the protocol engine needs from the USB
// link. No implementation retries internally; retry policy belongs to the
// caller.
type Transport interface {
	// ControlRead issues a vendor IN control transfer and returns the number
	// of bytes read into buf.
	ControlRead(request uint8, value, index uint16, buf []byte, timeout time.Duration) (int, error)

	// ControlWrite issues a vendor OUT control transfer and returns the
	// number of bytes written.
	ControlWrite(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)

	// InterruptRead reads from the given interrupt endpoint. Short reads are
	// expected; the caller loops. A zero-length read is a valid terminator,
	// not an error.
	InterruptRead(endpoint uint8, buf []byte, timeout time.Duration) (int, error)

	// Name identifies the transport for logging/diagnostics.
	Name() string
}

// Error wraps a platform/bus failure so callers can match on a single
// sentinel kind regardless of which operation or backend produced it, per
// spec.md §4.A ("All failures propagate as a single error kind").
type Error struct {
	Op  string // "control_read", "control_write", or "interrupt_read"
	Err error  // underlying platform error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
