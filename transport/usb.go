/*
NAME
  usb.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package transport

import (
	"fmt"
	"time"

	"github.com/google/gousb"
)

// USB vendor/product identifiers for the ColorMunki family. Two vendor IDs
// are known to appear on retail units (spec.md §1).
const (
	VendorXRite       gousb.ID = 0x0765
	VendorAlt         gousb.ID = 0x0971
	ProductColorMunki gousb.ID = 0x2007
)

// USB is the real Transport, backed by github.com/google/gousb (a libusb
// binding).
type USB struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	epIn *gousb.InEndpoint
}

// OpenUSB opens the first device matching any of the given (vendor,
// product) pairs, claims its default interface, and opens the interrupt IN
// endpoint measurement frames stream over.
func OpenUSB(pairs ...[2]gousb.ID) (*USB, error) {
	if len(pairs) == 0 {
		pairs = [][2]gousb.ID{{VendorXRite, ProductColorMunki}, {VendorAlt, ProductColorMunki}}
	}

	ctx := gousb.NewContext()
	var dev *gousb.Device
	for _, p := range pairs {
		d, err := ctx.OpenDeviceWithVIDPID(p[0], p[1])
		if err == nil && d != nil {
			dev = d
			break
		}
	}
	if dev == nil {
		ctx.Close()
		return nil, &Error{Op: "open", Err: fmt.Errorf("no matching ColorMunki USB device found")}
	}

	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, &Error{Op: "open", Err: err}
	}

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, &Error{Op: "open", Err: err}
	}
	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, &Error{Op: "open", Err: err}
	}
	epIn, err := intf.InEndpoint(InterruptEndpoint)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, &Error{Op: "open", Err: err}
	}

	return &USB{ctx: ctx, dev: dev, cfg: cfg, intf: intf, epIn: epIn}, nil
}

// Name implements Transport.
func (u *USB) Name() string { return "usb" }

// ControlRead implements Transport.
func (u *USB) ControlRead(request uint8, value, index uint16, buf []byte, timeout time.Duration) (int, error) {
	u.dev.ControlTimeout = timeout
	n, err := u.dev.Control(requestTypeVendorIn, request, value, index, buf)
	if err != nil {
		return n, &Error{Op: "control_read", Err: err}
	}
	return n, nil
}

// ControlWrite implements Transport.
func (u *USB) ControlWrite(request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	u.dev.ControlTimeout = timeout
	n, err := u.dev.Control(requestTypeVendorOut, request, value, index, data)
	if err != nil {
		return n, &Error{Op: "control_write", Err: err}
	}
	return n, nil
}

// InterruptRead implements Transport. Only the endpoint the device was
// opened with is supported; a mismatched endpoint argument is a caller
// error, not a transport failure, since spec.md §4.A fixes it at 0x81.
func (u *USB) InterruptRead(endpoint uint8, buf []byte, timeout time.Duration) (int, error) {
	if endpoint != InterruptEndpoint {
		return 0, &Error{Op: "interrupt_read", Err: fmt.Errorf("unsupported endpoint 0x%02x", endpoint)}
	}
	readOp := func() (int, error) {
		return u.epIn.Read(buf)
	}
	done := make(chan struct{})
	var n int
	var err error
	go func() {
		n, err = readOp()
		close(done)
	}()
	select {
	case <-done:
		if err != nil {
			return n, &Error{Op: "interrupt_read", Err: err}
		}
		return n, nil
	case <-time.After(timeout):
		return 0, &Error{Op: "interrupt_read", Err: fmt.Errorf("timed out after %s", timeout)}
	}
}

// Close releases the interface, configuration, device handle, and libusb
// context, in that order.
func (u *USB) Close() error {
	u.intf.Close()
	if err := u.cfg.Close(); err != nil {
		return err
	}
	if err := u.dev.Close(); err != nil {
		return err
	}
	return u.ctx.Close()
}
