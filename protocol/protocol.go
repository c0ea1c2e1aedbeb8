/*
NAME
  protocol.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package protocol implements the ColorMunki's vendor command set: version/
// firmware/status/chip-ID queries, EEPROM block reads, measurement
// triggering, and the façade-visible device state machine.
package protocol

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/xrite/colormunki-core/radiometric"
	"github.com/xrite/colormunki-core/transport"
)

// Command codes, per spec.md §4.C.
const (
	CmdTriggerMeasure  uint8 = 0x80
	CmdSetEEPROMAddr   uint8 = 0x81
	CmdGetVersion      uint8 = 0x85
	CmdGetFirmware     uint8 = 0x86
	CmdGetStatus       uint8 = 0x87
	CmdGetChipID       uint8 = 0x8A
)

const (
	maxVersionBytes  = 100
	firmwarePayload  = 24
	statusPayload    = 2
	chipIDPayload    = 8
	triggerPayload   = 12
	eepromAddrBytes  = 8
)

// Firmware holds the 6 little-endian u32 fields GET_FIRMWARE returns.
type Firmware struct {
	Major, Minor  uint32
	TickUs        uint32
	MinIntCount   uint32
	NumBlocks     uint32
	BlockSize     uint32
}

// TickSec is firmware.TickUs expressed in seconds.
func (f Firmware) TickSec() float64 { return float64(f.TickUs) * 1e-6 }

// DefaultIntTimeSec is firmware.MinIntCount integration clocks expressed in
// seconds — the device's default integration time absent an explicit
// override.
func (f Firmware) DefaultIntTimeSec() float64 { return float64(f.MinIntCount) * f.TickSec() }

// ShortReadError indicates a measurement's interrupt-read total was not a
// whole multiple of one frame.
type ShortReadError struct {
	Got int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("protocol: short read: got %d bytes, not a multiple of %d", e.Got, radiometric.FrameSamples*2)
}

// Engine drives the vendor command set over a Transport.
type Engine struct {
	t transport.Transport
	l logging.Logger
}

// NewEngine wraps t with the vendor command protocol, logging through l.
func NewEngine(t transport.Transport, l logging.Logger) *Engine {
	return &Engine{t: t, l: l}
}

// GetVersion reads the NUL-terminated version string.
func (e *Engine) GetVersion() (string, error) {
	buf := make([]byte, maxVersionBytes)
	n, err := e.t.ControlRead(CmdGetVersion, 0, 0, buf, transport.DefaultControlTimeout)
	if err != nil {
		return "", err
	}
	buf = buf[:n]
	for i, b := range buf {
		if b == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(buf), nil
}

// GetFirmware reads the firmware descriptor.
func (e *Engine) GetFirmware() (Firmware, error) {
	buf := make([]byte, firmwarePayload)
	_, err := e.t.ControlRead(CmdGetFirmware, 0, 0, buf, transport.DefaultControlTimeout)
	if err != nil {
		return Firmware{}, err
	}
	return Firmware{
		Major:       binary.LittleEndian.Uint32(buf[0:4]),
		Minor:       binary.LittleEndian.Uint32(buf[4:8]),
		TickUs:      binary.LittleEndian.Uint32(buf[8:12]),
		MinIntCount: binary.LittleEndian.Uint32(buf[12:16]),
		NumBlocks:   binary.LittleEndian.Uint32(buf[16:20]),
		BlockSize:   binary.LittleEndian.Uint32(buf[20:24]),
	}, nil
}

// GetStatus reads the dial position and button state.
func (e *Engine) GetStatus() (Position, bool, error) {
	buf := make([]byte, statusPayload)
	_, err := e.t.ControlRead(CmdGetStatus, 0, 0, buf, transport.DefaultControlTimeout)
	if err != nil {
		return Unknown(0), false, err
	}
	return decodePosition(buf[0]), buf[1] != 0, nil
}

// GetChipID reads the 8-byte chip identifier.
func (e *Engine) GetChipID() ([8]byte, error) {
	var out [8]byte
	buf := make([]byte, chipIDPayload)
	_, err := e.t.ControlRead(CmdGetChipID, 0, 0, buf, transport.DefaultControlTimeout)
	if err != nil {
		return out, err
	}
	copy(out[:], buf)
	return out, nil
}

// ReadEEPROM reads size bytes starting at addr from the calibration EEPROM:
// SET_EEPROM_ADDR followed by interrupt reads until at least size bytes have
// arrived or a zero-length read ends the transfer. The returned slice holds
// whatever those reads delivered, so it can be shorter than size.
func (e *Engine) ReadEEPROM(addr, size uint32) ([]byte, error) {
	req := make([]byte, eepromAddrBytes)
	binary.LittleEndian.PutUint32(req[0:4], addr)
	binary.LittleEndian.PutUint32(req[4:8], size)
	if _, err := e.t.ControlWrite(CmdSetEEPROMAddr, 0, 0, req, transport.DefaultControlTimeout); err != nil {
		return nil, err
	}

	out := make([]byte, 0, size)
	buf := make([]byte, 4096)
	for uint32(len(out)) < size {
		n, err := e.t.InterruptRead(transport.InterruptEndpoint, buf, transport.DefaultInterruptTimeout)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
	}
	return out, nil
}

// TriggerOptions configures one measurement acquisition.
type TriggerOptions struct {
	Lamp         bool
	HighGain     bool
	HoldTempDuty uint8
	IntTimeSec   float64 // 0 selects Firmware.DefaultIntTimeSec()
	NumMeas      uint32
}

// Measure runs spec.md §4.C's measurement microsequence: trigger, sleep for
// the integration period, then drain interrupt reads until exactly
// NumMeas*137*2 bytes have arrived. Returns one decoded frame per
// measurement.
func (e *Engine) Measure(fw Firmware, opts TriggerOptions) ([][radiometric.FrameSamples]uint16, error) {
	intTimeSec := opts.IntTimeSec
	if intTimeSec <= 0 {
		intTimeSec = fw.DefaultIntTimeSec()
	}
	intClocks := uint32(intTimeSec/fw.TickSec() + 0.5)

	req := make([]byte, triggerPayload)
	req[0] = boolByte(opts.Lamp)
	req[1] = 0 // scan: always 0, scanned-strip mode is out of scope
	req[2] = boolByte(opts.HighGain)
	req[3] = opts.HoldTempDuty
	binary.LittleEndian.PutUint32(req[4:8], intClocks)
	binary.LittleEndian.PutUint32(req[8:12], opts.NumMeas)

	if _, err := e.t.ControlWrite(CmdTriggerMeasure, 0, 0, req, transport.DefaultControlTimeout); err != nil {
		return nil, err
	}

	e.l.Debug("protocol: measurement triggered, waiting for integration", "int_time_sec", intTimeSec)
	time.Sleep(time.Duration(intTimeSec*1000)*time.Millisecond + 200*time.Millisecond)

	const frameBytes = radiometric.FrameSamples * 2
	want := int(opts.NumMeas) * frameBytes

	data := make([]byte, 0, want)
	buf := make([]byte, frameBytes*4)
	for len(data) < want {
		n, err := e.t.InterruptRead(transport.InterruptEndpoint, buf, transport.DefaultInterruptTimeout)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		data = append(data, buf[:n]...)
	}
	if len(data)%frameBytes != 0 {
		return nil, &ShortReadError{Got: len(data)}
	}

	frames := make([][radiometric.FrameSamples]uint16, len(data)/frameBytes)
	for i := range frames {
		chunk := data[i*frameBytes : (i+1)*frameBytes]
		for s := 0; s < radiometric.FrameSamples; s++ {
			frames[i][s] = binary.LittleEndian.Uint16(chunk[s*2 : s*2+2])
		}
	}
	return frames, nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
