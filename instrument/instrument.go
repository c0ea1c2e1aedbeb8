/*
NAME
  instrument.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package instrument is the single-owner façade over transport, protocol,
// the radiometric pipeline, and calibration: the unified device contract
// spec.md §4.F describes.
package instrument

import (
	"fmt"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"

	"github.com/xrite/colormunki-core/calibration"
	"github.com/xrite/colormunki-core/eeprom"
	"github.com/xrite/colormunki-core/protocol"
	"github.com/xrite/colormunki-core/radiometric"
	"github.com/xrite/colormunki-core/spectrum"
	"github.com/xrite/colormunki-core/transport"
)

// ErrorKind classifies a guard failure, per spec.md §7's taxonomy.
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindProtocol
	KindEeprom
	KindCalibration
	KindMode
	KindNumeric
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "Transport"
	case KindProtocol:
		return "Protocol"
	case KindEeprom:
		return "Eeprom"
	case KindCalibration:
		return "Calibration"
	case KindMode:
		return "Mode"
	case KindNumeric:
		return "Numeric"
	default:
		return "Unknown"
	}
}

// Error is the façade's single error type, carrying its ErrorKind and an
// underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("instrument: %s: %v", e.Kind, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// ErrCalibrationMissing is the Calibration.Missing variant: a reflective
// measurement was attempted before calibrate().
var ErrCalibrationMissing = &Error{Kind: KindCalibration, Err: fmt.Errorf("white calibration not yet performed")}

// Info is the façade's identity summary.
type Info struct {
	Model           string
	Serial          string
	FirmwareVersion string
}

// Status is the façade's live device status.
type Status struct {
	Position               protocol.Position
	ButtonPressed          bool
	IsCalibratedReflective bool
}

// SupportedModes is the fixed set of measurement modes the façade exposes.
func SupportedModes() []spectrum.Mode {
	return []spectrum.Mode{spectrum.Reflective, spectrum.Emissive, spectrum.Ambient}
}

// Instrument is the exclusive-access façade: all its methods require the
// caller hold it for the duration of the call (spec.md §5), enforced here
// with an internal mutex rather than relying on caller discipline.
type Instrument struct {
	mu sync.Mutex

	transport transport.Transport
	engine    *protocol.Engine
	machine   *protocol.Machine
	store     calibration.Store
	l         logging.Logger

	profile eeprom.CalibrationProfile
	runtime calibration.RuntimeCalibration

	fw        protocol.Firmware
	model     string
	serial    string
	fwVersion string
}

// Open wires a Transport + decoded CalibrationProfile + Store into a ready
// Instrument, performing the GET_FIRMWARE/GET_VERSION identity queries and
// an opaque auto-load of any persisted calibration for the profile's
// serial (a load failure here is non-fatal, per spec.md §7).
func Open(t transport.Transport, profile eeprom.CalibrationProfile, store calibration.Store, l logging.Logger) (*Instrument, error) {
	engine := protocol.NewEngine(t, l)

	fw, err := engine.GetFirmware()
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	version, err := engine.GetVersion()
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	inst := &Instrument{
		transport: t,
		engine:    engine,
		machine:   protocol.NewMachine(),
		store:     store,
		l:         l,
		profile:   profile,
		fw:        fw,
		model:     "ColorMunki",
		serial:    profile.Serial,
	}

	if rec, ok, loadErr := store.Load(profile.Serial); loadErr == nil && ok {
		rc := rec.ToRuntime()
		inst.runtime = rc
	} else if loadErr != nil {
		l.Warning("instrument: calibration auto-load failed, starting uncalibrated", "error", loadErr.Error())
	}

	inst.fwVersion = version

	if err := inst.machine.Init(); err != nil {
		return nil, &Error{Kind: KindProtocol, Err: err}
	}

	return inst, nil
}

// Info returns the façade's identity summary.
func (inst *Instrument) Info() Info {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	return Info{Model: inst.model, Serial: inst.serial, FirmwareVersion: inst.fwVersion}
}

// Status polls the live device position/button state and reports whether
// a white calibration scale is held, either from Calibrate or from the
// auto-load in Open. A reflective Measure also needs Calibrate to have run
// on this Instrument: a scale that was only auto-loaded leaves the state
// machine Idle, and Idle rejects reflective measurements.
func (inst *Instrument) Status() (Status, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()
	pos, pressed, err := inst.engine.GetStatus()
	if err != nil {
		return Status{}, &Error{Kind: KindTransport, Err: err}
	}
	return Status{
		Position:               pos,
		ButtonPressed:          pressed,
		IsCalibratedReflective: inst.runtime.WhiteScale != nil,
	}, nil
}

// Calibrate runs the white-calibration procedure (spec.md §4.D "White
// calibration"): requires the dial at Calibration, takes a lamp-off
// measurement as the new dark reference, then a lamp-on measurement run
// through the pipeline with no white_scale to derive one, and persists the
// result.
func (inst *Instrument) Calibrate() error {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	pos, _, err := inst.engine.GetStatus()
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	if err := inst.machine.Calibrate(pos); err != nil {
		return &Error{Kind: KindProtocol, Err: err}
	}

	darkFrames, err := inst.engine.Measure(inst.fw, protocol.TriggerOptions{Lamp: false, NumMeas: 1})
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	dark := darkFrames[0]

	lampFrames, err := inst.engine.Measure(inst.fw, protocol.TriggerOptions{Lamp: true, NumMeas: 1})
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}

	measuredBands, err := radiometric.Reconstruct(inst.profile, radiometric.Input{
		Frame:      lampFrames[0],
		IntTimeSec: inst.fw.DefaultIntTimeSec(),
		DarkRef:    &dark,
	})
	if err != nil {
		return &Error{Kind: KindNumeric, Err: err}
	}
	whiteScale := radiometric.ComputeWhiteScale(inst.profile.WhiteRef, measuredBands[:])

	inst.runtime = calibration.RuntimeCalibration{DarkRef: &dark, WhiteScale: &whiteScale}

	if inst.store != nil {
		rec := calibration.NewRecord(inst.serial, inst.runtime, time.Now())
		if err := inst.store.Save(rec); err != nil {
			inst.l.Warning("instrument: calibration persist failed", "error", err.Error())
		}
	}
	return nil
}

// Measure triggers and decodes one measurement in the given mode, applying
// the mode guards of spec.md §4.F.
func (inst *Instrument) Measure(mode spectrum.Mode) (spectrum.Spectrum, error) {
	inst.mu.Lock()
	defer inst.mu.Unlock()

	if mode == spectrum.Reflective && inst.runtime.WhiteScale == nil {
		return spectrum.Spectrum{}, ErrCalibrationMissing
	}
	if mode == spectrum.Ambient {
		pos, _, err := inst.engine.GetStatus()
		if err != nil {
			return spectrum.Spectrum{}, &Error{Kind: KindTransport, Err: err}
		}
		if pos != protocol.Surface && pos != protocol.Ambient {
			return spectrum.Spectrum{}, &Error{Kind: KindMode, Err: fmt.Errorf("ambient measurement requires dial at Surface or Ambient, got %s", pos)}
		}
	}
	if err := inst.machine.Measure(mode == spectrum.Reflective); err != nil {
		return spectrum.Spectrum{}, &Error{Kind: KindMode, Err: err}
	}

	frames, err := inst.engine.Measure(inst.fw, protocol.TriggerOptions{Lamp: mode == spectrum.Reflective, NumMeas: 1})
	if err != nil {
		return spectrum.Spectrum{}, &Error{Kind: KindTransport, Err: err}
	}

	s, err := radiometric.Run(inst.profile, radiometric.Input{
		Frame:      frames[0],
		Mode:       mode,
		IntTimeSec: inst.fw.DefaultIntTimeSec(),
		DarkRef:    inst.runtime.DarkRef,
		WhiteScale: inst.runtime.WhiteScale,
	})
	if err != nil {
		return spectrum.Spectrum{}, &Error{Kind: KindNumeric, Err: err}
	}
	return s, nil
}
