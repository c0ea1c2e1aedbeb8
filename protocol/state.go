/*
NAME
  state.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package protocol

import "fmt"

// State is the façade-visible measurement state machine (spec.md §4.C).
type State uint8

const (
	Uninitialized State = iota
	Idle
	Calibrated
	Disconnected
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Idle:
		return "Idle"
	case Calibrated:
		return "Calibrated"
	case Disconnected:
		return "Disconnected"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// TransitionError reports an attempted state transition the machine
// doesn't allow.
type TransitionError struct {
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("protocol: %s not allowed from %s", e.Event, e.From)
}

// Machine is the mutex-free core of the state machine; callers (instrument)
// supply their own synchronization, matching how the teacher's device/alsa.go
// guards its own mode field with an external mutex rather than baking
// locking into the enum itself.
type Machine struct {
	state State
}

// NewMachine returns a Machine starting Uninitialized.
func NewMachine() *Machine { return &Machine{state: Uninitialized} }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Init transitions Uninitialized -> Idle.
func (m *Machine) Init() error {
	if m.state != Uninitialized {
		return &TransitionError{From: m.state, Event: "init()"}
	}
	m.state = Idle
	return nil
}

// Calibrate transitions Idle -> Calibrated; requires the dial at
// Calibration (checked by the caller, which has the live position).
func (m *Machine) Calibrate(pos Position) error {
	if m.state != Idle {
		return &TransitionError{From: m.state, Event: "calibrate()"}
	}
	if pos != Calibration {
		return &TransitionError{From: m.state, Event: fmt.Sprintf("calibrate() with dial at %s", pos)}
	}
	m.state = Calibrated
	return nil
}

// Measure validates a measure() call against the current state and the
// requested mode, without itself performing the measurement.
func (m *Machine) Measure(reflective bool) error {
	switch {
	case m.state == Calibrated:
		return nil
	case m.state == Idle && !reflective:
		return nil
	case m.state == Idle && reflective:
		return &TransitionError{From: m.state, Event: "measure(Reflective)"}
	default:
		return &TransitionError{From: m.state, Event: "measure()"}
	}
}

// Disconnect forces the machine into Disconnected from any state, the
// machine's sole "any -> Disconnected" edge.
func (m *Machine) Disconnect() {
	m.state = Disconnected
}
