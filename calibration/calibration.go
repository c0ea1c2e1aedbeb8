/*
NAME
  calibration.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package calibration holds the per-session mutable RuntimeCalibration
// (dark reference, white scale) and an opaque keyed persistence interface
// for it, plus a JSON-backed Store implementation.
package calibration

import (
	"time"
)

// RuntimeCalibration is the façade's mutable per-session calibration state.
// Populated by the calibration protocol (§4.D "White calibration"); either
// field may be absent.
type RuntimeCalibration struct {
	DarkRef    *[137]uint16
	WhiteScale *[36]float64
}

// Record is the persisted form, keyed by device serial (spec.md §6):
// {serial, timestamp, dark_ref, white_cal_factors}. Field names follow the
// spec's schema; the serializer itself is an implementation detail.
type Record struct {
	Serial          string      `json:"serial"`
	Timestamp       int64       `json:"timestamp"`
	DarkRef         [137]uint16 `json:"dark_ref"`
	WhiteCalFactors [36]float64 `json:"white_cal_factors"`
}

// ToRuntime converts a persisted Record into RuntimeCalibration.
func (r Record) ToRuntime() RuntimeCalibration {
	dark := r.DarkRef
	white := r.WhiteCalFactors
	return RuntimeCalibration{DarkRef: &dark, WhiteScale: &white}
}

// NewRecord builds a Record from the current runtime calibration,
// stamping Timestamp with now (seconds since epoch). Either field may be
// zero-valued if absent in rc; callers should only call this once both
// dark_ref and white_scale have been populated by calibrate().
func NewRecord(serial string, rc RuntimeCalibration, now time.Time) Record {
	rec := Record{Serial: serial, Timestamp: now.Unix()}
	if rc.DarkRef != nil {
		rec.DarkRef = *rc.DarkRef
	}
	if rc.WhiteScale != nil {
		rec.WhiteCalFactors = *rc.WhiteScale
	}
	return rec
}

// Store persists and retrieves calibration Records keyed by device serial.
type Store interface {
	Load(serial string) (Record, bool, error)
	Save(rec Record) error
}
