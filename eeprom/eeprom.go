/*
NAME
  eeprom.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

// Package eeprom decodes and validates the 8169-byte ColorMunki calibration
// EEPROM blob into an immutable CalibrationProfile.
package eeprom

import (
	"errors"
	"fmt"
	"strings"
)

// MinLength is the minimum payload length a valid EEPROM dump must have.
const MinLength = 8169

// Field offsets, per the device's authoritative memory map.
const (
	offCalVersion   = 0
	offChecksum     = 8
	offProductionNo = 12
	offSerial       = 24
	serialLen       = 16
	offRMtxIndex    = 40
	offRMtxCoef     = 184
	offEMtxIndex    = 2488
	offEMtxCoef     = 2632
	offLinNormal    = 4936
	offLinHigh      = 4952
	offWhiteRef     = 4968
	offEmisCoef     = 5112
	offAmbCoef      = 5256
	offProjCoef     = 8024

	numBands   = 36
	matrixTaps = 16 // coefficients per band in a sparse reconstruction matrix
)

// minCalVersionForProj is the lowest cal_version that carries a proj_coef
// vector.
const minCalVersionForProj = 5

// ErrTruncated indicates the payload is shorter than MinLength.
var ErrTruncated = errors.New("eeprom: payload truncated")

// ChecksumMismatchError reports a checksum validation failure.
type ChecksumMismatchError struct {
	Computed, Stored uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("eeprom: checksum mismatch: computed 0x%08x, stored 0x%08x", e.Computed, e.Stored)
}

// ErrBadField indicates a field could not be decoded (e.g. a read ran past
// the end of the payload for a field that MinLength should have covered).
var ErrBadField = errors.New("eeprom: bad field")

// Matrix is a 36-band sparse reconstruction matrix: for band w, the value is
// the dot product of Coef[w*16:(w+1)*16] with 16 consecutive linearized
// detector samples starting at Index[w].
type Matrix struct {
	Index []uint32  // len 36
	Coef  []float64 // len 576 (36*16)
}

// Band reconstructs band w from a 128-element linearized detector array.
func (m Matrix) Band(w int, linearized []float64) float64 {
	start := int(m.Index[w])
	var sum float64
	for k := 0; k < matrixTaps; k++ {
		idx := start + k
		if idx < 0 || idx >= len(linearized) {
			continue
		}
		sum += m.Coef[w*matrixTaps+k] * linearized[idx]
	}
	return sum
}

// CalibrationProfile is the immutable, parsed form of a calibration EEPROM.
type CalibrationProfile struct {
	CalVersion   uint16
	Serial       string
	ProductionNo uint32

	RMatrix Matrix // reflective sparse reconstruction matrix
	EMatrix Matrix // emissive sparse reconstruction matrix

	// LinNormal and LinHigh are 4-coefficient linearization polynomials with
	// LinNormal[0]/LinHigh[0] as the constant term (reversed from their
	// on-device storage order).
	LinNormal [4]float64
	LinHigh   [4]float64

	WhiteRef [numBands]float64
	EmisCoef [numBands]float64
	AmbCoef  [numBands]float64

	// ProjCoef is present only when CalVersion >= 5.
	ProjCoef *[numBands]float64
}

// Decode parses and validates a raw EEPROM dump.
func Decode(data []byte) (CalibrationProfile, error) {
	if len(data) < MinLength {
		return CalibrationProfile{}, ErrTruncated
	}

	stored := checksumAt(data)
	computed := checksum(data)
	if computed != stored {
		return CalibrationProfile{}, &ChecksumMismatchError{Computed: computed, Stored: stored}
	}

	c := newCursor(data)

	c.seek(offCalVersion)
	calVersion, ok := c.u16()
	if !ok {
		return CalibrationProfile{}, ErrBadField
	}

	c.seek(offProductionNo)
	productionNo, ok := c.u32()
	if !ok {
		return CalibrationProfile{}, ErrBadField
	}

	c.seek(offSerial)
	serialBytes := c.bytes(serialLen)
	if serialBytes == nil {
		return CalibrationProfile{}, ErrBadField
	}
	serial := trimSerial(serialBytes)

	rIndex, err := u32ArrayAt(data, offRMtxIndex, numBands)
	if err != nil {
		return CalibrationProfile{}, err
	}
	rCoef, err := f32ArrayAt(data, offRMtxCoef, numBands*matrixTaps)
	if err != nil {
		return CalibrationProfile{}, err
	}
	eIndex, err := u32ArrayAt(data, offEMtxIndex, numBands)
	if err != nil {
		return CalibrationProfile{}, err
	}
	eCoef, err := f32ArrayAt(data, offEMtxCoef, numBands*matrixTaps)
	if err != nil {
		return CalibrationProfile{}, err
	}

	linNormalRaw, err := f32ArrayAt(data, offLinNormal, 4)
	if err != nil {
		return CalibrationProfile{}, err
	}
	linHighRaw, err := f32ArrayAt(data, offLinHigh, 4)
	if err != nil {
		return CalibrationProfile{}, err
	}

	whiteRef, err := f32ArrayAt(data, offWhiteRef, numBands)
	if err != nil {
		return CalibrationProfile{}, err
	}
	emisCoef, err := f32ArrayAt(data, offEmisCoef, numBands)
	if err != nil {
		return CalibrationProfile{}, err
	}
	ambCoef, err := f32ArrayAt(data, offAmbCoef, numBands)
	if err != nil {
		return CalibrationProfile{}, err
	}

	profile := CalibrationProfile{
		CalVersion:   calVersion,
		Serial:       serial,
		ProductionNo: productionNo,
		RMatrix:      Matrix{Index: rIndex, Coef: rCoef},
		EMatrix:      Matrix{Index: eIndex, Coef: eCoef},
		LinNormal:    reversePoly(linNormalRaw),
		LinHigh:      reversePoly(linHighRaw),
	}
	copy(profile.WhiteRef[:], whiteRef)
	copy(profile.EmisCoef[:], emisCoef)
	copy(profile.AmbCoef[:], ambCoef)

	if calVersion >= minCalVersionForProj {
		projCoef, err := f32ArrayAt(data, offProjCoef, numBands)
		if err != nil {
			return CalibrationProfile{}, err
		}
		var arr [numBands]float64
		copy(arr[:], projCoef)
		profile.ProjCoef = &arr
	}

	return profile, nil
}

func checksumAt(data []byte) uint32 {
	c := newCursor(data)
	c.seek(offChecksum)
	v, _ := c.u32()
	return v
}

func u32ArrayAt(data []byte, offset, n int) ([]uint32, error) {
	c := newCursor(data)
	c.seek(offset)
	v, ok := c.u32Array(n)
	if !ok {
		return nil, ErrBadField
	}
	return v, nil
}

func f32ArrayAt(data []byte, offset, n int) ([]float64, error) {
	c := newCursor(data)
	c.seek(offset)
	v, ok := c.f32Array(n)
	if !ok {
		return nil, ErrBadField
	}
	return v, nil
}

// reversePoly reverses a 4-coefficient polynomial as stored on the device
// (highest order first) into constant-term-first order.
func reversePoly(p []float64) [4]float64 {
	var out [4]float64
	for i := range p {
		out[i] = p[len(p)-1-i]
	}
	return out
}

// trimSerial truncates at the first NUL byte and decodes the remainder as
// lossy UTF-8.
func trimSerial(b []byte) string {
	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.ToValidUTF8(string(b), "")
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
