/*
NAME
  eeprom_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package eeprom

import (
	"encoding/binary"
	"math"
	"testing"
)

// buildValidPayload constructs a syntactically valid, checksum-correct
// EEPROM payload of MinLength bytes with predictable field values, for test
// construction. calVersion controls whether proj_coef is populated.
func buildValidPayload(t *testing.T, calVersion uint16) []byte {
	t.Helper()
	data := make([]byte, MinLength)

	binary.LittleEndian.PutUint16(data[offCalVersion:], calVersion)
	binary.LittleEndian.PutUint32(data[offProductionNo:], 123456)
	copy(data[offSerial:], []byte("CM12345\x00\x00\x00\x00\x00\x00\x00\x00\x00"))

	for i := 0; i < numBands; i++ {
		binary.LittleEndian.PutUint32(data[offRMtxIndex+4*i:], uint32(i))
		binary.LittleEndian.PutUint32(data[offEMtxIndex+4*i:], uint32(i))
	}
	for i := 0; i < numBands*matrixTaps; i++ {
		var v float32
		if i%matrixTaps == 0 {
			v = 1.0
		}
		binary.LittleEndian.PutUint32(data[offRMtxCoef+4*i:], math.Float32bits(v))
		binary.LittleEndian.PutUint32(data[offEMtxCoef+4*i:], math.Float32bits(v))
	}

	// Stored reversed: device order is [p3,p2,p1,p0]; we want constant term
	// (p0) = 0, p1 = 1, p2 = 0, p3 = 0 after decode reverses it.
	linNormalDeviceOrder := []float32{0, 0, 1, 0}
	for i, v := range linNormalDeviceOrder {
		binary.LittleEndian.PutUint32(data[offLinNormal+4*i:], math.Float32bits(v))
		binary.LittleEndian.PutUint32(data[offLinHigh+4*i:], math.Float32bits(v))
	}

	for i := 0; i < numBands; i++ {
		binary.LittleEndian.PutUint32(data[offWhiteRef+4*i:], math.Float32bits(100))
		binary.LittleEndian.PutUint32(data[offEmisCoef+4*i:], math.Float32bits(1))
		binary.LittleEndian.PutUint32(data[offAmbCoef+4*i:], math.Float32bits(1))
	}
	if calVersion >= minCalVersionForProj {
		for i := 0; i < numBands; i++ {
			binary.LittleEndian.PutUint32(data[offProjCoef+4*i:], math.Float32bits(1))
		}
	}

	sum := checksum(data)
	binary.LittleEndian.PutUint32(data[offChecksum:], sum)
	return data
}

func TestDecodeValidPayload(t *testing.T) {
	data := buildValidPayload(t, 3)
	p, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Serial != "CM12345" {
		t.Errorf("Serial = %q, want CM12345", p.Serial)
	}
	if p.ProductionNo != 123456 {
		t.Errorf("ProductionNo = %d, want 123456", p.ProductionNo)
	}
	if p.ProjCoef != nil {
		t.Errorf("ProjCoef should be nil for cal_version 3")
	}
	if p.LinNormal[0] != 0 || p.LinNormal[1] != 1 {
		t.Errorf("LinNormal = %v, want constant-first [0 1 0 0]", p.LinNormal)
	}
}

func TestDecodeProjCoefWhenVersionAtLeast5(t *testing.T) {
	data := buildValidPayload(t, 5)
	p, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.ProjCoef == nil {
		t.Fatal("ProjCoef should be populated for cal_version 5")
	}
	if p.ProjCoef[0] != 1 {
		t.Errorf("ProjCoef[0] = %v, want 1", p.ProjCoef[0])
	}
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode(make([]byte, MinLength-1))
	if err != ErrTruncated {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecodeChecksumMismatchOnByteFlip(t *testing.T) {
	data := buildValidPayload(t, 3)
	data[100] ^= 0xFF
	_, err := Decode(data)
	var mismatch *ChecksumMismatchError
	if err == nil {
		t.Fatal("expected checksum mismatch error")
	}
	if !asChecksumMismatch(err, &mismatch) {
		t.Fatalf("err = %v (%T), want *ChecksumMismatchError", err, err)
	}
}

func asChecksumMismatch(err error, target **ChecksumMismatchError) bool {
	if e, ok := err.(*ChecksumMismatchError); ok {
		*target = e
		return true
	}
	return false
}

func TestChecksumFlipsOnAnyByteChange(t *testing.T) {
	data := buildValidPayload(t, 3)
	base := checksum(data)
	for _, off := range []int{0, 20, 100, 4000, 8000, 8168} {
		mutated := append([]byte(nil), data...)
		mutated[off] ^= 0xFF
		if checksum(mutated) == base {
			t.Errorf("checksum unchanged after flipping byte %d", off)
		}
	}
}

func TestChecksumSkipsStoredWord(t *testing.T) {
	data := buildValidPayload(t, 3)
	before := checksum(data)
	data[offChecksum] ^= 0xFF // only touches the skipped word
	after := checksum(data)
	if before != after {
		t.Errorf("checksum should be unaffected by changes to the stored checksum word itself")
	}
}
