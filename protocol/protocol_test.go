/*
NAME
  protocol_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/ausocean/utils/logging"

	"github.com/xrite/colormunki-core/radiometric"
	"github.com/xrite/colormunki-core/transport"
)

func testEngine() (*Engine, *transport.Mock) {
	m := transport.NewMock()
	l := logging.New(int8(logging.Debug), nil, true)
	return NewEngine(m, l), m
}

func TestGetVersionTrimsAtNUL(t *testing.T) {
	e, m := testEngine()
	payload := append([]byte("v1.2.3"), 0, 0, 0)
	m.ExpectControlRead(transport.ControlResponse{Data: payload})

	v, err := e.GetVersion()
	if err != nil {
		t.Fatalf("GetVersion: %v", err)
	}
	if v != "v1.2.3" {
		t.Errorf("GetVersion = %q, want v1.2.3", v)
	}
}

func TestGetFirmwareDecodesFields(t *testing.T) {
	e, m := testEngine()
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], 1)
	binary.LittleEndian.PutUint32(buf[4:8], 2)
	binary.LittleEndian.PutUint32(buf[8:12], 50)
	binary.LittleEndian.PutUint32(buf[12:16], 100)
	binary.LittleEndian.PutUint32(buf[16:20], 4)
	binary.LittleEndian.PutUint32(buf[20:24], 1024)
	m.ExpectControlRead(transport.ControlResponse{Data: buf})

	fw, err := e.GetFirmware()
	if err != nil {
		t.Fatalf("GetFirmware: %v", err)
	}
	if fw.Major != 1 || fw.Minor != 2 || fw.TickUs != 50 || fw.MinIntCount != 100 || fw.NumBlocks != 4 || fw.BlockSize != 1024 {
		t.Errorf("GetFirmware = %+v", fw)
	}
	if got, want := fw.TickSec(), 50e-6; got != want {
		t.Errorf("TickSec() = %v, want %v", got, want)
	}
	if got, want := fw.DefaultIntTimeSec(), 100*50e-6; got != want {
		t.Errorf("DefaultIntTimeSec() = %v, want %v", got, want)
	}
}

func TestGetStatusDecodesPosition(t *testing.T) {
	e, m := testEngine()
	m.ExpectControlRead(transport.ControlResponse{Data: []byte{2, 1}})

	pos, pressed, err := e.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if pos != Calibration {
		t.Errorf("pos = %v, want Calibration", pos)
	}
	if !pressed {
		t.Error("pressed = false, want true")
	}
}

func TestGetStatusUnknownPosition(t *testing.T) {
	e, m := testEngine()
	m.ExpectControlRead(transport.ControlResponse{Data: []byte{9, 0}})

	pos, _, err := e.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !pos.IsUnknown() || pos.Raw() != 9 {
		t.Errorf("pos = %v, want Unknown(9)", pos)
	}
}

func TestReadEEPROMAssemblesChunks(t *testing.T) {
	e, m := testEngine()
	m.ExpectControlWrite(transport.ControlResponse{})
	m.InterruptChunks = [][]byte{{1, 2, 3}, {4, 5}}

	data, err := e.ReadEEPROM(0, 5)
	if err != nil {
		t.Fatalf("ReadEEPROM: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5}
	if len(data) != len(want) {
		t.Fatalf("data = %v, want %v", data, want)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("data[%d] = %d, want %d", i, data[i], want[i])
		}
	}
}

func TestMeasureDecodesFrames(t *testing.T) {
	e, m := testEngine()
	m.ExpectControlWrite(transport.ControlResponse{})

	frame := make([]byte, radiometric.FrameSamples*2)
	for i := 0; i < radiometric.FrameSamples; i++ {
		binary.LittleEndian.PutUint16(frame[i*2:], uint16(i))
	}
	m.InterruptChunks = [][]byte{frame}

	fw := Firmware{TickUs: 1, MinIntCount: 1}
	frames, err := e.Measure(fw, TriggerOptions{IntTimeSec: 0.001, NumMeas: 1})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if len(frames) != 1 {
		t.Fatalf("len(frames) = %d, want 1", len(frames))
	}
	for i := 0; i < radiometric.FrameSamples; i++ {
		if frames[0][i] != uint16(i) {
			t.Fatalf("frames[0][%d] = %d, want %d", i, frames[0][i], i)
		}
	}
}

func TestMeasureShortReadError(t *testing.T) {
	e, m := testEngine()
	m.ExpectControlWrite(transport.ControlResponse{})
	m.InterruptChunks = [][]byte{{1, 2, 3}} // not a multiple of 274

	fw := Firmware{TickUs: 1, MinIntCount: 1}
	_, err := e.Measure(fw, TriggerOptions{IntTimeSec: 0.001, NumMeas: 1})
	if _, ok := err.(*ShortReadError); !ok {
		t.Fatalf("err = %v, want *ShortReadError", err)
	}
}
