/*
NAME
  mock_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package transport

import (
	"errors"
	"testing"
)

func TestMockControlReadReturnsScriptedData(t *testing.T) {
	m := NewMock()
	m.ExpectControlRead(ControlResponse{Data: []byte{1, 2, 3}})

	buf := make([]byte, 8)
	n, err := m.ControlRead(0x85, 0, 0, buf, DefaultControlTimeout)
	if err != nil {
		t.Fatalf("ControlRead: %v", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	if buf[0] != 1 || buf[1] != 2 || buf[2] != 3 {
		t.Errorf("buf = %v, want [1 2 3 ...]", buf[:3])
	}
}

func TestMockControlReadPropagatesScriptedError(t *testing.T) {
	m := NewMock()
	wantErr := errors.New("boom")
	m.ExpectControlRead(ControlResponse{Err: wantErr})

	_, err := m.ControlRead(0x85, 0, 0, make([]byte, 4), DefaultControlTimeout)
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *transport.Error", err)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("err does not wrap %v", wantErr)
	}
}

func TestMockControlReadWithoutScriptFails(t *testing.T) {
	m := NewMock()
	_, err := m.ControlRead(0x85, 0, 0, make([]byte, 4), DefaultControlTimeout)
	if err == nil {
		t.Fatal("expected error for unscripted call")
	}
}

func TestMockInterruptReadCyclesChunksThenZero(t *testing.T) {
	m := NewMock()
	m.InterruptChunks = [][]byte{{1, 2}, {3, 4, 5}}

	buf := make([]byte, 8)
	n, err := m.InterruptRead(InterruptEndpoint, buf, DefaultInterruptTimeout)
	if err != nil || n != 2 {
		t.Fatalf("first read: n=%d err=%v", n, err)
	}
	n, err = m.InterruptRead(InterruptEndpoint, buf, DefaultInterruptTimeout)
	if err != nil || n != 3 {
		t.Fatalf("second read: n=%d err=%v", n, err)
	}
	n, err = m.InterruptRead(InterruptEndpoint, buf, DefaultInterruptTimeout)
	if err != nil || n != 0 {
		t.Fatalf("third read: n=%d err=%v, want 0,nil (terminator)", n, err)
	}
}

func TestMockControlWriteRecordsCall(t *testing.T) {
	m := NewMock()
	m.ExpectControlWrite(ControlResponse{})
	n, err := m.ControlWrite(0x81, 0, 0, []byte{9, 9}, DefaultControlTimeout)
	if err != nil {
		t.Fatalf("ControlWrite: %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if len(m.ControlWriteCalls) != 1 || len(m.ControlWriteCalls[0].Data) != 2 {
		t.Fatalf("ControlWriteCalls = %+v", m.ControlWriteCalls)
	}
}

func TestMockName(t *testing.T) {
	var tr Transport = NewMock()
	if tr.Name() != "mock" {
		t.Errorf("Name() = %q, want mock", tr.Name())
	}
}
