/*
NAME
  icc_test.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package icc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/xrite/colormunki-core/colorimetry"
)

func testProfile() Profile {
	return Profile{
		Description: "ColorMunki Test",
		Copyright:   "Copyright none",
		WhitePoint:  colorimetry.XYZ{X: 96.42, Y: 100, Z: 82.49},
		RedXYZ:      colorimetry.XYZ{X: 43.6, Y: 22.2, Z: 1.4},
		GreenXYZ:    colorimetry.XYZ{X: 38.5, Y: 71.7, Z: 9.7},
		BlueXYZ:     colorimetry.XYZ{X: 14.3, Y: 6.1, Z: 71.4},
		RedGamma:    2.2,
		GreenGamma:  2.2,
		BlueGamma:   2.2,
	}
}

func TestWriteProducesWellFormedHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testProfile()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	if len(b) < headerSize {
		t.Fatalf("output shorter than header: %d bytes", len(b))
	}

	size := binary.BigEndian.Uint32(b[0:4])
	if int(size) != len(b) {
		t.Errorf("header size field = %d, want %d (actual length)", size, len(b))
	}
	if sig := string(b[4:8]); sig != "scrs" {
		t.Errorf("CMM signature = %q, want scrs", sig)
	}
	if cls := string(b[12:16]); cls != "mntr" {
		t.Errorf("device class = %q, want mntr", cls)
	}
	if cs := string(b[16:20]); cs != "RGB " {
		t.Errorf("color space = %q, want \"RGB \"", cs)
	}
	if pcs := string(b[20:24]); pcs != "XYZ " {
		t.Errorf("PCS = %q, want \"XYZ \"", pcs)
	}
	if magic := string(b[36:40]); magic != "acsp" {
		t.Errorf("magic = %q, want acsp", magic)
	}
}

func TestWriteTagTableCountMatchesTags(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testProfile()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	count := binary.BigEndian.Uint32(b[headerSize : headerSize+4])
	if count != 9 {
		t.Errorf("tag count = %d, want 9 (no LUT)", count)
	}
}

func TestWriteWithLUTAddsA2B0Tag(t *testing.T) {
	p := testProfile()
	p.LUT = &LUT{
		GridPoints: 3,
		Fill: func(r, g, b float64) (float64, float64, float64) {
			return r, g, b
		},
	}
	var buf bytes.Buffer
	if err := Write(&buf, p); err != nil {
		t.Fatalf("Write: %v", err)
	}
	b := buf.Bytes()
	count := binary.BigEndian.Uint32(b[headerSize : headerSize+4])
	if count != 10 {
		t.Errorf("tag count = %d, want 10 (with LUT)", count)
	}

	found := false
	for i := uint32(0); i < count; i++ {
		entryOff := headerSize + 4 + i*tagTableEntrySize
		sig := string(b[entryOff : entryOff+4])
		if sig == "A2B0" {
			found = true
		}
	}
	if !found {
		t.Error("A2B0 tag missing from tag table")
	}
}

func TestXYZTagRoundTrips(t *testing.T) {
	c := colorimetry.XYZ{X: 41.24, Y: 21.26, Z: 1.93}
	body := xyzTag(c)
	if len(body) != 20 {
		t.Fatalf("xyzTag length = %d, want 20", len(body))
	}
	if sig := string(body[0:4]); sig != "XYZ " {
		t.Errorf("sig = %q, want \"XYZ \"", sig)
	}
	x := float64(int32(binary.BigEndian.Uint32(body[8:12]))) / 65536
	if diff := x - c.X/100; diff > 1e-4 || diff < -1e-4 {
		t.Errorf("decoded X = %v, want ~%v", x, c.X/100)
	}
}

func TestCurvTagEncodesGammaAsU16(t *testing.T) {
	body := curvTag(2.2)
	if len(body) != 16 {
		t.Fatalf("curvTag length = %d, want 16", len(body))
	}
	count := binary.BigEndian.Uint32(body[8:12])
	if count != 1 {
		t.Fatalf("curv count = %d, want 1", count)
	}
	gamma := binary.BigEndian.Uint16(body[12:14])
	if gamma != 563 { // round(2.2*256)
		t.Errorf("encoded gamma = %d, want 563", gamma)
	}
}

func TestDescTagNullTerminatesText(t *testing.T) {
	body := descTag("hello")
	count := binary.BigEndian.Uint32(body[8:12])
	if count != 6 {
		t.Errorf("ASCII count = %d, want 6 (incl NUL)", count)
	}
	if len(body) != 8+4+6+67 {
		t.Errorf("descTag length = %d, want %d", len(body), 8+4+6+67)
	}
}

func TestEncodeS15Fixed16(t *testing.T) {
	if got := encodeS15Fixed16(1.0); got != 65536 {
		t.Errorf("encodeS15Fixed16(1.0) = %d, want 65536", got)
	}
	if got := encodeS15Fixed16(-0.5); got != -32768 {
		t.Errorf("encodeS15Fixed16(-0.5) = %d, want -32768", got)
	}
}

func TestMft2TagRejectsBadGridPoints(t *testing.T) {
	_, err := mft2Tag(LUT{GridPoints: 1, Fill: func(r, g, b float64) (float64, float64, float64) { return 0, 0, 0 }})
	if err == nil {
		t.Error("expected error for GridPoints=1")
	}
}

func TestMft2TagSizeMatchesGrid(t *testing.T) {
	n := 4
	body, err := mft2Tag(LUT{
		GridPoints: n,
		Fill: func(r, g, b float64) (float64, float64, float64) { return r, g, b },
	})
	if err != nil {
		t.Fatalf("mft2Tag: %v", err)
	}
	headerAndMatrix := 4 + 4 + 4 + 9*4 + 4 // sig+reserved, channel/grid bytes, matrix, table-count u16s
	clut := n * n * n * 3 * 2
	linearTables := 2 * (3 * linearTableEntries * 2) // input + output, 3 channels each
	want := headerAndMatrix + linearTables + clut
	if len(body) != want {
		t.Errorf("mft2Tag length = %d, want %d", len(body), want)
	}
}
