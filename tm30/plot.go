/*
NAME
  plot.go

LICENSE
  Copyright (C) 2026 the colormunki-core contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the colormunki-core contributors.
*/

package tm30

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderColorVectorGraphic draws the TM-30 color vector graphic (the
// 16-bin reference circle overlaid with the test-source chroma/hue shift
// polygon) as a PNG, writing the encoded image to w.
func RenderColorVectorGraphic(m Metrics, w io.Writer) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("TM-30 Color Vector Graphic (Rf=%.0f, Rg=%.0f)", m.Rf, m.Rg)
	p.X.Label.Text = "a'"
	p.Y.Label.Text = "b'"

	refPts := make(plotter.XYs, hueBins+1)
	testPts := make(plotter.XYs, hueBins+1)
	for i := 0; i < hueBins; i++ {
		refPts[i].X, refPts[i].Y = m.BinRefA[i], m.BinRefB[i]
		testPts[i].X, testPts[i].Y = m.BinTestA[i], m.BinTestB[i]
	}
	refPts[hueBins] = refPts[0]
	testPts[hueBins] = testPts[0]

	refLine, err := plotter.NewLine(refPts)
	if err != nil {
		return fmt.Errorf("tm30: reference polygon: %w", err)
	}
	refLine.LineStyle.Color = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	refLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	testLine, err := plotter.NewLine(testPts)
	if err != nil {
		return fmt.Errorf("tm30: test polygon: %w", err)
	}
	testLine.LineStyle.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	testLine.LineStyle.Width = vg.Points(1.5)

	p.Add(refLine, testLine)
	p.Legend.Add("Reference", refLine)
	p.Legend.Add("Test", testLine)

	writer, err := p.WriterTo(5*vg.Inch, 5*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("tm30: render: %w", err)
	}
	_, err = writer.WriteTo(w)
	return err
}
