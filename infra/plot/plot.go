// Package plot renders the solved schedule as a three-panel PNG: price
// curve, daily flows and storage trajectory.
package plot

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/gastrade/ugs-auction/core/model"
)

var (
	priceColor    = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	injectColor   = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	withdrawColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	storageColor  = color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff}
	capacityColor = color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}
)

// Render writes the schedule chart to path.
func Render(path string, plan model.Plan, fac model.Facility) error {
	price, err := pricePanel(plan)
	if err != nil {
		return err
	}
	flows, err := flowPanel(plan)
	if err != nil {
		return err
	}
	storage, err := storagePanel(plan, fac)
	if err != nil {
		return err
	}

	img := vgimg.New(24*vg.Centimeter, 24*vg.Centimeter)
	dc := draw.New(img)
	panels := [][]*plot.Plot{{price}, {flows}, {storage}}
	canvases := plot.Align(panels, draw.Tiles{Rows: 3, Cols: 1, PadY: vg.Millimeter * 4}, dc)
	for r := range panels {
		panels[r][0].Draw(canvases[r][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}

func pricePanel(plan model.Plan) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Forward curve"
	p.X.Label.Text = "day"
	p.Y.Label.Text = "€/MWh"

	pts := make(plotter.XYs, len(plan))
	for i, r := range plan {
		pts[i].X = float64(r.DayIndex)
		pts[i].Y = r.Price
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("price line: %w", err)
	}
	line.Color = priceColor
	p.Add(plotter.NewGrid(), line)
	return p, nil
}

func flowPanel(plan model.Plan) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Daily flows"
	p.X.Label.Text = "day"
	p.Y.Label.Text = "MWh/day"

	injects := make(plotter.Values, len(plan))
	withdraws := make(plotter.Values, len(plan))
	for i, r := range plan {
		injects[i] = r.Inject
		withdraws[i] = -r.Withdraw
	}
	injBars, err := plotter.NewBarChart(injects, vg.Points(1))
	if err != nil {
		return nil, fmt.Errorf("injection bars: %w", err)
	}
	wdBars, err := plotter.NewBarChart(withdraws, vg.Points(1))
	if err != nil {
		return nil, fmt.Errorf("withdrawal bars: %w", err)
	}
	injBars.Color, injBars.LineStyle.Width = injectColor, 0
	wdBars.Color, wdBars.LineStyle.Width = withdrawColor, 0
	p.Add(plotter.NewGrid(), injBars, wdBars)
	p.Legend.Add("inject", injBars)
	p.Legend.Add("withdraw", wdBars)
	p.Legend.Top = true
	return p, nil
}

func storagePanel(plan model.Plan, fac model.Facility) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Storage level"
	p.X.Label.Text = "day"
	p.Y.Label.Text = "MWh"

	pts := make(plotter.XYs, len(plan))
	for i, r := range plan {
		pts[i].X = float64(r.DayIndex)
		pts[i].Y = r.Storage
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("storage line: %w", err)
	}
	line.Color = storageColor

	capacity, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: fac.WGV},
		{X: float64(len(plan) - 1), Y: fac.WGV},
	})
	if err != nil {
		return nil, fmt.Errorf("capacity line: %w", err)
	}
	capacity.Color = capacityColor
	capacity.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(plotter.NewGrid(), line, capacity)
	p.Legend.Add("storage", line)
	p.Legend.Add("wgv", capacity)
	p.Legend.Top = true
	return p, nil
}
