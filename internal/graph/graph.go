// Package graph samples an expression over a range and draws it as text.
package graph

import (
	"errors"
	"math"
	"strings"
)

// Zoom factor applied per step by front ends.
const ZoomStep = 1.1

var ErrEmptyViewport = errors.New("viewport has no width or height")

// Evaluator is satisfied by *expression.Node.
type Evaluator interface {
	Evaluate(variable string, value float64) (float64, error)
}

type Point struct {
	X, Y float64
}

type Viewport struct {
	XMin, XMax float64
	YMin, YMax float64
}

func NewViewport(xMin, xMax float64) Viewport {
	return Viewport{XMin: xMin, XMax: xMax, YMin: xMin, YMax: xMax}
}

func (vp Viewport) Validate() error {
	if !(vp.XMax > vp.XMin) || !(vp.YMax > vp.YMin) {
		return ErrEmptyViewport
	}
	return nil
}

// Zoom scales both ranges around their centers. A factor above 1 zooms out.
func (vp Viewport) Zoom(factor float64) Viewport {
	xMid, yMid := (vp.XMin+vp.XMax)/2, (vp.YMin+vp.YMax)/2
	xHalf, yHalf := (vp.XMax-vp.XMin)/2*factor, (vp.YMax-vp.YMin)/2*factor
	return Viewport{
		XMin: xMid - xHalf,
		XMax: xMid + xHalf,
		YMin: yMid - yHalf,
		YMax: yMid + yHalf,
	}
}

// Sample evaluates e once per column across the x range of vp, edges
// included. Columns that fail to evaluate or land on a non-finite value are
// left out.
func Sample(e Evaluator, variable string, vp Viewport, columns int) []Point {
	if columns < 2 {
		columns = 2
	}

	points := make([]Point, 0, columns)
	step := (vp.XMax - vp.XMin) / float64(columns-1)
	for col := range columns {
		x := vp.XMin + float64(col)*step
		y, err := e.Evaluate(variable, x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// FitY returns vp with its y range set to span the sampled values. A flat
// graph gets one unit of room on each side.
func FitY(points []Point, vp Viewport) Viewport {
	if len(points) == 0 {
		return vp
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Y)
		hi = math.Max(hi, p.Y)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	vp.YMin, vp.YMax = lo, hi
	return vp
}

// Render draws the points on a width by height character grid. Axes are drawn
// where zero falls inside the viewport.
func Render(points []Point, vp Viewport, width, height int) (string, error) {
	if err := vp.Validate(); err != nil {
		return "", err
	}
	if width < 2 || height < 2 {
		return "", errors.New("plot must be at least 2x2 characters")
	}

	grid := make([][]rune, height)
	for row := range grid {
		grid[row] = []rune(strings.Repeat(" ", width))
	}

	colOf := func(x float64) int {
		return int(math.Round((x - vp.XMin) / (vp.XMax - vp.XMin) * float64(width-1)))
	}
	rowOf := func(y float64) int {
		return height - 1 - int(math.Round((y-vp.YMin)/(vp.YMax-vp.YMin)*float64(height-1)))
	}

	// Axes
	if vp.YMin <= 0 && 0 <= vp.YMax {
		row := rowOf(0)
		for col := range width {
			grid[row][col] = '-'
		}
	}
	if vp.XMin <= 0 && 0 <= vp.XMax {
		col := colOf(0)
		for row := range height {
			if grid[row][col] == '-' {
				grid[row][col] = '+'
			} else {
				grid[row][col] = '|'
			}
		}
	}

	for _, p := range points {
		if math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		col, row := colOf(p.X), rowOf(p.Y)
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		grid[row][col] = '*'
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
