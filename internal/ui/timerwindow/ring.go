package timerwindow

import (
	"image/color"
	"math"

	"pomodoro/internal/session"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	ringDots   = 60
	ringRadius = 90
	dotSize    = 7
)

// ringView draws the progress ring as dots; the lit arc is the part of the
// stroke left visible by the ring's dash offset.
type ringView struct {
	geometry session.Ring
	dots     []*canvas.Circle
	lit      int
	content  *fyne.Container
}

func newRingView() *ringView {
	ring := &ringView{geometry: session.Ring{Radius: ringRadius}}
	objects := make([]fyne.CanvasObject, 0, ringDots)
	for i := 0; i < ringDots; i++ {
		dot := canvas.NewCircle(color.Transparent)
		ring.dots = append(ring.dots, dot)
		objects = append(objects, dot)
	}
	ring.content = container.New(&ringLayout{}, objects...)
	return ring
}

// set lights the dots for progress in [0, 1], starting at twelve o'clock.
func (ring *ringView) set(progress float64, on, off color.Color) {
	circumference := ring.geometry.Circumference()
	visible := circumference - ring.geometry.Offset(progress)
	ring.lit = int(math.Round(ringDots * visible / circumference))
	for i, dot := range ring.dots {
		if i < ring.lit {
			dot.FillColor = on
		} else {
			dot.FillColor = off
		}
		dot.Refresh()
	}
}

type ringLayout struct{}

func (layout *ringLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	radius := side/2 - dotSize
	if radius < 0 {
		radius = 0
	}
	centerX, centerY := size.Width/2, size.Height/2
	step := 2 * math.Pi / float64(len(objects))
	for i, object := range objects {
		angle := -math.Pi/2 + step*float64(i)
		x := centerX + radius*float32(math.Cos(angle)) - dotSize/2
		y := centerY + radius*float32(math.Sin(angle)) - dotSize/2
		object.Move(fyne.NewPos(x, y))
		object.Resize(fyne.NewSize(dotSize, dotSize))
	}
}

func (layout *ringLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(2*ringRadius, 2*ringRadius)
}
