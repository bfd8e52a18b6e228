package tooltip

import (
	"testing"

	"github.com/ngmaloney/warehouse-map/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPosition(t *testing.T) {
	container := Rect{Left: 0, Top: 0, Width: 1000, Height: 600}
	size := Size{W: 250, H: 100}

	tests := []struct {
		name    string
		pointer Point
		want    Point
	}{
		{"down-right of pointer", Point{X: 100, Y: 100}, Point{X: 115, Y: 115}},
		{"flips left near right edge", Point{X: 900, Y: 100}, Point{X: 635, Y: 115}},
		{"flips up near bottom edge", Point{X: 100, Y: 550}, Point{X: 115, Y: 435}},
		{"flips both in corner", Point{X: 990, Y: 590}, Point{X: 725, Y: 475}},
		{"clamped at top-left", Point{X: -50, Y: -50}, Point{X: 10, Y: 10}},
		{"exactly fits right edge", Point{X: 735, Y: 0}, Point{X: 740, Y: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Position(tt.pointer, container, size, DefaultLayout))
		})
	}
}

func TestPosition_ContainerOffset(t *testing.T) {
	container := Rect{Left: 40, Top: 200, Width: 500, Height: 300}
	got := Position(Point{X: 60, Y: 220}, container, Size{W: 100, H: 50}, DefaultLayout)
	assert.Equal(t, Point{X: 35, Y: 35}, got)
}

func TestPosition_StaysInside(t *testing.T) {
	container := Rect{Width: 400, Height: 300}
	size := SizeFor(400)

	for x := -100.0; x <= 500; x += 25 {
		for y := -100.0; y <= 400; y += 25 {
			p := Position(Point{X: x, Y: y}, container, size, DefaultLayout)
			assert.GreaterOrEqual(t, p.X, 10.0)
			assert.GreaterOrEqual(t, p.Y, 10.0)
			assert.LessOrEqual(t, p.X, 400-size.W-10)
			assert.LessOrEqual(t, p.Y, 300-size.H-10)
		}
	}
}

func TestPosition_TinyContainer(t *testing.T) {
	got := Position(Point{X: 5, Y: 5}, Rect{Width: 100, Height: 50}, Size{W: 250, H: 100}, DefaultLayout)
	assert.Equal(t, Point{X: 10, Y: 10}, got)
}

func TestSizeFor(t *testing.T) {
	assert.Equal(t, Size{W: 250, H: 100}, SizeFor(768))
	assert.Equal(t, Size{W: 250, H: 100}, SizeFor(1440))
	assert.Equal(t, Size{W: 260, H: 120}, SizeFor(767))
	assert.Equal(t, Size{W: 260, H: 120}, SizeFor(375))
}

func TestTranslateToInset(t *testing.T) {
	inset := Rect{Left: 820, Top: 480, Width: 150, Height: 100}
	got := TranslateToInset(Point{X: 75, Y: 50}, inset, Size{W: 150, H: 100})
	assert.Equal(t, Point{X: 895, Y: 530}, got)

	half := Rect{Left: 10, Top: 20, Width: 75, Height: 50}
	got = TranslateToInset(Point{X: 150, Y: 100}, half, Size{W: 150, H: 100})
	assert.Equal(t, Point{X: 85, Y: 70}, got)
}

func TestContent(t *testing.T) {
	title, lines := Content(models.Warehouse{
		Company: "Isla Storage", Address: "Calle Marina 5", State: "PR", Type: "confirmed",
	})
	assert.Equal(t, "Isla Storage", title)
	assert.Equal(t, []string{
		"Dirección: Calle Marina 5",
		"Estado: PR",
		"Estatus: Confirmado",
	}, lines)

	_, lines = Content(models.Warehouse{Type: "Prospect"})
	assert.Equal(t, "Estatus: Potencial", lines[2])
}

func TestState(t *testing.T) {
	a := models.WarehouseKey{Company: "A", Address: "1"}
	b := models.WarehouseKey{Company: "B", Address: "2"}

	var s State
	s = s.Tap(a, Point{X: 1, Y: 1})
	assert.True(t, s.Visible)
	assert.Equal(t, a, s.Key)

	s = s.Tap(b, Point{X: 2, Y: 2})
	assert.True(t, s.Visible)
	assert.Equal(t, b, s.Key)

	s = s.Tap(b, Point{X: 2, Y: 2})
	assert.False(t, s.Visible)

	s = s.Hover(a, Point{}).Dismiss()
	assert.False(t, s.Visible)

	s = s.Hover(a, Point{}).Leave()
	assert.False(t, s.Visible)
}
