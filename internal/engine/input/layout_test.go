package input

import (
	"testing"

	"github.com/Faultbox/orbitview/internal/viewer"
)

func TestLayoutMinimapCorner(t *testing.T) {
	l := Layout{Width: 1280, Height: 720, MinimapSize: 200, Margin: 10}

	mm := l.Rect(viewer.Minimap)
	want := Rect{X: 1070, Y: 10, W: 200, H: 200}
	if mm != want {
		t.Errorf("minimap rect = %+v, want %+v", mm, want)
	}

	x, y, w, h := mm.GL(720)
	if x != 1070 || y != 510 || w != 200 || h != 200 {
		t.Errorf("GL viewport = (%d, %d, %d, %d), want (1070, 510, 200, 200)", x, y, w, h)
	}

	if main := l.Rect(viewer.Main); main != (Rect{W: 1280, H: 720}) {
		t.Errorf("main rect = %+v", main)
	}
}

func TestLayoutMinimapShrinksWithWindow(t *testing.T) {
	l := Layout{Width: 150, Height: 100, MinimapSize: 200, Margin: 10}
	if mm := l.Rect(viewer.Minimap); mm.W != 80 || mm.H != 80 {
		t.Errorf("minimap = %+v, want 80x80", mm)
	}

	l = Layout{Width: 0, Height: 0, MinimapSize: 200, Margin: 10}
	if mm := l.Rect(viewer.Minimap); !mm.Empty() {
		t.Errorf("minimap should be empty in a zero-size window, got %+v", mm)
	}
}

func TestLayoutViewAt(t *testing.T) {
	l := Layout{Width: 1280, Height: 720, MinimapSize: 200, Margin: 10}

	tests := []struct {
		x, y   int
		view   viewer.View
		lx, ly float32
	}{
		{640, 360, viewer.Main, 640, 360},
		{1070, 10, viewer.Minimap, 0, 0},
		{1269, 209, viewer.Minimap, 199, 199},
		{1270, 100, viewer.Main, 1270, 100},
		{1100, 215, viewer.Main, 1100, 215},
	}
	for _, tt := range tests {
		view, lx, ly := l.ViewAt(tt.x, tt.y)
		if view != tt.view || lx != tt.lx || ly != tt.ly {
			t.Errorf("ViewAt(%d, %d) = %v (%v, %v), want %v (%v, %v)",
				tt.x, tt.y, view, lx, ly, tt.view, tt.lx, tt.ly)
		}
	}
}
