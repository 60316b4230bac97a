package input

import "github.com/Faultbox/orbitview/internal/viewer"

// Rect is a pixel rectangle with the origin at the window's top-left.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// GL returns r in OpenGL viewport coordinates (origin bottom-left) for a
// window of the given height.
func (r Rect) GL(windowHeight int) (x, y, w, h int32) {
	return int32(r.X), int32(windowHeight - r.Y - r.H), int32(r.W), int32(r.H)
}

// Layout places the main view over the whole window and the square minimap
// in the top-right corner.
type Layout struct {
	Width, Height int
	MinimapSize   int
	Margin        int
}

// Rect returns the window rectangle of view.
func (l Layout) Rect(view viewer.View) Rect {
	if view == viewer.Minimap {
		return l.minimap()
	}
	return Rect{W: l.Width, H: l.Height}
}

func (l Layout) minimap() Rect {
	s := min(l.MinimapSize, l.Width-2*l.Margin, l.Height-2*l.Margin)
	if s < 0 {
		s = 0
	}
	return Rect{X: l.Width - l.Margin - s, Y: l.Margin, W: s, H: s}
}

// ViewAt returns the view under window pixel (x, y) and the pixel relative
// to that view's top-left corner. The minimap sits on top of the main view.
func (l Layout) ViewAt(x, y int) (view viewer.View, lx, ly float32) {
	if mm := l.minimap(); mm.Contains(x, y) {
		return viewer.Minimap, float32(x - mm.X), float32(y - mm.Y)
	}
	return viewer.Main, float32(x), float32(y)
}
