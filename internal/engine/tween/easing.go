// Package tween drives time-based camera transitions.
package tween

import (
	"slices"

	"github.com/tanema/gween/ease"
)

// Easing remaps normalized progress in [0, 1] onto [0, 1].
type Easing func(p float32) float32

// FromTweenFunc adapts a gween easing to normalized progress.
func FromTweenFunc(fn ease.TweenFunc) Easing {
	return func(p float32) float32 {
		return fn(p, 0, 1, 1)
	}
}

// Linear is the identity easing.
var Linear Easing = FromTweenFunc(ease.Linear)

// QuadraticOut decelerates; it is the default camera easing.
var QuadraticOut Easing = FromTweenFunc(ease.OutQuad)

// Only monotonic curves are registered: overshooting easings (back,
// elastic, bounce) would swing the camera past its goal.
var easings = map[string]Easing{
	"linear":             Linear,
	"quadratic-in":       FromTweenFunc(ease.InQuad),
	"quadratic-out":      QuadraticOut,
	"quadratic-in-out":   FromTweenFunc(ease.InOutQuad),
	"cubic-in":           FromTweenFunc(ease.InCubic),
	"cubic-out":          FromTweenFunc(ease.OutCubic),
	"cubic-in-out":       FromTweenFunc(ease.InOutCubic),
	"sine-in-out":        FromTweenFunc(ease.InOutSine),
	"exponential-out":    FromTweenFunc(ease.OutExpo),
	"circular-out":       FromTweenFunc(ease.OutCirc),
	"quartic-in-out":     FromTweenFunc(ease.InOutQuart),
	"quintic-out":        FromTweenFunc(ease.OutQuint),
	"exponential-in-out": FromTweenFunc(ease.InOutExpo),
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// Names lists the registered easing names in sorted order.
func Names() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
