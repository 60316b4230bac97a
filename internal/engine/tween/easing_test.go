package tween

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e, ok := Lookup(name)
			require.True(t, ok)
			assert.InDelta(t, 0, e(0), 1e-5)
			assert.InDelta(t, 1, e(1), 1e-3)
		})
	}
}

func TestEasingMonotonic(t *testing.T) {
	for _, name := range Names() {
		e, _ := Lookup(name)
		prev := e(0)
		for i := 1; i <= 100; i++ {
			v := e(float32(i) / 100)
			if v < prev-1e-6 {
				t.Fatalf("%s: not monotonic at p=%v (%v < %v)", name, float32(i)/100, v, prev)
			}
			prev = v
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup("elastic-out")
	assert.False(t, ok)
}

func TestQuadraticOut(t *testing.T) {
	// 1 - (1-p)^2
	assert.InDelta(t, 0.75, QuadraticOut(0.5), 1e-6)
	assert.InDelta(t, 0.5, Linear(0.5), 1e-6)
}
