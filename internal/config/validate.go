package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/orbitview/internal/engine/tween"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/viewer"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error
	fail := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		fail("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		fail("camera: fov must be in (0, 180), got %v", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		fail("camera: need 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Position == c.Camera.Target {
		fail("camera: position equals target")
	}

	if c.Controls.MinDistance < 0 || c.Controls.MinDistance > c.Controls.MaxDistance {
		fail("controls: need 0 <= min_distance <= max_distance, got %v and %v",
			c.Controls.MinDistance, c.Controls.MaxDistance)
	}
	if c.Controls.DampingFactor <= 0 || c.Controls.DampingFactor > 1 {
		fail("controls: damping_factor must be in (0, 1], got %v", c.Controls.DampingFactor)
	}
	if c.Controls.MaxPolarAngle <= 0 || c.Controls.MaxPolarAngle > 180 {
		fail("controls: max_polar_angle must be in (0, 180], got %v", c.Controls.MaxPolarAngle)
	}
	if _, perr := viewer.ParseInputPolicy(c.Controls.InputPolicy); perr != nil {
		fail("controls: %v", perr)
	}

	if c.Transition.DurationMS < 0 {
		fail("transition: duration_ms must not be negative, got %d", c.Transition.DurationMS)
	}
	if _, ok := tween.Lookup(c.Transition.Easing); !ok {
		fail("transition: unknown easing %q (have %v)", c.Transition.Easing, tween.Names())
	}
	if c.Transition.FitFactor <= 0 {
		fail("transition: fit_factor must be positive, got %v", c.Transition.FitFactor)
	}

	if c.Minimap.Size <= 0 {
		fail("minimap: size must be positive, got %d", c.Minimap.Size)
	}
	if c.Minimap.Margin < 0 {
		fail("minimap: margin must not be negative, got %d", c.Minimap.Margin)
	}
	if c.Minimap.Height <= 0 {
		fail("minimap: height must be positive, got %v", c.Minimap.Height)
	}
	if c.Minimap.FOV <= 0 || c.Minimap.FOV >= 180 {
		fail("minimap: fov must be in (0, 180), got %v", c.Minimap.FOV)
	}
	if c.Minimap.Near <= 0 || c.Minimap.Far <= c.Minimap.Near {
		fail("minimap: need 0 < near < far, got near=%v far=%v", c.Minimap.Near, c.Minimap.Far)
	}
	if up := c.Minimap.Up; up[0] == 0 && up[2] == 0 {
		fail("minimap: up %v must not be parallel to the Y axis", up)
	}
	if off := c.Minimap.FocusOffset; off[0] == 0 && off[2] == 0 {
		fail("minimap: focus_offset %v must not be parallel to the Y axis", off)
	}

	if !logger.ValidLevel(c.Logging.Level) {
		fail("logging: unknown level %q", c.Logging.Level)
	}

	return err
}
