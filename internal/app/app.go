// Package app assembles the viewer and its collaborators from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/engine/camera"
	"github.com/Faultbox/orbitview/internal/engine/input"
	"github.com/Faultbox/orbitview/internal/engine/picking"
	"github.com/Faultbox/orbitview/internal/engine/tween"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
	"github.com/Faultbox/orbitview/internal/viewer"
	"github.com/Faultbox/orbitview/pkg/math"
)

// Views is the assembled viewer with the pieces the host loop drives.
type Views struct {
	Viewer   *viewer.Viewer
	Controls *camera.OrbitControls
	Router   *input.Router
}

// Build creates cameras, controls, the viewer and the input router for a
// loaded scene. sink may be nil.
func Build(cfg *config.Config, root *scene.Node, sink viewer.RenderSink) (*Views, error) {
	opts, err := ViewerOptions(cfg)
	if err != nil {
		return nil, err
	}

	layout := Layout(cfg)
	mm := layout.Rect(viewer.Minimap)

	mainCam := camera.NewPerspective(cfg.Camera.FOV, layout.Width, layout.Height, cfg.Camera.Near, cfg.Camera.Far)
	mainCam.Pose = camera.Pose{
		Position: vec3(cfg.Camera.Position),
		Target:   vec3(cfg.Camera.Target),
	}
	if err := mainCam.UpdateMatrices(); err != nil {
		return nil, fmt.Errorf("main camera: %w", err)
	}

	minimapCam := camera.NewTopDown(cfg.Minimap.Height, cfg.Minimap.FOV, mm.W, mm.H,
		cfg.Minimap.Near, cfg.Minimap.Far, vec3(cfg.Minimap.Up))
	if err := minimapCam.UpdateMatrices(); err != nil {
		return nil, fmt.Errorf("minimap camera: %w", err)
	}

	controls := NewControls(cfg.Controls)
	v := viewer.New(root, mainCam, minimapCam, controls, sink, opts)

	return &Views{
		Viewer:   v,
		Controls: controls,
		Router:   input.NewRouter(v, controls, layout),
	}, nil
}

// ViewerOptions converts configuration into viewer options.
func ViewerOptions(cfg *config.Config) (viewer.Options, error) {
	policy, err := viewer.ParseInputPolicy(cfg.Controls.InputPolicy)
	if err != nil {
		return viewer.Options{}, err
	}
	easing, ok := tween.Lookup(cfg.Transition.Easing)
	if !ok {
		return viewer.Options{}, fmt.Errorf("unknown easing %q", cfg.Transition.Easing)
	}
	return viewer.Options{
		InputPolicy: policy,
		PickPolicy:  picking.PolicyNearest,
		Duration:    cfg.Transition.Duration(),
		Easing:      easing,
		FitFactor:   cfg.Transition.FitFactor,
		MinDistance: cfg.Controls.MinDistance,
		MaxDistance: cfg.Controls.MaxDistance,
		FocusOffset: vec3(cfg.Minimap.FocusOffset),
		GroundY:     cfg.Minimap.GroundY,
	}, nil
}

// NewControls creates orbit controls from configuration.
func NewControls(c config.ControlsConfig) *camera.OrbitControls {
	oc := camera.NewOrbitControls()
	oc.DampingFactor = c.DampingFactor
	oc.DragSensitivity = c.RotateSpeed
	oc.ZoomSensitivity = c.ZoomSpeed
	oc.PanSensitivity = c.PanSpeed
	oc.MinDistance = c.MinDistance
	oc.MaxDistance = c.MaxDistance
	oc.MaxPolarAngle = c.MaxPolarAngle * math32.Pi / 180
	oc.EnablePan = c.EnablePan
	return oc
}

// Layout returns the initial view layout for the configured window.
func Layout(cfg *config.Config) input.Layout {
	return input.Layout{
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		MinimapSize: cfg.Minimap.Size,
		Margin:      cfg.Minimap.Margin,
	}
}

// WatchScene reloads the scene manifest at path in the background and
// hands every good reload to v. It stops when ctx is cancelled; the returned
// channel yields the watcher's exit error and is then closed.
func WatchScene(ctx context.Context, path string, v *viewer.Viewer) (<-chan error, error) {
	w, err := scene.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer w.Close()
		err := w.Run(ctx, v.ReplaceScene)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		if err != nil {
			logger.Named("app").Warn("scene watcher stopped", zap.Error(err))
		}
		done <- err
	}()
	return done, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
