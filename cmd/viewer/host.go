package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/app"
	"github.com/Faultbox/orbitview/internal/config"
	"github.com/Faultbox/orbitview/internal/engine/debug"
	"github.com/Faultbox/orbitview/internal/engine/input"
	"github.com/Faultbox/orbitview/internal/engine/renderer"
	"github.com/Faultbox/orbitview/internal/engine/window"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/scene"
)

// host owns the window, the GL renderer and the frame loop.
type host struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	views    *app.Views
	shots    debug.Screenshots
	events   []input.Event
	capture  bool
	log      *zap.Logger
}

func newHost(cfg *config.Config, root *scene.Node) (*host, error) {
	h := &host{
		cfg:    cfg,
		shots:  debug.Screenshots{Dir: "screenshots", Prefix: "orbitview"},
		events: make([]input.Event, 0, 16),
		log:    logger.Named("host"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	h.window, err = window.New(window.Config{
		Title:      "OrbitView",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Fullscreen may not honour the requested size.
	w, ht := h.window.Size()
	cfg.Window.Width, cfg.Window.Height = w, ht

	// Create renderer (AFTER window, since OpenGL context must exist)
	dw, dh := h.window.DrawableSize()
	h.renderer, err = renderer.New(app.Layout(cfg), dw, dh)
	if err != nil {
		h.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	h.views, err = app.Build(cfg, root, h.renderer)
	if err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// Run drives frames until the window is closed or ctx is cancelled.
func (h *host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if h.cfg.Scene.Watch {
		done, err := app.WatchScene(ctx, h.cfg.Scene.Path, h.views.Viewer)
		if err != nil {
			return fmt.Errorf("watching scene: %w", err)
		}
		defer func() {
			cancel()
			<-done
		}()
	}

	var frameBudget time.Duration
	if h.cfg.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(h.cfg.Window.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	h.log.Info("starting frame loop")
	for ctx.Err() == nil {
		start := time.Now()

		if h.handleEvents() {
			break
		}

		h.views.Viewer.Tick(start)
		if h.capture {
			h.capture = false
			h.screenshot()
		}
		h.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			h.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

// handleEvents routes this frame's window events and reports whether to quit.
func (h *host) handleEvents() bool {
	h.events = h.window.PollEvents(h.events)
	for _, e := range h.events {
		if h.views.Router.Handle(e) {
			return true
		}
		switch {
		case e.Type == input.EventWindowResize:
			dw, dh := h.window.DrawableSize()
			h.renderer.Resize(h.views.Router.Layout(), dw, dh)
		case e.Type == input.EventKeyDown && e.Key == input.KeyScreenshot:
			h.capture = true
		}
	}
	return false
}

// screenshot saves the frame just rendered, before it is swapped out.
func (h *host) screenshot() {
	path, err := h.renderer.Capture(h.shots, time.Now())
	if err != nil {
		h.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	h.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and the window.
func (h *host) Close() {
	h.log.Info("closing viewer")
	if h.renderer != nil {
		h.renderer.Close()
		h.renderer = nil
	}
	if h.window != nil {
		h.window.Close()
		h.window = nil
	}
}
