// Package renderer draws the viewer's views as OpenGL wireframes.
package renderer

import (
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orbitview/internal/engine/debug"
	"github.com/Faultbox/orbitview/internal/engine/input"
	"github.com/Faultbox/orbitview/internal/logger"
	"github.com/Faultbox/orbitview/internal/viewer"
	"github.com/Faultbox/orbitview/pkg/math"
)

const (
	selectionPadding = 0.05
	focusMarkerSize  = 1.0
	gridExtent       = 10
	gridSpacing      = 1
)

var (
	mainBackground    = [3]float32{0.1, 0.1, 0.15}
	minimapBackground = [3]float32{0.05, 0.05, 0.08}
)

// Renderer is the viewer's render sink. Each view is drawn into its own
// viewport rectangle of the shared framebuffer.
type Renderer struct {
	layout         input.Layout
	drawableW      int
	drawableH      int
	scaleX, scaleY float32

	program uint32
	mvpLoc  int32
	vao     uint32
	vbo     uint32

	grid    []debug.LineVertex
	scratch []debug.LineVertex
	log     *zap.Logger
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(layout input.Layout, drawableW, drawableH int) (*Renderer, error) {
	r := &Renderer{
		grid: debug.GroundGrid(gridExtent, gridSpacing, 0, debug.ColorHelper),
		log:  logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	var err error
	r.program, err = createShaderProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.mvpLoc = gl.GetUniformLocation(r.program, gl.Str("uViewProj\x00"))

	r.createBuffers()
	r.Resize(layout, drawableW, drawableH)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize updates the view layout (window coordinates) and the framebuffer
// size in pixels.
func (r *Renderer) Resize(layout input.Layout, drawableW, drawableH int) {
	r.layout = layout
	r.drawableW, r.drawableH = drawableW, drawableH
	r.scaleX, r.scaleY = 1, 1
	if layout.Width > 0 && layout.Height > 0 {
		r.scaleX = float32(drawableW) / float32(layout.Width)
		r.scaleY = float32(drawableH) / float32(layout.Height)
	}
	r.log.Debug("renderer resized",
		zap.Int("width", drawableW),
		zap.Int("height", drawableH),
	)
}

// Render draws one view. It implements viewer.RenderSink.
func (r *Renderer) Render(f viewer.Frame) {
	rect := r.pixelRect(r.layout.Rect(f.View))
	if rect.Empty() {
		return
	}
	x, y, w, h := rect.GL(r.drawableH)
	gl.Viewport(x, y, w, h)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
	defer gl.Disable(gl.SCISSOR_TEST)

	bg := mainBackground
	if f.View == viewer.Minimap {
		bg = minimapBackground
	}
	gl.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	verts := append(r.scratch[:0], r.grid...)
	verts = append(verts, debug.SceneWireframe(f.Root)...)
	if f.Selected != nil {
		if box, ok := f.Selected.SubtreeAABB(); ok {
			verts = append(verts, debug.BoxWireframe(box, selectionPadding, debug.ColorSelected)...)
		}
	}
	if f.HasFocus {
		verts = append(verts, debug.Crosshair(f.Focus, focusMarkerSize, debug.ColorFocus)...)
	}
	r.scratch = verts

	r.drawLines(verts, f.Camera.ViewProjection())
}

// Capture saves the current framebuffer as a PNG.
func (r *Renderer) Capture(shots debug.Screenshots, now time.Time) (string, error) {
	w, h := r.drawableW, r.drawableH
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return shots.Save(pixels, w, h, now)
}

func (r *Renderer) pixelRect(rect input.Rect) input.Rect {
	return input.Rect{
		X: int(float32(rect.X) * r.scaleX),
		Y: int(float32(rect.Y) * r.scaleY),
		W: int(float32(rect.W) * r.scaleX),
		H: int(float32(rect.H) * r.scaleY),
	}
}

func (r *Renderer) drawLines(verts []debug.LineVertex, viewProj math.Mat4) {
	if len(verts) == 0 {
		return
	}
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, viewProj.Ptr())

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	size := len(verts) * debug.LineVertexFloats * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(verts)))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// createBuffers creates the line VAO/VBO; data is uploaded per draw.
func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(debug.LineVertexFloats * 4)
	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	// Color attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.log.Debug("line buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("vbo", r.vbo),
	)
}

const vertexShaderSource = `
	#version 410 core

	layout (location = 0) in vec3 aPos;
	layout (location = 1) in vec3 aColor;

	uniform mat4 uViewProj;

	out vec3 vertexColor;

	void main() {
		gl_Position = uViewProj * vec4(aPos, 1.0);
		vertexColor = aColor;
	}
` + "\x00"

const fragmentShaderSource = `
	#version 410 core

	in vec3 vertexColor;
	out vec4 FragColor;

	void main() {
		FragColor = vec4(vertexColor, 1.0);
	}
` + "\x00"

func createShaderProgram() (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
