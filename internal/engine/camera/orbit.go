package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orbitview/pkg/math"
)

// motionEpsilon is the size below which damped motion is considered settled.
const motionEpsilon = 1e-5

// OrbitControls turns drag, wheel and pan input into damped pose updates
// around the pose target. It never writes a camera itself; the frame driver
// decides whether its output is applied.
type OrbitControls struct {
	// Sensitivity
	DragSensitivity float32 // radians per pixel
	ZoomSensitivity float32 // fraction of distance per wheel step
	PanSensitivity  float32 // fraction of distance per pixel

	EnableRotate bool
	EnableZoom   bool
	EnablePan    bool

	// Damping: each frame applies DampingFactor of the pending motion.
	EnableDamping bool
	DampingFactor float32

	// Constraints
	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32 // from +Y, radians
	MaxPolarAngle float32

	deltaTheta float32
	deltaPhi   float32
	zoomScale  float32
	panX, panY float32
}

// NewOrbitControls creates controls with the main viewer's defaults.
func NewOrbitControls() *OrbitControls {
	return &OrbitControls{
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		PanSensitivity:  0.001,
		EnableRotate:    true,
		EnableZoom:      true,
		EnablePan:       false,
		EnableDamping:   true,
		DampingFactor:   0.05,
		MinDistance:     5,
		MaxDistance:     15,
		MinPolarAngle:   0,
		MaxPolarAngle:   math32.Pi / 2,
		zoomScale:       1,
	}
}

// HandleDrag queues an orbit by a mouse drag delta in pixels.
func (c *OrbitControls) HandleDrag(deltaX, deltaY float32) {
	if !c.EnableRotate {
		return
	}
	c.deltaTheta -= deltaX * c.DragSensitivity
	c.deltaPhi -= deltaY * c.DragSensitivity
}

// HandleZoom queues a zoom by a scroll wheel delta. Positive zooms in.
func (c *OrbitControls) HandleZoom(delta float32) {
	if !c.EnableZoom {
		return
	}
	c.zoomScale *= 1 - delta*c.ZoomSensitivity
	if c.zoomScale <= 0 {
		c.zoomScale = motionEpsilon
	}
}

// HandlePan queues a screen-space pan by a drag delta in pixels.
func (c *OrbitControls) HandlePan(deltaX, deltaY float32) {
	if !c.EnablePan {
		return
	}
	c.panX += deltaX
	c.panY += deltaY
}

// Pending reports whether any queued motion remains.
func (c *OrbitControls) Pending() bool {
	return math32.Abs(c.deltaTheta) > motionEpsilon ||
		math32.Abs(c.deltaPhi) > motionEpsilon ||
		math32.Abs(c.zoomScale-1) > motionEpsilon ||
		math32.Abs(c.panX) > motionEpsilon ||
		math32.Abs(c.panY) > motionEpsilon
}

// Reset discards all queued motion.
func (c *OrbitControls) Reset() {
	c.deltaTheta, c.deltaPhi = 0, 0
	c.zoomScale = 1
	c.panX, c.panY = 0, 0
}

// Update applies one frame of queued motion to pose, assuming a +Y up
// vector. changed is false, and pose is returned untouched, when nothing is
// queued.
func (c *OrbitControls) Update(pose Pose) (next Pose, changed bool) {
	if !c.Pending() {
		return pose, false
	}

	step := float32(1)
	if c.EnableDamping {
		step = c.DampingFactor
	}

	offset := pose.Position.Sub(pose.Target)
	radius := offset.Length()
	if radius < motionEpsilon {
		c.Reset()
		return pose, false
	}
	theta := math32.Atan2(offset.X, offset.Z)
	phi := math32.Acos(math.Clamp(offset.Y/radius, -1, 1))

	theta += c.deltaTheta * step
	phi += c.deltaPhi * step
	phi = math.Clamp(phi, c.MinPolarAngle, c.MaxPolarAngle)
	phi = math.Clamp(phi, motionEpsilon, math32.Pi-motionEpsilon)

	radius *= c.zoomScale
	radius = math.Clamp(radius, c.MinDistance, c.MaxDistance)

	target := pose.Target
	if c.panX != 0 || c.panY != 0 {
		forward := offset.Scale(-1).Normalize()
		right := forward.Cross(math.UnitY).Normalize()
		up := right.Cross(forward)
		scale := radius * c.PanSensitivity * step
		target = target.Add(right.Scale(-c.panX * scale)).Add(up.Scale(c.panY * scale))
	}

	sinPhi := math32.Sin(phi)
	offset = math.Vec3{
		X: radius * sinPhi * math32.Sin(theta),
		Y: radius * math32.Cos(phi),
		Z: radius * sinPhi * math32.Cos(theta),
	}
	next = Pose{Position: target.Add(offset), Target: target}

	// Zoom is applied in one frame; rotation and pan decay.
	c.zoomScale = 1
	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.panX *= 1 - c.DampingFactor
		c.panY *= 1 - c.DampingFactor
	} else {
		c.deltaTheta, c.deltaPhi, c.panX, c.panY = 0, 0, 0, 0
	}
	if !c.Pending() {
		c.Reset()
	}
	return next, true
}
