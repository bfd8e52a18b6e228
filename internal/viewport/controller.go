package viewport

import (
	"math"
	"time"

	"github.com/ngmaloney/warehouse-map/internal/projection"
)

const (
	ZoomInFactor      = 1.3
	ZoomOutFactor     = 1 / 1.3
	DefaultFlyToScale = 4.0

	ZoomDuration  = 300 * time.Millisecond
	FlyDuration   = 750 * time.Millisecond
	ResetDuration = 750 * time.Millisecond
)

// WheelFactor is the zoom applied by one mouse wheel notch
var WheelFactor = math.Pow(2, 0.2)

type transition struct {
	start    time.Time
	duration time.Duration
	target   Transform
	at       func(t float64) Transform
}

// Controller is the only writer of the mainland transform. It is driven
// from a single goroutine (the UI loop) and is not safe for concurrent use.
type Controller struct {
	width, height float64
	now           func() time.Time

	current   Transform
	active    *transition
	listeners []func(Transform, Attributes)
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithViewport sets the logical viewport size; the default is the
// mainland canvas
func WithViewport(w, h float64) Option {
	return func(c *Controller) {
		c.width, c.height = w, h
	}
}

// NewController returns a controller at the identity transform
func NewController(opts ...Option) *Controller {
	c := &Controller{
		width:   projection.Width,
		height:  projection.Height,
		now:     time.Now,
		current: Identity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to run after every transform change
func (c *Controller) Subscribe(fn func(Transform, Attributes)) {
	c.listeners = append(c.listeners, fn)
}

// Transform is the current, possibly mid-animation, transform
func (c *Controller) Transform() Transform {
	return c.current
}

// Attributes are the visual sizes for the current scale
func (c *Controller) Attributes() Attributes {
	return AttributesFor(c.current.K)
}

// Animating reports whether a transition is running
func (c *Controller) Animating() bool {
	return c.active != nil
}

// Target is where the running transition ends, or the current transform
func (c *Controller) Target() Transform {
	if c.active != nil {
		return c.active.target
	}
	return c.current
}

// OnUserZoomOrPan stores a transform produced by direct manipulation
// (wheel, drag). It interrupts any running transition.
func (c *Controller) OnUserZoomOrPan(raw Transform) {
	c.active = nil
	c.current = raw.Clamped()
	c.notify()
}

// PanBy is a drag of (dx, dy) screen units
func (c *Controller) PanBy(dx, dy float64) {
	c.OnUserZoomOrPan(c.current.Translate(dx, dy))
}

// WheelAt zooms by factor about a screen point, without animation
func (c *Controller) WheelAt(p projection.Point, factor float64) {
	k := clampScale(c.current.K * factor)
	c.OnUserZoomOrPan(c.current.ScaleAbout(p, k))
}

// ZoomBy animates a zoom about the viewport centre. Calls made while a
// transition is running compose with its target, so three quick 1.3x
// zooms from scale 1 end at 1.3³.
func (c *Controller) ZoomBy(factor float64) {
	base := c.Target()
	k := clampScale(base.K * factor)
	c.transitionTo(base.ScaleAbout(c.center(), k), ZoomDuration)
}

// FlyTo animates to scale k centred on (lon, lat). It returns false and
// does nothing when the point is outside the mainland projection.
func (c *Controller) FlyTo(lon, lat, k float64) bool {
	p, ok := projection.Project(projection.MainlandView, lon, lat)
	if !ok {
		return false
	}
	c.transitionTo(CenteredOn(p, clampScale(k), c.width, c.height), FlyDuration)
	return true
}

// Reset animates back to the identity transform
func (c *Controller) Reset() {
	c.transitionTo(Identity, ResetDuration)
}

// Tick advances the running transition to now. It returns true while an
// animation is still in progress.
func (c *Controller) Tick(now time.Time) bool {
	if c.active == nil {
		return false
	}

	tr := c.active
	elapsed := now.Sub(tr.start)
	if elapsed >= tr.duration || tr.duration <= 0 {
		c.current = tr.target
		c.active = nil
	} else {
		t := float64(elapsed) / float64(tr.duration)
		if t < 0 {
			t = 0
		}
		c.current = tr.at(easeCubicInOut(t))
	}

	c.notify()
	return c.active != nil
}

// transitionTo starts a new transition from wherever the map is now,
// replacing the target and duration of any running one
func (c *Controller) transitionTo(target Transform, d time.Duration) {
	target = target.Clamped()
	c.active = &transition{
		start:    c.now(),
		duration: d,
		target:   target,
		at:       interpolateTransform(c.current, target, c.center(), math.Max(c.width, c.height)),
	}
}

func (c *Controller) center() projection.Point {
	return projection.Point{X: c.width / 2, Y: c.height / 2}
}

func (c *Controller) notify() {
	attrs := AttributesFor(c.current.K)
	for _, fn := range c.listeners {
		fn(c.current, attrs)
	}
}

func clampScale(k float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, k))
}
