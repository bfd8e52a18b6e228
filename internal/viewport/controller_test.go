package viewport

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/ngmaloney/warehouse-map/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) time.Time {
	f.t = f.t.Add(d)
	return f.t
}

func newTestController() (*Controller, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewController(WithClock(clock.Now)), clock
}

var canvasCenter = projection.Point{X: 500, Y: 300}

func TestZoomBy_ThreeQuickZoomsCompose(t *testing.T) {
	c, clock := newTestController()

	c.ZoomBy(ZoomInFactor)
	c.ZoomBy(ZoomInFactor)
	c.ZoomBy(ZoomInFactor)
	require.True(t, c.Animating())
	assert.InDelta(t, math.Pow(1.3, 3), c.Target().K, 1e-9)

	c.Tick(clock.Advance(ZoomDuration))
	assert.False(t, c.Animating())
	assert.InDelta(t, math.Min(math.Pow(1.3, 3), 8), c.Transform().K, 1e-9)
}

func TestZoomBy_ThreeSettledZooms(t *testing.T) {
	c, clock := newTestController()

	for i := 0; i < 3; i++ {
		c.ZoomBy(ZoomInFactor)
		c.Tick(clock.Advance(ZoomDuration))
	}
	assert.InDelta(t, 2.197, c.Transform().K, 1e-9)
}

func TestZoomBy_KeepsCentreFixed(t *testing.T) {
	c, clock := newTestController()

	c.ZoomBy(ZoomInFactor)
	c.Tick(clock.Advance(ZoomDuration / 2))
	mid := c.Transform().Apply(canvasCenter)
	assert.InDelta(t, 500, mid.X, 1e-6)
	assert.InDelta(t, 300, mid.Y, 1e-6)

	c.Tick(clock.Advance(ZoomDuration))
	end := c.Transform().Apply(canvasCenter)
	assert.InDelta(t, 500, end.X, 1e-9)
	assert.InDelta(t, 300, end.Y, 1e-9)
}

func TestZoomBy_AnimatesMonotonically(t *testing.T) {
	c, clock := newTestController()
	c.ZoomBy(ZoomInFactor)

	prev := 1.0
	for i := 0; i < 10; i++ {
		still := c.Tick(clock.Advance(ZoomDuration / 10))
		k := c.Transform().K
		assert.GreaterOrEqual(t, k, prev)
		assert.LessOrEqual(t, k, 1.3+1e-9)
		prev = k
		if !still {
			break
		}
	}
	assert.InDelta(t, 1.3, prev, 1e-9)
}

func TestZoomBy_ScaleAlwaysClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c, clock := newTestController()

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			c.ZoomBy(ZoomInFactor)
		} else {
			c.ZoomBy(ZoomOutFactor)
		}
		if rng.Intn(3) == 0 {
			c.Tick(clock.Advance(time.Duration(rng.Intn(400)) * time.Millisecond))
		}
		k := c.Transform().K
		require.GreaterOrEqual(t, k, MinScale-1e-9)
		require.LessOrEqual(t, k, MaxScale+1e-9)
		require.GreaterOrEqual(t, c.Target().K, MinScale)
		require.LessOrEqual(t, c.Target().K, MaxScale)
	}
}

func TestZoomBy_Limits(t *testing.T) {
	c, clock := newTestController()

	for i := 0; i < 20; i++ {
		c.ZoomBy(ZoomInFactor)
	}
	c.Tick(clock.Advance(time.Second))
	assert.Equal(t, MaxScale, c.Transform().K)

	for i := 0; i < 20; i++ {
		c.ZoomBy(ZoomOutFactor)
	}
	c.Tick(clock.Advance(time.Second))
	assert.InDelta(t, MinScale, c.Transform().K, 1e-9)
}

func TestFlyTo_CentresPoint(t *testing.T) {
	c, clock := newTestController()

	ok := c.FlyTo(-74.006, 40.7128, DefaultFlyToScale)
	require.True(t, ok)
	require.True(t, c.Animating())

	c.Tick(clock.Advance(FlyDuration / 3))
	assert.True(t, c.Animating())

	c.Tick(clock.Advance(FlyDuration))
	assert.False(t, c.Animating())

	p, _ := projection.Project(projection.MainlandView, -74.006, 40.7128)
	got := c.Transform().Apply(p)
	assert.InDelta(t, 500, got.X, 1e-9)
	assert.InDelta(t, 300, got.Y, 1e-9)
	assert.Equal(t, 4.0, c.Transform().K)
}

func TestFlyTo_OutsideMainland(t *testing.T) {
	c, _ := newTestController()
	var notified int
	c.Subscribe(func(Transform, Attributes) { notified++ })

	ok := c.FlyTo(-66.1057, 18.4655, DefaultFlyToScale)
	assert.False(t, ok)
	assert.False(t, c.Animating())
	assert.Equal(t, Identity, c.Transform())
	assert.Zero(t, notified)
}

func TestFlyTo_InterruptsRunningTransition(t *testing.T) {
	c, clock := newTestController()

	c.ZoomBy(ZoomInFactor)
	c.Tick(clock.Advance(100 * time.Millisecond))
	from := c.Transform()

	require.True(t, c.FlyTo(-87.6298, 41.8781, 4))
	// The new transition starts where the map is, not where the zoom was heading
	c.Tick(clock.Advance(0))
	assert.InDelta(t, from.K, c.Transform().K, 1e-9)

	c.Tick(clock.Advance(FlyDuration))
	assert.Equal(t, 4.0, c.Transform().K)
}

func TestReset(t *testing.T) {
	c, clock := newTestController()

	c.FlyTo(-122.3321, 47.6062, 6)
	c.Tick(clock.Advance(FlyDuration))
	require.Equal(t, 6.0, c.Transform().K)

	c.Reset()
	c.Tick(clock.Advance(ResetDuration))
	assert.Equal(t, Identity, c.Transform())
}

func TestOnUserZoomOrPan(t *testing.T) {
	c, _ := newTestController()
	var got []Attributes
	c.Subscribe(func(_ Transform, a Attributes) { got = append(got, a) })

	c.ZoomBy(ZoomInFactor)
	c.OnUserZoomOrPan(Transform{X: -100, Y: 50, K: 20})
	assert.False(t, c.Animating(), "direct manipulation interrupts animation")
	assert.Equal(t, Transform{X: -100, Y: 50, K: 8}, c.Transform())

	c.OnUserZoomOrPan(Transform{K: 0.25})
	assert.Equal(t, 1.0, c.Transform().K)

	require.Len(t, got, 2)
	assert.Equal(t, 9.0/8, got[0].DotRadius)
	assert.Equal(t, 9.0, got[1].DotRadius)
}

func TestPanBy(t *testing.T) {
	c, _ := newTestController()
	c.PanBy(30, -12)
	assert.Equal(t, Transform{X: 30, Y: -12, K: 1}, c.Transform())
}

func TestWheelAt_KeepsPointerFixed(t *testing.T) {
	c, _ := newTestController()
	pointer := projection.Point{X: 200, Y: 450}
	before := c.Transform().Invert(pointer)

	c.WheelAt(pointer, WheelFactor)
	after := c.Transform().Invert(pointer)

	assert.InDelta(t, WheelFactor, c.Transform().K, 1e-9)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestTransform_DoesNotAffectInset(t *testing.T) {
	c, clock := newTestController()
	before, ok := projection.Project(projection.PuertoRicoView, -66.1057, 18.4655)
	require.True(t, ok)

	c.FlyTo(-96, 39, 8)
	c.Tick(clock.Advance(FlyDuration))
	c.PanBy(200, 200)

	after, _ := projection.Project(projection.PuertoRicoView, -66.1057, 18.4655)
	assert.Equal(t, before, after)
}

func TestTick_Idle(t *testing.T) {
	c, clock := newTestController()
	assert.False(t, c.Tick(clock.Advance(time.Second)))
}

// scaleRange records the smallest and largest K a listener is handed
type scaleRange struct {
	min, max float64
}

func watchScale(c *Controller) *scaleRange {
	r := &scaleRange{min: math.Inf(1), max: math.Inf(-1)}
	c.Subscribe(func(tr Transform, a Attributes) {
		r.min = math.Min(r.min, tr.K)
		r.max = math.Max(r.max, tr.K)
		r.min = math.Min(r.min, a.Scale)
	})
	return r
}

func tickThrough(c *Controller, clock *fakeClock, d time.Duration) {
	for elapsed := time.Duration(0); elapsed <= d; elapsed += 10 * time.Millisecond {
		c.Tick(clock.Advance(10 * time.Millisecond))
	}
}

func TestTransitions_NotifiedScaleStaysClamped(t *testing.T) {
	t.Run("fly then fly", func(t *testing.T) {
		c, clock := newTestController()
		r := watchScale(c)

		require.True(t, c.FlyTo(-122.3321, 47.6062, MaxScale))
		tickThrough(c, clock, FlyDuration)
		require.True(t, c.FlyTo(-80.1918, 25.7617, MaxScale))
		tickThrough(c, clock, FlyDuration)

		assert.GreaterOrEqual(t, r.min, MinScale)
		assert.LessOrEqual(t, r.max, MaxScale)
		assert.Equal(t, MaxScale, c.Transform().K)
	})

	t.Run("fly interrupted by zoom out", func(t *testing.T) {
		c, clock := newTestController()
		r := watchScale(c)

		require.True(t, c.FlyTo(-80.1918, 25.7617, MaxScale))
		tickThrough(c, clock, 300*time.Millisecond)
		for i := 0; i < 10; i++ {
			c.ZoomBy(ZoomOutFactor)
		}
		tickThrough(c, clock, ZoomDuration)

		assert.GreaterOrEqual(t, r.min, MinScale)
		assert.LessOrEqual(t, r.max, MaxScale)
		assert.InDelta(t, MinScale, c.Transform().K, 1e-9)
	})

	t.Run("reset", func(t *testing.T) {
		c, clock := newTestController()
		require.True(t, c.FlyTo(-80.1918, 25.7617, MaxScale))
		tickThrough(c, clock, FlyDuration)

		r := watchScale(c)
		c.Reset()
		tickThrough(c, clock, ResetDuration)

		assert.GreaterOrEqual(t, r.min, MinScale)
		assert.Equal(t, Identity, c.Transform())
	})
}
