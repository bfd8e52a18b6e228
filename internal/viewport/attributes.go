package viewport

// Base visual sizes in logical pixels at scale 1
const (
	BaseBoundaryStroke  = 1.0
	BaseDotRadius       = 9.0
	BaseDotStroke       = 1.0
	HoverDotScale       = 1.3
	HighlightDotScale   = 1.5
	BaseHighlightStroke = 2.0
	BaseMarkerRadius    = 8.0
	BaseMarkerStroke    = 1.5
	InsetDotRadius      = 6.0
	InsetDotStroke      = 1.0
	InsetBoundaryStroke = 0.5
)

// Attributes are the scale-dependent sizes of everything drawn on the
// mainland map. Each is its base size divided by the current scale so it
// keeps a constant on-screen size.
type Attributes struct {
	Scale           float64
	BoundaryStroke  float64
	DotRadius       float64
	DotStroke       float64
	HoverDotRadius  float64
	HighlightRadius float64
	HighlightStroke float64
	MarkerRadius    float64
	MarkerStroke    float64
}

// AttributesFor computes the sizes for scale k
func AttributesFor(k float64) Attributes {
	if k <= 0 {
		k = 1
	}
	return Attributes{
		Scale:           k,
		BoundaryStroke:  BaseBoundaryStroke / k,
		DotRadius:       BaseDotRadius / k,
		DotStroke:       BaseDotStroke / k,
		HoverDotRadius:  BaseDotRadius * HoverDotScale / k,
		HighlightRadius: BaseDotRadius * HighlightDotScale / k,
		HighlightStroke: BaseHighlightStroke / k,
		MarkerRadius:    BaseMarkerRadius / k,
		MarkerStroke:    BaseMarkerStroke / k,
	}
}
