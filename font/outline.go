package font

// Point is a point in a glyph outline, in font units with y pointing up.
type Point struct {
	X, Y float32
}

// Op is the type of path operation.
type Op uint8

const (
	// OpMoveTo starts a new contour.
	OpMoveTo Op = iota

	// OpLineTo draws a line to the target point.
	OpLineTo

	// OpQuadTo draws a quadratic bezier curve.
	OpQuadTo

	// OpCubicTo draws a cubic bezier curve.
	OpCubicTo
)

// String returns a string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpQuadTo:
		return "QuadTo"
	case OpCubicTo:
		return "CubicTo"
	default:
		return "Unknown"
	}
}

// PointCount returns how many entries of Segment.Points the op uses.
func (op Op) PointCount() int {
	switch op {
	case OpQuadTo:
		return 2
	case OpCubicTo:
		return 3
	default:
		return 1
	}
}

// Segment is one path operation of an outline.
type Segment struct {
	Op Op

	// Points holds the control and end points:
	// - MoveTo, LineTo: Points[0] is the target
	// - QuadTo: Points[0] is the control, Points[1] the target
	// - CubicTo: Points[0], Points[1] are controls, Points[2] the target
	Points [3]Point
}

// Outline is the vector geometry of one glyph at one variation location.
// Contours are implicitly closed at each MoveTo and at the end.
//
// Outlines stored in a Handle's cache are shared between glyph runs and
// must be treated as immutable; use Clone before modifying one.
type Outline struct {
	Segments []Segment

	// Bounds is the control box in font units.
	Bounds Rect
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// Clone creates a deep copy of the outline.
func (o *Outline) Clone() *Outline {
	if o == nil {
		return nil
	}
	clone := &Outline{
		Segments: make([]Segment, len(o.Segments)),
		Bounds:   o.Bounds,
	}
	copy(clone.Segments, o.Segments)
	return clone
}

// Transform returns a new outline with every point mapped by m.
func (o *Outline) Transform(m Affine) *Outline {
	if o == nil {
		return nil
	}
	out := &Outline{Segments: make([]Segment, len(o.Segments))}
	for i, seg := range o.Segments {
		out.Segments[i].Op = seg.Op
		for j := 0; j < seg.Op.PointCount(); j++ {
			x, y := m.Apply(seg.Points[j].X, seg.Points[j].Y)
			out.Segments[i].Points[j] = Point{X: x, Y: y}
		}
	}
	out.updateBounds()
	return out
}

// updateBounds recomputes Bounds from the segment points.
func (o *Outline) updateBounds() {
	if len(o.Segments) == 0 {
		o.Bounds = Rect{}
		return
	}
	minX, minY := float32(1e10), float32(1e10)
	maxX, maxY := float32(-1e10), float32(-1e10)
	for _, seg := range o.Segments {
		for j := 0; j < seg.Op.PointCount(); j++ {
			p := seg.Points[j]
			minX, minY = min(minX, p.X), min(minY, p.Y)
			maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
		}
	}
	o.Bounds = Rect{MinX: float64(minX), MinY: float64(minY), MaxX: float64(maxX), MaxY: float64(maxY)}
}

// Affine is a 2D affine transformation:
//
//	[A B Tx]
//	[C D Ty]
//	[0 0 1 ]
type Affine struct {
	A, B, C, D float32
	Tx, Ty     float32
}

// Identity is the identity transformation.
var Identity = Affine{A: 1, D: 1}

// Scale returns a scaling transformation.
func Scale(sx, sy float32) Affine {
	return Affine{A: sx, D: sy}
}

// Translate returns a translation.
func Translate(tx, ty float32) Affine {
	return Affine{A: 1, D: 1, Tx: tx, Ty: ty}
}

// Apply transforms a point.
func (m Affine) Apply(x, y float32) (float32, float32) {
	return m.A*x + m.B*y + m.Tx, m.C*x + m.D*y + m.Ty
}

// Then returns the transformation that applies m first and next second.
func (m Affine) Then(next Affine) Affine {
	return Affine{
		A:  next.A*m.A + next.B*m.C,
		B:  next.A*m.B + next.B*m.D,
		C:  next.C*m.A + next.D*m.C,
		D:  next.C*m.B + next.D*m.D,
		Tx: next.A*m.Tx + next.B*m.Ty + next.Tx,
		Ty: next.C*m.Tx + next.D*m.Ty + next.Ty,
	}
}
