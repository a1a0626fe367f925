package azint

import "seehuhn.de/go/geom/vec"

// polygon is a fixed-capacity vertex ring used by the clipping passes in
// split2d.go. Capacity 8 is sufficient by construction: the input is
// always a quadrilateral, and each axis-aligned Sutherland-Hodgman pass
// adds at most one vertex.
type polygon struct {
	pts [8]vec.Vec2
	n   int
}

func (p *polygon) reset() { p.n = 0 }

// push appends a vertex, silently dropping it if the polygon is already
// at capacity (cannot happen for the quad-vs-unit-cell geometry this
// package clips).
func (p *polygon) push(v vec.Vec2) {
	if p.n < len(p.pts) {
		p.pts[p.n] = v
		p.n++
	}
}

func (p *polygon) fromQuad(q Quad) {
	p.n = 4
	p.pts[0], p.pts[1], p.pts[2], p.pts[3] = q[0], q[1], q[2], q[3]
}

// area returns the absolute area enclosed by the polygon's vertex ring,
// via the shoelace formula. Works for any vertex count >= 3; returns 0
// for degenerate (fewer than 3 vertex) rings.
func (p *polygon) area() float64 {
	if p.n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < p.n; i++ {
		a := p.pts[i]
		b := p.pts[(i+1)%p.n]
		sum += a.X*b.Y - b.X*a.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// quadArea returns the area of the quadrilateral A,B,C,D using the
// diagonal cross-product shortcut: half the magnitude of the cross
// product of the two diagonals.
func quadArea(a, b, c, d vec.Vec2) float64 {
	diag1 := c.Sub(a)
	diag2 := d.Sub(b)
	cross := diag1.X*diag2.Y - diag1.Y*diag2.X
	if cross < 0 {
		cross = -cross
	}
	return cross / 2
}

// lineIntegrate returns the definite integral of the affine function
// slope*u + intercept over [x0, x1]. Used to integrate a quadrilateral
// edge's contribution to the signed area under it, restricted to one
// output-bin column (or row, in the 2D single-row/column fast paths).
func lineIntegrate(x0, x1, slope, intercept float64) float64 {
	if x0 == x1 {
		return 0
	}
	return slope*(x1*x1-x0*x0)/2 + intercept*(x1-x0)
}

// edgeFunc is the {slope, intercept} description of a quadrilateral edge
// as y = slope*x + intercept, used by lineIntegrate. A vertical edge
// (dx == 0) yields slope 0 and intercept from.Y; its value never matters,
// because the column-restricted x-span of a vertical edge has zero width,
// so lineIntegrate over it is always 0.
func edgeFunc(from, to vec.Vec2) (slope, intercept float64) {
	dx := to.X - from.X
	if dx == 0 {
		return 0, from.Y
	}
	slope = (to.Y - from.Y) / dx
	intercept = from.Y - slope*from.X
	return slope, intercept
}

// minMax4 returns the minimum and maximum of four values.
func minMax4(a, b, c, d float64) (lo, hi float64) {
	lo, hi = a, a
	for _, v := range [3]float64{b, c, d} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// sideOfLine returns the sign of the cross product that tells which side
// of the directed line P0->P1 the point Q lies on: +1 left, -1 right, 0
// exactly on the line.
func sideOfLine(p0, p1, q vec.Vec2) int {
	v := (q.Y-p0.Y)*(p1.X-p0.X) - (q.X-p0.X)*(p1.Y-p0.Y)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// clipAgainstEdgeX runs one Sutherland-Hodgman pass of in against the
// vertical line x = xLine, writing the result into out (which is reset
// first). When keepGE is true, vertices with x >= xLine survive;
// otherwise vertices with x <= xLine survive.
func clipAgainstEdgeX(in *polygon, xLine float64, keepGE bool, out *polygon) {
	out.reset()
	if in.n == 0 {
		return
	}
	inside := func(p vec.Vec2) bool {
		if keepGE {
			return p.X >= xLine
		}
		return p.X <= xLine
	}
	prev := in.pts[in.n-1]
	prevIn := inside(prev)
	for i := 0; i < in.n; i++ {
		cur := in.pts[i]
		curIn := inside(cur)
		if curIn != prevIn {
			t := (xLine - prev.X) / (cur.X - prev.X)
			out.push(vec.Vec2{X: xLine, Y: prev.Y + t*(cur.Y-prev.Y)})
		}
		if curIn {
			out.push(cur)
		}
		prev, prevIn = cur, curIn
	}
}

// clipAgainstEdgeY runs one Sutherland-Hodgman pass of in against the
// horizontal line y = yLine, writing the result into out. When keepLE is
// true, vertices with y <= yLine survive; otherwise vertices with
// y >= yLine survive.
func clipAgainstEdgeY(in *polygon, yLine float64, keepLE bool, out *polygon) {
	out.reset()
	if in.n == 0 {
		return
	}
	inside := func(p vec.Vec2) bool {
		if keepLE {
			return p.Y <= yLine
		}
		return p.Y >= yLine
	}
	prev := in.pts[in.n-1]
	prevIn := inside(prev)
	for i := 0; i < in.n; i++ {
		cur := in.pts[i]
		curIn := inside(cur)
		if curIn != prevIn {
			t := (yLine - prev.Y) / (cur.Y - prev.Y)
			out.push(vec.Vec2{X: prev.X + t*(cur.X-prev.X), Y: yLine})
		}
		if curIn {
			out.push(cur)
		}
		prev, prevIn = cur, curIn
	}
}
