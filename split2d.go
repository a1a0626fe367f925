package azint

import (
	"log/slog"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// split2DScratch holds the is_inside lattice used by the 2D general
// path's point-in-quadrilateral pass. It is sized to the current
// pixel's bounding box and regrown on demand (never shrunk), so a
// single scratch can be reused across every pixel a worker processes,
// rather than sizing one heuristic buffer up front for the whole run.
type split2DScratch struct {
	inside     []bool
	w, h       int // lattice dimensions currently valid (cells+1 each)
	polyA, polyB polygon
}

func (s *split2DScratch) grid(w, h int) [][]bool {
	need := w * h
	if cap(s.inside) < need {
		s.inside = make([]bool, need)
	}
	s.inside = s.inside[:need]
	for i := range s.inside {
		s.inside[i] = false
	}
	s.w, s.h = w, h
	rows := make([][]bool, h)
	for j := 0; j < h; j++ {
		rows[j] = s.inside[j*w : j*w+w]
	}
	return rows
}

// splitPixel2D distributes one pixel's corrected intensity across the
// 2D output grid defined by a0 (pos0/radial) and a1 (pos1/azimuthal):
// single-cell, single-column and single-row fast paths, falling back to
// full polygon-rectangle clipping (Sutherland-Hodgman) for pixels
// spanning multiple bins on both axes.
func splitPixel2D(q Quad, intensity float64, a0, a1 axis, acc *accum2D, scratch *split2DScratch, log *slog.Logger) {
	rawPos1 := [4]float64{q[0].Y, q[1].Y, q[2].Y, q[3].Y}
	wrap := wrapNeeded(rawPos1[0], rawPos1[1], rawPos1[2], rawPos1[3])

	m := binMatrix(a0, a1)
	var bin0, bin1 [4]float64
	for i := 0; i < 4; i++ {
		p1 := rawPos1[i]
		if wrap {
			p1 = unwrapPos1(p1)
		}
		b := applyAffine(m, vec.Vec2{X: q[i].X, Y: p1})
		bin0[i], bin1[i] = b.X, b.Y
	}

	min0, max0 := minMax4(bin0[0], bin0[1], bin0[2], bin0[3])
	min1, max1 := minMax4(bin1[0], bin1[1], bin1[2], bin1[3])
	// bbox is the pixel's bounding box in fractional-bin space, an
	// axis-aligned rect.Rect with lower-left/upper-right corners.
	bbox := rect.Rect{LLx: min0, LLy: min1, URx: max0, URy: max1}

	if bbox.URx < 0 || bbox.LLx >= float64(a0.bins) || bbox.URy < 0 {
		return
	}
	if bbox.LLy >= float64(a1.bins) {
		log.Warn("azint: pixel bounding box entirely above pos1 range, skipping", "bin1Min", bbox.LLy)
		return
	}

	i0 := int(math.Floor(bbox.LLx))
	i1 := int(math.Floor(bbox.URx))
	j0 := int(math.Floor(bbox.LLy))
	j1 := int(math.Floor(bbox.URy))

	deposit := func(i, j int, w float64) { acc.add(i, j, w, intensity) }

	// Fast path: single cell.
	if i0 == i1 && j0 == j1 {
		deposit(i0, j0, 1)
		return
	}

	area := quadArea(
		vec.Vec2{X: bin0[0], Y: bin1[0]}, vec.Vec2{X: bin0[1], Y: bin1[1]},
		vec.Vec2{X: bin0[2], Y: bin1[2]}, vec.Vec2{X: bin0[3], Y: bin1[3]},
	)
	if area == 0 {
		log.Debug("azint: skipping degenerate pixel (zero area)", "kind", "2d")
		return
	}

	// Fast path: single column (constant bin0, span multiple bin1).
	if i0 == i1 {
		splitAlongAxis(bin1, bin0, j0, j1, area, func(j int, w float64) { deposit(i0, j, w) })
		return
	}

	// Fast path: single row (constant bin1, span multiple bin0).
	if j0 == j1 {
		splitAlongAxis(bin0, bin1, i0, i1, area, func(i int, w float64) { deposit(i, j0, w) })
		return
	}

	// General path: full polygon-rectangle clipping.
	splitGeneral2D(bin0, bin1, i0, i1, j0, j1, area, deposit, scratch)
}

// splitGeneral2D runs a lattice of point-in-quadrilateral tests to find
// cells fully inside the pixel, and Sutherland-Hodgman clipping against
// the remaining boundary cells.
func splitGeneral2D(bin0, bin1 [4]float64, i0, i1, j0, j1 int, area float64, deposit func(i, j int, w float64), scratch *split2DScratch) {
	width := i1 - i0 + 1  // number of cells along axis 0
	height := j1 - j0 + 1 // number of cells along axis 1

	var local [4]vec.Vec2
	for k := 0; k < 4; k++ {
		local[k] = vec.Vec2{X: bin0[k] - float64(i0), Y: bin1[k] - float64(j0)}
	}

	inside := scratch.grid(width+1, height+1)
	for i := 1; i < width; i++ {
		for j := 1; j < height; j++ {
			inside[j][i] = pointInQuad(local, float64(i), float64(j))
		}
	}

	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			s := 0
			if inside[j][i] {
				s++
			}
			if inside[j][i+1] {
				s++
			}
			if inside[j+1][i] {
				s++
			}
			if inside[j+1][i+1] {
				s++
			}

			// A cell with s == 0 can still overlap the pixel (a pixel
			// corner or edge may enter it without covering any of its
			// lattice corners), so every cell not fully inside is clipped.
			switch s {
			case 4:
				deposit(i0+i, j0+j, 1/area)
			default:
				w := clippedCellArea(local, i, j, &scratch.polyA, &scratch.polyB) / area
				if w > 0 {
					deposit(i0+i, j0+j, w)
				}
			}
		}
	}
}

// pointInQuad is a floor(|sum of side_of_line| / 4) point-in-convex-
// quadrilateral test against the edges A-B, B-C, C-D, D-A of local, at
// lattice point (x, y).
func pointInQuad(local [4]vec.Vec2, x, y float64) bool {
	q := vec.Vec2{X: x, Y: y}
	sum := sideOfLine(local[0], local[1], q) +
		sideOfLine(local[1], local[2], q) +
		sideOfLine(local[2], local[3], q) +
		sideOfLine(local[3], local[0], q)
	if sum < 0 {
		sum = -sum
	}
	return sum/4 >= 1
}

// clippedCellArea clips the quadrilateral local against the unit cell
// [i, i+1] x [j, j+1] with four Sutherland-Hodgman passes, in order:
// right of x=i, below y=j+1, left of x=i+1, above y=j. a and b are
// ping-pong scratch buffers.
func clippedCellArea(local [4]vec.Vec2, i, j int, a, b *polygon) float64 {
	a.fromQuad(Quad{local[0], local[1], local[2], local[3]})
	clipAgainstEdgeX(a, float64(i), true, b)
	clipAgainstEdgeY(b, float64(j+1), true, a)
	clipAgainstEdgeX(a, float64(i+1), false, b)
	clipAgainstEdgeY(b, float64(j), false, a)
	return a.area()
}
