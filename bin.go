package azint

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// axis describes one output axis's bin geometry: lo is the raw-unit
// coordinate of the start of bin 0, delta is the width of one bin in raw
// units, and bins is the bin count.
type axis struct {
	lo, delta float64
	bins      int
}

// newAxis derives an axis from a half-open [lo, hi) range and a bin
// count. hi is expected to already include any ulp padding the caller
// wants (see expandPos0Max).
func newAxis(lo, hi float64, bins int) axis {
	return axis{lo: lo, delta: (hi - lo) / float64(bins), bins: bins}
}

// binOf maps a raw coordinate to a fractional bin index.
func (a axis) binOf(x float64) float64 {
	return (x - a.lo) / a.delta
}

// center returns the coordinate at the center of bin k.
func (a axis) center(k int) float64 {
	return a.lo + (float64(k)+0.5)*a.delta
}

// binMatrix builds the affine transform that maps a raw (pos0, pos1)
// point to a fractional (bin0, bin1) point, as a plain scale+translate
// matrix.Matrix — the user-space-to-device-space CTM convention used
// throughout this package (no rotation or shear is needed here, so b
// and c are always zero).
func binMatrix(a0, a1 axis) matrix.Matrix {
	return matrix.Matrix{1 / a0.delta, 0, 0, 1 / a1.delta, -a0.lo / a0.delta, -a1.lo / a1.delta}
}

// applyAffine applies m to p, using the (x,y) = (m[0]*x+m[2]*y+m[4],
// m[1]*x+m[3]*y+m[5]) convention matrix.Matrix uses throughout this
// package.
func applyAffine(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// expandPos0Max nudges the upper end of a derived pos0 range up by one
// float32 ulp, so the maximum input value maps strictly below the last
// bin's upper edge, never exactly onto it. float64's ulp is too fine to
// matter here; the nudge is sized in float32 precision because detector
// geometry corner coordinates upstream of this package are themselves
// float32.
func expandPos0Max(hi float64) float64 {
	f := float32(hi)
	next := math.Float32frombits(math.Float32bits(f) + 1)
	return float64(next)
}

const halfPi = math.Pi / 2

// wrapNeeded reports whether the four pos1 corner values straddle the
// +/-pi cut: exactly two corners lie above +pi/2 and exactly two lie
// below -pi/2. Counting corners this way, rather than enumerating every
// above/below layout as a chain of ORs, naturally excludes the
// degenerate case where all four corners share one half: that case
// never produces a 2-and-2 split, so it is correctly never treated as a
// wrap.
func wrapNeeded(a1, b1, c1, d1 float64) bool {
	above, below := 0, 0
	for _, v := range [4]float64{a1, b1, c1, d1} {
		switch {
		case v > halfPi:
			above++
		case v < -halfPi:
			below++
		}
	}
	return above == 2 && below == 2
}

// unwrapPos1 shifts a negative pos1 corner by +2*pi so that a
// wrap-straddling quadrilateral becomes contiguous in bin space. Only
// call this when wrapNeeded reports true for the pixel's corners.
func unwrapPos1(v float64) float64 {
	if v < 0 {
		return v + 2*math.Pi
	}
	return v
}
