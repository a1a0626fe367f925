package azint

import (
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"
)

// splitAlongAxis distributes a quadrilateral's unit weight across
// integer bins [kLo, kHi] of one axis, via Green's-theorem integration
// of its four edges restricted to each bin's column. xs holds the four
// corners' coordinates along the integration axis (already in
// fractional-bin units, in A,B,C,D order); ys holds the corresponding
// coordinates along the other axis, in whatever consistent unit area
// was computed in — their absolute scale is irrelevant, only their
// ratio to area matters. Precondition: kHi > kLo and area > 0. deposit
// is called once for every bin in [kLo, kHi], with weight 0 for a bin
// the footprint only touches at its edge; it is responsible for
// discarding bins outside the real bin count.
func splitAlongAxis(xs, ys [4]float64, kLo, kHi int, area float64, deposit func(k int, w float64)) {
	shift := float64(kLo)
	var local [4]vec.Vec2
	for i := 0; i < 4; i++ {
		local[i] = vec.Vec2{X: xs[i] - shift, Y: ys[i]}
	}

	abSlope, abInt := edgeFunc(local[0], local[1])
	bcSlope, bcInt := edgeFunc(local[1], local[2])
	cdSlope, cdInt := edgeFunc(local[2], local[3])
	daSlope, daInt := edgeFunc(local[3], local[0])

	for k := kLo; k <= kHi; k++ {
		u := float64(k - kLo)
		aLim := clamp(local[0].X, u, u+1)
		bLim := clamp(local[1].X, u, u+1)
		cLim := clamp(local[2].X, u, u+1)
		dLim := clamp(local[3].X, u, u+1)

		partial := lineIntegrate(aLim, bLim, abSlope, abInt) +
			lineIntegrate(bLim, cLim, bcSlope, bcInt) +
			lineIntegrate(cLim, dLim, cdSlope, cdInt) +
			lineIntegrate(dLim, aLim, daSlope, daInt)

		w := partial / area
		if w < 0 {
			w = -w
		}
		deposit(k, w)
	}
}

// splitPixel1D distributes one pixel's corrected intensity across the
// radial bins of a0: a fast path when the whole footprint lands in a
// single bin, otherwise the column Green's-theorem integration above.
func splitPixel1D(q Quad, intensity float64, a0 axis, pos1Range *Range, acc *accum1D, log *slog.Logger) {
	var bin0 [4]float64
	for i := 0; i < 4; i++ {
		bin0[i] = a0.binOf(q[i].X)
	}

	min0, max0 := minMax4(bin0[0], bin0[1], bin0[2], bin0[3])
	if max0 < 0 || min0 >= float64(a0.bins) {
		return
	}
	if pos1Range != nil {
		min1, max1 := minMax4(q[0].Y, q[1].Y, q[2].Y, q[3].Y)
		if max1 < pos1Range.Min || min1 > pos1Range.Max {
			return
		}
	}

	kLo := int(math.Floor(min0))
	kHi := int(math.Floor(max0))

	deposit := func(k int, w float64) {
		if k >= 0 && k < a0.bins {
			acc.add(k, w, intensity)
		}
	}

	if kLo == kHi {
		deposit(kLo, 1)
		return
	}

	pos1 := [4]float64{q[0].Y, q[1].Y, q[2].Y, q[3].Y}
	area := quadArea(vec.Vec2{X: bin0[0], Y: pos1[0]}, vec.Vec2{X: bin0[1], Y: pos1[1]},
		vec.Vec2{X: bin0[2], Y: pos1[2]}, vec.Vec2{X: bin0[3], Y: pos1[3]})
	if area == 0 {
		log.Debug("azint: skipping degenerate pixel (zero area)", "kind", "1d")
		return
	}

	splitAlongAxis(bin0, pos1, kLo, kHi, area, deposit)
}
