package azint

import (
	"log/slog"
	"math"

	"seehuhn.de/go/geom/vec"

	"diffraction.dev/go/azint/internal/chunk"
)

// Point is one corner of a pixel quadrilateral: (pos0, pos1) in whatever
// angular units the caller's geometry layer produces (radians,
// typically, for pos1; any consistent unit for pos0).
type Point = vec.Vec2

// Quad holds the four corners of one detector pixel's footprint in
// (pos0, pos1) space, in order A, B, C, D. The corners may be given
// clockwise or counter-clockwise — every area this package computes is
// taken in absolute value, so orientation never affects the result.
type Quad [4]Point

// Range is a half-open [Min, Max) output-axis override.
type Range struct {
	Min, Max float64
}

// Config collects every optional input this package accepts: range
// overrides, dummy-value handling, per-pixel correction arrays, and the
// knobs for this implementation's opt-in parallel reduction and
// diagnostics. A nil or zero field means "absent" — an explicit
// configuration record standing in for a set of Option<T> fields.
type Config struct {
	// Pos0Range overrides the radial output range; nil derives it from
	// the min/max of pos.
	Pos0Range *Range
	// Pos1Range overrides the azimuthal range. In Integrate1D this is a
	// filter: pixels outside it are discarded. In Integrate2D it is the
	// output axis range; nil derives it from the min/max of pos.
	Pos1Range *Range

	// Dummy is the placeholder intensity; pixels whose raw intensity
	// matches it (within DeltaDummy) are skipped, and bins that
	// accumulate no weight are filled with it.
	Dummy *float64
	// DeltaDummy is the tolerance for the dummy match. A nil or zero
	// DeltaDummy with Dummy set requires an exact match.
	DeltaDummy *float64

	// Mask marks pixels to skip entirely when true. Must be len(pos) or nil.
	Mask []bool
	// Dark, Flat, Polarization, Solidangle are independently optional
	// per-pixel correction arrays, each applied in that fixed order:
	// subtract Dark, then divide by Flat, Polarization, Solidangle in
	// turn. Must be len(pos) or nil.
	Dark, Flat, Polarization, Solidangle []float64

	// Workers is the number of goroutines used to process the pixel
	// range. Workers <= 1 runs sequentially in pixel-index order,
	// matching the reference algorithm's result bit-for-bit. Workers >
	// 1 partitions the range into contiguous chunks (see
	// internal/chunk) and merges per-chunk private accumulators in
	// chunk-ascending order; results then differ from the sequential
	// run by at most a few ULPs per bin.
	Workers int

	// Logger, if set, overrides the package-wide logger installed by
	// SetLogger for this call only.
	Logger *slog.Logger
}

// Result1D is the output of Integrate1D.
type Result1D struct {
	OutPos   []float64 // bin centers
	OutMerge []float64 // normalized intensity per bin
	OutData  []float64 // weighted intensity sum per bin
	OutCount []float64 // weight sum per bin
}

// Result2D is the output of Integrate2D. All three data fields are
// indexed [bin0][bin1].
type Result2D struct {
	OutMerge [][]float64
	OutData  [][]float64
	OutCount [][]float64
	Edges0   []float64 // pos0 bin centers
	Edges1   []float64 // pos1 bin centers
}

func dummyValue(cfg Config) float64 {
	if cfg.Dummy != nil {
		return *cfg.Dummy
	}
	return 0
}

// validateCommon checks the shape and parameter constraints common to
// Integrate1D and Integrate2D, returning the first violation found.
func validateCommon(n int, weights []float64, cfg Config) error {
	if err := checkLength("weights", len(weights), n); err != nil {
		return err
	}
	if cfg.Mask != nil {
		if err := checkLength("mask", len(cfg.Mask), n); err != nil {
			return err
		}
	}
	if cfg.Dark != nil {
		if err := checkLength("dark", len(cfg.Dark), n); err != nil {
			return err
		}
	}
	if cfg.Flat != nil {
		if err := checkLength("flat", len(cfg.Flat), n); err != nil {
			return err
		}
	}
	if cfg.Polarization != nil {
		if err := checkLength("polarization", len(cfg.Polarization), n); err != nil {
			return err
		}
	}
	if cfg.Solidangle != nil {
		if err := checkLength("solidangle", len(cfg.Solidangle), n); err != nil {
			return err
		}
	}
	for _, r := range []struct {
		name string
		r    *Range
	}{{"pos0Range", cfg.Pos0Range}, {"pos1Range", cfg.Pos1Range}} {
		if r.r != nil && r.r.Min >= r.r.Max {
			return &InvalidParameterError{Param: r.name, Reason: "Min must be < Max"}
		}
	}
	return nil
}

// derivePos0Axis builds the radial axis from cfg.Pos0Range, or from the
// min/max of pos when absent, applying the float32-ulp expansion a
// derived upper bound always needs (see expandPos0Max).
func derivePos0Axis(pos []Quad, bins int, cfg Config) axis {
	if cfg.Pos0Range != nil {
		return newAxis(cfg.Pos0Range.Min, cfg.Pos0Range.Max, bins)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, q := range pos {
		for _, c := range q {
			lo = math.Min(lo, c.X)
			hi = math.Max(hi, c.X)
		}
	}
	if len(pos) == 0 {
		lo, hi = 0, 1
	}
	return newAxis(lo, expandPos0Max(hi), bins)
}

// derivePos1Axis builds the azimuthal output axis for Integrate2D from
// cfg.Pos1Range, or from the raw min/max of pos when absent.
func derivePos1Axis(pos []Quad, bins int, cfg Config) axis {
	if cfg.Pos1Range != nil {
		return newAxis(cfg.Pos1Range.Min, cfg.Pos1Range.Max, bins)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, q := range pos {
		for _, c := range q {
			lo = math.Min(lo, c.Y)
			hi = math.Max(hi, c.Y)
		}
	}
	if len(pos) == 0 {
		lo, hi = 0, 1
	}
	return newAxis(lo, hi, bins)
}

// Integrate1D bins N detector pixels, each described by a quadrilateral
// footprint in pos and a raw intensity in weights, into a 1D histogram
// of bins radial bins. Each pixel is corrected (correctPixel), then
// split across the bins its footprint overlaps (splitPixel1D) and
// accumulated (accum1D).
func Integrate1D(pos []Quad, weights []float64, bins int, cfg Config) (Result1D, error) {
	if bins <= 0 {
		return Result1D{}, &InvalidParameterError{Param: "bins", Reason: "must be > 0"}
	}
	n := len(pos)
	if err := validateCommon(n, weights, cfg); err != nil {
		return Result1D{}, err
	}

	a0 := derivePos0Axis(pos, bins, cfg)
	plan := newCorrectionPlan(&cfg)
	log := activeLogger(&cfg)

	spans := chunk.Split(n, cfg.Workers)
	acc := chunk.Reduce(spans,
		func() *accum1D { return newAccum1D(bins) },
		func(acc *accum1D, r chunk.Range) {
			for i := r.Start; i < r.End; i++ {
				corrected, ok := correctPixel(i, weights[i], &cfg, plan)
				if !ok {
					continue
				}
				splitPixel1D(pos[i], corrected, a0, cfg.Pos1Range, acc, log)
			}
		},
		func(dst, src *accum1D) { dst.merge(src) },
	)

	return acc.finalize(a0, dummyValue(cfg)), nil
}

// Integrate2D bins N detector pixels into a bins0 x bins1 2D histogram
// over (pos0, pos1). Each pixel is corrected (correctPixel), then split
// across the cells its footprint overlaps (splitPixel2D) and
// accumulated (accum2D).
func Integrate2D(pos []Quad, weights []float64, bins0, bins1 int, cfg Config) (Result2D, error) {
	if bins0 <= 0 {
		return Result2D{}, &InvalidParameterError{Param: "bins0", Reason: "must be > 0"}
	}
	if bins1 <= 0 {
		return Result2D{}, &InvalidParameterError{Param: "bins1", Reason: "must be > 0"}
	}
	n := len(pos)
	if err := validateCommon(n, weights, cfg); err != nil {
		return Result2D{}, err
	}

	a0 := derivePos0Axis(pos, bins0, cfg)
	a1 := derivePos1Axis(pos, bins1, cfg)
	plan := newCorrectionPlan(&cfg)
	log := activeLogger(&cfg)

	spans := chunk.Split(n, cfg.Workers)
	acc := chunk.Reduce(spans,
		func() *accum2D { return newAccum2D(bins0, bins1) },
		func(acc *accum2D, r chunk.Range) {
			var scratch split2DScratch
			for i := r.Start; i < r.End; i++ {
				corrected, ok := correctPixel(i, weights[i], &cfg, plan)
				if !ok {
					continue
				}
				splitPixel2D(pos[i], corrected, a0, a1, acc, &scratch, log)
			}
		},
		func(dst, src *accum2D) { dst.merge(src) },
	)

	return acc.finalize(a0, a1, dummyValue(cfg)), nil
}
