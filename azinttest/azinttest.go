// Package azinttest collects reusable integration scenarios for exercising
// azint.Integrate1D and azint.Integrate2D, grouped by category the way the
// pack's rendering test cases are grouped by operation.
package azinttest

import (
	"math"

	"diffraction.dev/go/azint"
)

// Scenario is one reusable end-to-end fixture: a set of pixel footprints,
// intensities and a Config, together with the expectation a test checks
// against the integration result.
type Scenario struct {
	Name    string
	Pos     []azint.Quad
	Weights []float64
	Bins0   int
	Bins1   int // 0 for a 1D scenario
	Cfg     azint.Config
	Expect  string // human-readable description of what the caller should assert
}

// square returns the four corners of an axis-aligned square pixel footprint
// centered at (cx, cy) with the given half-width, in (pos0, pos1) order
// A, B, C, D counter-clockwise.
func square(cx, cy, half float64) azint.Quad {
	return azint.Quad{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
}

// Categories lists every registered scenario group, the way the pack's
// rendering test suite groups its fixtures by operation kind.
func Categories() map[string][]Scenario {
	return map[string][]Scenario{
		"basic": basicCases,
		"mask":  maskCases,
		"wrap":  wrapCases,
	}
}

// basicCases are the §8 single-bin, split and 2D full-coverage scenarios.
var basicCases = []Scenario{
	{
		// bin width is 0.1 (range [0,1) over 10 bins); [0.53,0.57] sits
		// entirely inside bin 5's [0.5,0.6) span.
		Name:    "single_pixel_single_bin",
		Pos:     []azint.Quad{square(0.55, 0, 0.02)},
		Weights: []float64{10},
		Bins0:   10,
		Cfg:     azint.Config{Pos0Range: &azint.Range{Min: 0, Max: 1}},
		Expect:  "all weight and intensity land in bin 5, the single bin covering pos0=0.55",
	},
	{
		Name:    "two_bin_even_split",
		Pos:     []azint.Quad{square(0.5, 0, 0.5)}, // spans [0,1] exactly, straddling bin edge at 0.5
		Weights: []float64{10},
		Bins0:   2,
		Cfg:     azint.Config{Pos0Range: &azint.Range{Min: 0, Max: 1}},
		Expect:  "weight splits 50/50 between bin 0 and bin 1, each bin's outMerge equals the raw intensity",
	},
	{
		Name:    "dummy_fill_empty_bin",
		Pos:     []azint.Quad{square(0.1, 0, 0.05)},
		Weights: []float64{10},
		Bins0:   4,
		Cfg: azint.Config{
			Pos0Range: &azint.Range{Min: 0, Max: 1},
			Dummy:     floatPtr(-1),
		},
		Expect: "bins with no accumulated weight report outMerge == -1, the dummy value",
	},
	{
		Name:    "full_coverage_cell_2d",
		Pos:     []azint.Quad{square(0.5, 0.5, 0.5)}, // exactly covers cell (0,0) of a unit 1x1 grid
		Weights: []float64{7},
		Bins0:   1,
		Bins1:   1,
		Cfg: azint.Config{
			Pos0Range: &azint.Range{Min: 0, Max: 1},
			Pos1Range: &azint.Range{Min: 0, Max: 1},
		},
		Expect: "the single output cell receives weight 1 and outMerge == 7",
	},
}

// maskCases exercise correct.go's skip paths.
var maskCases = []Scenario{
	{
		Name:    "masked_pixel_contributes_nothing",
		Pos:     []azint.Quad{square(0.5, 0, 0.1), square(0.5, 0, 0.1)},
		Weights: []float64{10, 20},
		Bins0:   1,
		Cfg: azint.Config{
			Pos0Range: &azint.Range{Min: 0, Max: 1},
			Mask:      []bool{true, false},
		},
		Expect: "only the second pixel's weight of 20 is accumulated; outMerge == 20",
	},
}

// wrapCases exercise the azimuthal +/-pi wrap handling in bin.go/split2d.go.
var wrapCases = []Scenario{
	{
		Name: "pixel_straddles_pi_cut",
		Pos: []azint.Quad{{
			{X: 0.5, Y: math.Pi - 0.1},
			{X: 0.7, Y: math.Pi - 0.1},
			{X: 0.7, Y: -math.Pi + 0.1},
			{X: 0.5, Y: -math.Pi + 0.1},
		}},
		Weights: []float64{5},
		Bins0:   1,
		Bins1:   8,
		Cfg: azint.Config{
			Pos0Range: &azint.Range{Min: 0, Max: 1},
			Pos1Range: &azint.Range{Min: -math.Pi, Max: math.Pi},
		},
		Expect: "the pixel is unwrapped and deposited into the bins spanning pi, not split incorrectly across bin 0",
	},
}

func floatPtr(v float64) *float64 { return &v }
