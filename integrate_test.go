package azint_test

import (
	"math"
	"testing"

	"diffraction.dev/go/azint"
	"diffraction.dev/go/azint/azinttest"
)

func runScenario(t *testing.T, s azinttest.Scenario) (azint.Result1D, azint.Result2D, bool) {
	t.Helper()
	if s.Bins1 == 0 {
		res, err := azint.Integrate1D(s.Pos, s.Weights, s.Bins0, s.Cfg)
		if err != nil {
			t.Fatalf("%s: Integrate1D error: %v", s.Name, err)
		}
		return res, azint.Result2D{}, true
	}
	res, err := azint.Integrate2D(s.Pos, s.Weights, s.Bins0, s.Bins1, s.Cfg)
	if err != nil {
		t.Fatalf("%s: Integrate2D error: %v", s.Name, err)
	}
	return azint.Result1D{}, res, false
}

func TestScenarios(t *testing.T) {
	for category, scenarios := range azinttest.Categories() {
		for _, s := range scenarios {
			t.Run(category+"/"+s.Name, func(t *testing.T) {
				res1, res2, is1D := runScenario(t, s)
				switch s.Name {
				case "single_pixel_single_bin":
					if res1.OutMerge[5] != 10 {
						t.Errorf("bin 5 outMerge = %v, want 10", res1.OutMerge[5])
					}
				case "two_bin_even_split":
					if math.Abs(res1.OutMerge[0]-10) > 1e-9 || math.Abs(res1.OutMerge[1]-10) > 1e-9 {
						t.Errorf("outMerge = %v, want [10, 10]", res1.OutMerge)
					}
				case "dummy_fill_empty_bin":
					if res1.OutMerge[3] != -1 {
						t.Errorf("bin 3 outMerge = %v, want -1 (dummy)", res1.OutMerge[3])
					}
				case "full_coverage_cell_2d":
					if res2.OutMerge[0][0] != 7 {
						t.Errorf("cell (0,0) outMerge = %v, want 7", res2.OutMerge[0][0])
					}
				case "masked_pixel_contributes_nothing":
					if res1.OutMerge[0] != 20 {
						t.Errorf("outMerge = %v, want 20", res1.OutMerge[0])
					}
				case "pixel_straddles_pi_cut":
					var total float64
					for _, row := range res2.OutCount {
						for _, c := range row {
							total += c
						}
					}
					if total <= 0 {
						t.Error("expected nonzero weight deposited for wrap-around pixel")
					}
				}
				_ = is1D
			})
		}
	}
}

func quadAt(x0, x1, y0, y1 float64) azint.Quad {
	return azint.Quad{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// TestWeightConservation1D checks P1: the total deposited weight across
// all bins equals the number of pixels whose footprint lies fully inside
// the output range.
func TestWeightConservation1D(t *testing.T) {
	pos := []azint.Quad{
		quadAt(0.2, 0.8, 0, 1),
		quadAt(2.9, 3.3, 0, 1),
		quadAt(5.5, 5.6, 0, 1),
	}
	weights := []float64{10, 20, 30}
	cfg := azint.Config{Pos0Range: &azint.Range{Min: 0, Max: 10}}

	res, err := azint.Integrate1D(pos, weights, 10, cfg)
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, c := range res.OutCount {
		total += c
	}
	if math.Abs(total-3) > 1e-6 {
		t.Errorf("total weight = %v, want 3 (one unit of weight per fully-contained pixel)", total)
	}
}

// TestSequentialVsParallelAgree checks that Workers > 1 produces the same
// result (within float tolerance) as the sequential Workers <= 1 path,
// per the concurrency model's determinism guarantee.
func TestSequentialVsParallelAgree(t *testing.T) {
	n := 500
	pos := make([]azint.Quad, n)
	weights := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) * 10.0 / float64(n)
		pos[i] = quadAt(x, x+0.3, 0, 1)
		weights[i] = float64(i%7 + 1)
	}
	cfg := azint.Config{Pos0Range: &azint.Range{Min: 0, Max: 10}}

	seq, err := azint.Integrate1D(pos, weights, 20, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Workers = 8
	par, err := azint.Integrate1D(pos, weights, 20, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for k := range seq.OutMerge {
		if math.Abs(seq.OutMerge[k]-par.OutMerge[k]) > 1e-9 {
			t.Errorf("bin %d: sequential=%v parallel=%v differ", k, seq.OutMerge[k], par.OutMerge[k])
		}
	}
}

func TestIntegrate1DShapeMismatch(t *testing.T) {
	pos := []azint.Quad{quadAt(0, 1, 0, 1)}
	_, err := azint.Integrate1D(pos, []float64{1, 2}, 4, azint.Config{})
	if err == nil {
		t.Fatal("expected a shape mismatch error")
	}
	var shapeErr *azint.ShapeMismatchError
	if !asShapeMismatch(err, &shapeErr) {
		t.Errorf("got error %v, want *ShapeMismatchError", err)
	}
}

func asShapeMismatch(err error, target **azint.ShapeMismatchError) bool {
	e, ok := err.(*azint.ShapeMismatchError)
	if ok {
		*target = e
	}
	return ok
}

func TestIntegrate1DInvalidBins(t *testing.T) {
	pos := []azint.Quad{quadAt(0, 1, 0, 1)}
	_, err := azint.Integrate1D(pos, []float64{1}, 0, azint.Config{})
	if err == nil {
		t.Fatal("expected an invalid parameter error for bins=0")
	}
}

func TestIntegrate1DInvalidRange(t *testing.T) {
	pos := []azint.Quad{quadAt(0, 1, 0, 1)}
	cfg := azint.Config{Pos0Range: &azint.Range{Min: 5, Max: 5}}
	_, err := azint.Integrate1D(pos, []float64{1}, 4, cfg)
	if err == nil {
		t.Fatal("expected an invalid parameter error for Min == Max")
	}
}

func TestIntegrate2DShapeMismatchOnMask(t *testing.T) {
	pos := []azint.Quad{quadAt(0, 1, 0, 1)}
	cfg := azint.Config{Mask: []bool{true, false}}
	_, err := azint.Integrate2D(pos, []float64{1}, 4, 4, cfg)
	if err == nil {
		t.Fatal("expected a shape mismatch error for mask length")
	}
}

func TestIntegrate1DEmptyInput(t *testing.T) {
	res, err := azint.Integrate1D(nil, nil, 4, azint.Config{})
	if err != nil {
		t.Fatalf("empty input should not error: %v", err)
	}
	for _, c := range res.OutCount {
		if c != 0 {
			t.Error("expected all bins empty for zero pixels")
		}
	}
}
