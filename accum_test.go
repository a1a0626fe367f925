package azint

import (
	"math"
	"testing"
)

func TestAccum1DFinalize(t *testing.T) {
	a0 := newAxis(0, 4, 4)
	acc := newAccum1D(4)
	acc.add(0, 1, 10)
	acc.add(1, 0.5, 20)
	acc.add(1, 0.5, 30)

	res := acc.finalize(a0, -1)
	if res.OutMerge[0] != 10 {
		t.Errorf("bin 0 outMerge = %v, want 10", res.OutMerge[0])
	}
	if math.Abs(res.OutMerge[1]-25) > 1e-12 {
		t.Errorf("bin 1 outMerge = %v, want 25", res.OutMerge[1])
	}
	if res.OutMerge[2] != -1 || res.OutMerge[3] != -1 {
		t.Errorf("empty bins should report dummy -1: got %v, %v", res.OutMerge[2], res.OutMerge[3])
	}
	if res.OutPos[0] != 0.5 {
		t.Errorf("bin 0 center = %v, want 0.5", res.OutPos[0])
	}
}

func TestAccum1DMerge(t *testing.T) {
	a := newAccum1D(2)
	b := newAccum1D(2)
	a.add(0, 1, 5)
	b.add(0, 1, 7)
	b.add(1, 2, 3)

	a.merge(b)
	if a.count[0] != 2 || a.data[0] != 12 {
		t.Errorf("merged bin 0: count=%v data=%v, want count=2 data=12", a.count[0], a.data[0])
	}
	if a.count[1] != 2 || a.data[1] != 6 {
		t.Errorf("merged bin 1: count=%v data=%v, want count=2 data=6", a.count[1], a.data[1])
	}
}

func TestAccum2DAddOutOfRangeIsNoOp(t *testing.T) {
	acc := newAccum2D(2, 2)
	acc.add(5, 5, 1, 100) // out of range, must not panic or corrupt state
	for _, v := range acc.data {
		if v != 0 {
			t.Fatalf("out-of-range add mutated data: %v", acc.data)
		}
	}
}

func TestAccum2DFinalize(t *testing.T) {
	a0 := newAxis(0, 2, 2)
	a1 := newAxis(0, 2, 2)
	acc := newAccum2D(2, 2)
	acc.add(0, 0, 1, 9)
	acc.add(1, 1, 2, 4)

	res := acc.finalize(a0, a1, -1)
	if res.OutMerge[0][0] != 9 {
		t.Errorf("cell (0,0) outMerge = %v, want 9", res.OutMerge[0][0])
	}
	if res.OutMerge[1][1] != 4 {
		t.Errorf("cell (1,1) outMerge = %v, want 4", res.OutMerge[1][1])
	}
	if res.OutMerge[0][1] != -1 || res.OutMerge[1][0] != -1 {
		t.Errorf("untouched cells should report dummy -1")
	}
	if len(res.Edges0) != 2 || len(res.Edges1) != 2 {
		t.Errorf("expected 2 edges per axis, got %d and %d", len(res.Edges0), len(res.Edges1))
	}
}

func TestAccum2DMerge(t *testing.T) {
	a := newAccum2D(1, 2)
	b := newAccum2D(1, 2)
	a.add(0, 0, 1, 2)
	b.add(0, 0, 1, 2)
	b.add(0, 1, 3, 4)

	a.merge(b)
	if a.count[0] != 2 || a.data[0] != 4 {
		t.Errorf("merged cell (0,0): count=%v data=%v, want count=2 data=4", a.count[0], a.data[0])
	}
	if a.count[1] != 3 || a.data[1] != 12 {
		t.Errorf("merged cell (0,1): count=%v data=%v, want count=3 data=12", a.count[1], a.data[1])
	}
}
