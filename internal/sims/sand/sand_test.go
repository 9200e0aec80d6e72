package sand

import (
	"slices"
	"testing"

	"sandfall/internal/core"
)

type fixedBool struct {
	value bool
	calls int
}

func (f *fixedBool) Bool() bool {
	f.calls++
	return f.value
}

func gridWith(t *testing.T, w, h int, cells ...[2]int) *core.BitGrid {
	t.Helper()
	g, err := core.NewBitGrid(w, h)
	if err != nil {
		t.Fatalf("NewBitGrid(%d, %d): %v", w, h, err)
	}
	for _, c := range cells {
		g.Set(c[0], c[1], true)
	}
	return g
}

func cellsOf(g *core.BitGrid) [][2]int {
	var out [][2]int
	for x, y := range g.TrueCells() {
		out = append(out, [2]int{x, y})
	}
	return out
}

func expectCells(t *testing.T, g *core.BitGrid, want ...[2]int) {
	t.Helper()
	got := cellsOf(g)
	slices.SortFunc(want, func(a, b [2]int) int {
		if a[1] != b[1] {
			return a[1] - b[1]
		}
		return a[0] - b[0]
	})
	if !slices.Equal(got, want) {
		t.Fatalf("cells = %v, expected %v", got, want)
	}
}

func TestFallsStraightDown(t *testing.T) {
	cur := gridWith(t, 3, 3, [2]int{1, 1})
	rng := &fixedBool{}
	next := Update(cur, rng)
	expectCells(t, next, [2]int{1, 0})
	if rng.calls != 0 {
		t.Fatalf("straight fall consulted rng %d times", rng.calls)
	}
}

func TestBlockedGrainPicksRandomDiagonal(t *testing.T) {
	for _, tc := range []struct {
		name  string
		value bool
		want  [2]int
	}{
		{"left", true, [2]int{0, 0}},
		{"right", false, [2]int{2, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cur := gridWith(t, 3, 3, [2]int{1, 1}, [2]int{1, 0})
			rng := &fixedBool{value: tc.value}
			next := Update(cur, rng)
			expectCells(t, next, [2]int{1, 0}, tc.want)
			if rng.calls != 1 {
				t.Fatalf("expected one rng draw, got %d", rng.calls)
			}
		})
	}
}

func TestSingleFreeDiagonal(t *testing.T) {
	cur := gridWith(t, 3, 2, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 0})
	next := Update(cur, &fixedBool{value: true})
	expectCells(t, next, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})

	cur = gridWith(t, 3, 2, [2]int{1, 1}, [2]int{2, 0}, [2]int{1, 0})
	next = Update(cur, &fixedBool{value: false})
	expectCells(t, next, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
}

func TestFullySupportedGrainStays(t *testing.T) {
	cur := gridWith(t, 3, 2, [2]int{1, 1}, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
	next := Update(cur, &fixedBool{})
	if !next.Equal(cur) {
		t.Fatalf("supported pile moved: %v", cellsOf(next))
	}
}

func TestFloorRowIsFixedPoint(t *testing.T) {
	cur := gridWith(t, 8, 5)
	for x := 0; x < 8; x += 2 {
		cur.Set(x, 0, true)
	}
	cur.Set(7, 0, true)
	next := Update(cur, &fixedBool{})
	if !next.Equal(cur) {
		t.Fatalf("floor grains moved: %v", cellsOf(next))
	}
}

func TestEdgeGrains(t *testing.T) {
	cases := []struct {
		name  string
		cells [][2]int
		want  [][2]int
	}{
		{
			name:  "left edge falls",
			cells: [][2]int{{0, 2}},
			want:  [][2]int{{0, 1}},
		},
		{
			name:  "left edge slides right",
			cells: [][2]int{{0, 1}, {0, 0}},
			want:  [][2]int{{0, 0}, {1, 0}},
		},
		{
			name:  "left edge blocked",
			cells: [][2]int{{0, 1}, {0, 0}, {1, 0}},
			want:  [][2]int{{0, 0}, {1, 0}, {0, 1}},
		},
		{
			name:  "right edge slides left",
			cells: [][2]int{{3, 1}, {3, 0}},
			want:  [][2]int{{2, 0}, {3, 0}},
		},
		{
			name:  "right edge blocked",
			cells: [][2]int{{3, 1}, {3, 0}, {2, 0}},
			want:  [][2]int{{2, 0}, {3, 0}, {3, 1}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cur := gridWith(t, 4, 3, tc.cells...)
			rng := &fixedBool{}
			next := Update(cur, rng)
			expectCells(t, next, tc.want...)
			if rng.calls != 0 {
				t.Fatalf("edge grain consulted rng %d times", rng.calls)
			}
		})
	}
}

func TestSingleColumnGrid(t *testing.T) {
	cur := gridWith(t, 1, 4, [2]int{0, 3}, [2]int{0, 1}, [2]int{0, 0})
	next := Update(cur, &fixedBool{})
	expectCells(t, next, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2})
}

func TestCollidingDiagonalsDoNotMerge(t *testing.T) {
	// Both upper grains want (1, 0); the second one finds it claimed.
	cur := gridWith(t, 3, 2, [2]int{0, 1}, [2]int{0, 0}, [2]int{2, 1}, [2]int{2, 0})
	next := Update(cur, &fixedBool{})
	expectCells(t, next, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{2, 1})
}

func TestClaimedCellBelowFallsBackToDiagonal(t *testing.T) {
	cur := gridWith(t, 3, 2, [2]int{0, 1}, [2]int{0, 0}, [2]int{1, 1})
	next := Update(cur, &fixedBool{})
	expectCells(t, next, [2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0})
}

func TestUpdateConservesGrainsAndLeavesInputAlone(t *testing.T) {
	sizes := []core.Size{{W: 1, H: 5}, {W: 2, H: 2}, {W: 7, H: 7}, {W: 33, H: 20}, {W: 64, H: 3}}
	densities := []float64{0.1, 0.4, 0.7, 0.95}
	for si, size := range sizes {
		for di, density := range densities {
			seed := int64(si*100 + di + 1)
			cur := gridWith(t, size.W, size.H)
			core.FillRandom(cur, core.NewRNG(seed).Source(), density)
			before := cur.Clone()
			rng := core.NewRNG(seed + 7)

			for i := 0; i < 40; i++ {
				next := Update(cur, rng)
				if next.Count() != cur.Count() {
					t.Fatalf("size %v density %.2f step %d: grains %d -> %d", size, density, i, cur.Count(), next.Count())
				}
				if i == 0 && !cur.Equal(before) {
					t.Fatal("Update mutated its input grid")
				}
				cur = next
			}
		}
	}
}

func TestDeterministicWithoutTies(t *testing.T) {
	cur := gridWith(t, 5, 4,
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0},
		[2]int{0, 1}, [2]int{0, 2},
		[2]int{4, 1},
		[2]int{3, 3},
	)
	a := &fixedBool{value: true}
	b := &fixedBool{value: false}
	na := Update(cur, a)
	nb := Update(cur, b)
	if !na.Equal(nb) {
		t.Fatalf("results differ: %v vs %v", cellsOf(na), cellsOf(nb))
	}
	if a.calls != 0 || b.calls != 0 {
		t.Fatalf("rng consulted without a tie: %d, %d", a.calls, b.calls)
	}
	expectCells(t, na,
		[2]int{0, 0}, [2]int{1, 0}, [2]int{2, 0}, [2]int{3, 0}, [2]int{4, 0},
		[2]int{0, 1}, [2]int{1, 1}, [2]int{4, 1},
		[2]int{3, 2},
	)
}

func TestStepIntoClearsDestination(t *testing.T) {
	cur := gridWith(t, 3, 3, [2]int{1, 2})
	next := gridWith(t, 3, 3, [2]int{0, 0}, [2]int{2, 2})
	StepInto(cur, next, &fixedBool{})
	expectCells(t, next, [2]int{1, 1})
}

func TestStepIntoRejectsMismatchedSizes(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on size mismatch")
		}
	}()
	StepInto(gridWith(t, 3, 3), gridWith(t, 3, 4), &fixedBool{})
}
