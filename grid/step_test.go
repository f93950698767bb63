package grid

import "testing"

func cellsWith(side int, alive ...[2]int) []uint32 {
	cells := make([]uint32, side*side)
	for _, p := range alive {
		cells[p[1]*side+p[0]] = Alive
	}
	return cells
}

func assertAlive(t *testing.T, cells []uint32, side int, want ...[2]int) {
	t.Helper()
	expect := make(map[[2]int]bool, len(want))
	for _, p := range want {
		expect[p] = true
	}
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			alive := cells[y*side+x] == Alive
			if alive != expect[[2]int{x, y}] {
				t.Fatalf("cell (%d,%d) alive=%v, want %v", x, y, alive, expect[[2]int{x, y}])
			}
		}
	}
}

func TestStepBlinker(t *testing.T) {
	const side = 5
	src := cellsWith(side, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	dst := make([]uint32, len(src))

	Step(src, dst, side)
	assertAlive(t, dst, side, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	Step(dst, src, side)
	assertAlive(t, src, side, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
}

func TestStepBlockIsStill(t *testing.T) {
	const side = 6
	block := [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}}
	got := Generations(cellsWith(side, block...), side, 5)
	assertAlive(t, got, side, block...)
}

func TestStepWrapsAroundEdges(t *testing.T) {
	const side = 5
	// A vertical blinker on the left edge becomes horizontal across the seam.
	src := cellsWith(side, [2]int{0, 1}, [2]int{0, 2}, [2]int{0, 3})
	dst := make([]uint32, len(src))
	Step(src, dst, side)
	assertAlive(t, dst, side, [2]int{4, 2}, [2]int{0, 2}, [2]int{1, 2})
}

func TestStepLonelyCellDies(t *testing.T) {
	const side = 4
	src := cellsWith(side, [2]int{1, 1})
	dst := make([]uint32, len(src))
	Step(src, dst, side)
	assertAlive(t, dst, side)
}

func TestGenerationsDoesNotMutateInput(t *testing.T) {
	const side = 5
	src := cellsWith(side, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	before := append([]uint32(nil), src...)
	_ = Generations(src, side, 3)
	for i := range src {
		if src[i] != before[i] {
			t.Fatalf("input cell %d changed", i)
		}
	}
}

func TestGenerationsGliderTranslates(t *testing.T) {
	const side = 8
	glider := [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	got := Generations(cellsWith(side, glider...), side, 4)
	moved := make([][2]int, len(glider))
	for i, p := range glider {
		moved[i] = [2]int{p[0] + 1, p[1] + 1}
	}
	assertAlive(t, got, side, moved...)
}
