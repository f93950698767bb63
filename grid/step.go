package grid

// Step writes the generation after src into dst using Conway's B3/S23 rule
// on a torus. It is the CPU reference for the compute shader and panics if
// either slice is shorter than side*side.
func Step(src, dst []uint32, side int) {
	if side < 1 {
		return
	}
	n := side * side
	_ = src[n-1]
	_ = dst[n-1]
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			neighbors := uint32(0)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx := (x + dx + side) % side
					ny := (y + dy + side) % side
					neighbors += src[ny*side+nx]
				}
			}
			idx := y*side + x
			dst[idx] = Dead
			if neighbors == 3 || (src[idx] == Alive && neighbors == 2) {
				dst[idx] = Alive
			}
		}
	}
}

// Generations advances cells by n generations and returns the result.
// The input is not modified.
func Generations(cells []uint32, side, n int) []uint32 {
	cur := append([]uint32(nil), cells...)
	if side < 1 {
		return cur
	}
	nxt := make([]uint32, len(cur))
	for range n {
		Step(cur, nxt, side)
		cur, nxt = nxt, cur
	}
	return cur
}
