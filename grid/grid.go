// Package grid holds the Game of Life cell state that is uploaded to the GPU.
//
// A grid is a square of side×side cells stored row-major as uint32 values,
// 0 for dead and 1 for alive. That is exactly the layout the storage buffers
// and shaders use, so [Grid.Bytes] is a straight little-endian copy.
package grid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
)

const (
	// Side is the default number of cells along each edge.
	Side = 40

	// PixelSize is the default window edge length in pixels.
	PixelSize = 800

	// AliveThreshold is the seeding cutoff: a cell starts alive when a
	// uniform draw in [0, 1) exceeds it, so roughly 30% of cells are alive.
	AliveThreshold = 0.7

	// CellBytes is the size of one cell in the upload layout.
	CellBytes = 4
)

// Cell values.
const (
	Dead  uint32 = 0
	Alive uint32 = 1
)

// ErrLayout is returned by Decode when a byte slice is not a whole number
// of cells.
var ErrLayout = errors.New("grid: byte length is not a multiple of the cell size")

// Grid is an immutable snapshot of the initial cell state.
type Grid struct {
	side  int
	cells []uint32
}

// New returns a side×side grid seeded from src. Each cell is alive with
// probability 1-AliveThreshold. A side below 1 yields an empty grid.
func New(side int, src rand.Source) *Grid {
	if side < 1 {
		return &Grid{}
	}
	r := rand.New(src)
	cells := make([]uint32, side*side)
	for i := range cells {
		if r.Float32() > AliveThreshold {
			cells[i] = Alive
		}
	}
	return &Grid{side: side, cells: cells}
}

// NewSeeded returns a grid seeded deterministically from seed.
func NewSeeded(side int, seed uint64) *Grid {
	return New(side, rand.NewPCG(seed, 0))
}

// NewRandom returns a grid seeded from a non-deterministic source.
func NewRandom(side int) *Grid {
	return NewSeeded(side, rand.Uint64())
}

// FromCells wraps an existing row-major cell slice. The slice length must be
// a perfect square and every value must be Dead or Alive.
func FromCells(cells []uint32) (*Grid, error) {
	side := 0
	for side*side < len(cells) {
		side++
	}
	if side*side != len(cells) {
		return nil, fmt.Errorf("grid: %d cells do not form a square", len(cells))
	}
	for i, c := range cells {
		if c != Dead && c != Alive {
			return nil, fmt.Errorf("grid: cell %d has value %d", i, c)
		}
	}
	return &Grid{side: side, cells: append([]uint32(nil), cells...)}, nil
}

// Side returns the number of cells along each edge.
func (g *Grid) Side() int { return g.side }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Cells returns a copy of the cell values.
func (g *Grid) Cells() []uint32 {
	return append([]uint32(nil), g.cells...)
}

// Population returns the number of live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Bytes returns the cells packed as little-endian uint32 values.
func (g *Grid) Bytes() []byte {
	return Encode(g.cells)
}

// SizeBytes returns the buffer size needed to hold the grid.
func (g *Grid) SizeBytes() uint64 {
	return uint64(len(g.cells)) * CellBytes
}

// Encode packs cells as little-endian uint32 values.
func Encode(cells []uint32) []byte {
	out := make([]byte, len(cells)*CellBytes)
	for i, c := range cells {
		binary.LittleEndian.PutUint32(out[i*CellBytes:], c)
	}
	return out
}

// Decode unpacks little-endian uint32 cells, the inverse of Encode.
func Decode(b []byte) ([]uint32, error) {
	if len(b)%CellBytes != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrLayout, len(b))
	}
	cells := make([]uint32, len(b)/CellBytes)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint32(b[i*CellBytes:])
	}
	return cells, nil
}
