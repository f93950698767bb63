package grid

import (
	"errors"
	"testing"
)

func TestNewLengthAndValues(t *testing.T) {
	tests := []struct {
		name string
		side int
		want int
	}{
		{"single", 1, 1},
		{"small", 3, 9},
		{"default", Side, Side * Side},
		{"odd", 17, 289},
		{"zero", 0, 0},
		{"negative", -4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSeeded(tt.side, 42)
			if g.Len() != tt.want {
				t.Fatalf("Len() = %d, want %d", g.Len(), tt.want)
			}
			for i, c := range g.Cells() {
				if c != Dead && c != Alive {
					t.Fatalf("cell %d = %d, want 0 or 1", i, c)
				}
			}
		})
	}
}

func TestNewDensity(t *testing.T) {
	g := NewSeeded(200, 7)
	ratio := float64(g.Population()) / float64(g.Len())
	if ratio < 0.27 || ratio > 0.33 {
		t.Errorf("alive ratio = %.3f, want about 0.3", ratio)
	}
}

func TestNewSeededDeterministic(t *testing.T) {
	a := NewSeeded(Side, 99).Cells()
	b := NewSeeded(Side, 99).Cells()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs between runs with the same seed", i)
		}
	}
}

func TestCellsReturnsCopy(t *testing.T) {
	g := NewSeeded(4, 1)
	c := g.Cells()
	c[0] = 7
	if g.Cells()[0] == 7 {
		t.Error("Cells() exposed internal storage")
	}
}

func TestBytesLayout(t *testing.T) {
	g, err := FromCells([]uint32{1, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	b := g.Bytes()
	want := []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0}
	if len(b) != len(want) {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), len(want))
	}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, b[i], want[i])
		}
	}
	if g.SizeBytes() != 16 {
		t.Errorf("SizeBytes() = %d, want 16", g.SizeBytes())
	}
}

func TestDecode(t *testing.T) {
	cells := []uint32{0, 1, 1, 0, 1, 1, 0, 0, 1}
	got, err := Decode(Encode(cells))
	if err != nil {
		t.Fatal(err)
	}
	for i := range cells {
		if got[i] != cells[i] {
			t.Fatalf("cell %d = %d, want %d", i, got[i], cells[i])
		}
	}

	if _, err := Decode([]byte{1, 2, 3}); !errors.Is(err, ErrLayout) {
		t.Errorf("Decode(3 bytes) error = %v, want ErrLayout", err)
	}
}

func TestFromCellsRejects(t *testing.T) {
	if _, err := FromCells([]uint32{0, 1, 0}); err == nil {
		t.Error("non-square length accepted")
	}
	if _, err := FromCells([]uint32{0, 2, 0, 1}); err == nil {
		t.Error("cell value 2 accepted")
	}
}
