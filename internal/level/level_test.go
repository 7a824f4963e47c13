package level

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	l, err := Parse("t", "Test", []string{
		"12 ",
		".7",
	})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if l.Width != 3 || l.Height != 2 {
		t.Fatalf("Parse() size = %dx%d, expected 3x2", l.Width, l.Height)
	}
	want := [][]int{{1, 2, 0}, {0, 7, 0}}
	for r := range want {
		for c := range want[r] {
			if l.Cells[r][c] != want[r][c] {
				t.Errorf("cell (%d, %d) = %d, expected %d", r, c, l.Cells[r][c], want[r][c])
			}
		}
	}
	if l.BlockCount() != 3 {
		t.Errorf("BlockCount() = %d, expected 3", l.BlockCount())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"letter", []string{"11", "1x"}},
		{"zero health", []string{"10"}},
		{"health above seven", []string{"8"}},
		{"no rows", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Parse("bad", "Bad", tc.rows)
			if !errors.Is(err, ErrMalformedLayout) {
				t.Errorf("Parse() error = %v, expected ErrMalformedLayout", err)
			}
			if l != nil {
				t.Error("Parse() returned a level alongside an error")
			}
		})
	}
}

func TestGridBuild(t *testing.T) {
	l := MustParse("t", "Test", []string{
		"1 2",
		"   ",
		"  3",
	})
	g := Grid{FieldWidth: 1024, FieldHeight: 768, Gap: 5, MinRows: 4}

	blocks := g.Build(l)
	if len(blocks) != 3 {
		t.Fatalf("Build() made %d blocks, expected 3", len(blocks))
	}

	w, h := g.CellSize(3, 3)
	if h != 768.0/4-5 {
		t.Errorf("cell height = %v, expected rows taken from MinRows", h)
	}

	last := blocks[2]
	wantX := 2*(w+5) + 2
	wantY := 2*(h+5) + 2
	if last.Pos.X() != wantX || last.Pos.Y() != wantY {
		t.Errorf("block (2, 2) at %v, expected (%v, %v)", last.Pos, wantX, wantY)
	}
	if last.Health != 3 || last.InitialHealth != 3 || last.Row != 2 || last.Col != 2 {
		t.Errorf("block (2, 2) = %+v", last)
	}
	if last.Rect().Right() > 1024 {
		t.Errorf("block right edge %v outside the field", last.Rect().Right())
	}
}

func TestBuiltinLevelsParse(t *testing.T) {
	c := NewCatalog()
	if c.Len() == 0 {
		t.Fatal("no built-in levels")
	}
	seen := make(map[string]bool)
	for _, l := range c.All() {
		if seen[l.ID] {
			t.Errorf("duplicate level id %q", l.ID)
		}
		seen[l.ID] = true
		if l.BlockCount() == 0 {
			t.Errorf("level %q has no blocks", l.ID)
		}
	}
}

func TestCatalogWraps(t *testing.T) {
	c := NewCatalog()
	if c.At(c.Len()).ID != c.At(0).ID {
		t.Error("At() should wrap past the end")
	}
	if _, err := c.ByID("nope"); err == nil {
		t.Error("ByID() of unknown level should fail")
	}

	l := c.At(0)
	l.Cells[0][0] = 0
	if c.At(0).Cells[0][0] == 0 {
		t.Error("At() should return an independent copy")
	}
}

func TestRowsRoundTrip(t *testing.T) {
	rows := []string{"12 ", " 34"}
	l := MustParse("t", "Test", rows)
	got := l.Rows()
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("Rows()[%d] = %q, expected %q", i, got[i], rows[i])
		}
	}
}
