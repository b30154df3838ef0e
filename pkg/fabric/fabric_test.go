package fabric

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{"valid square", 64, 64, false},
		{"valid minimal", 1, 1, false},
		{"zero width", 0, 10, true},
		{"zero height", 10, 0, true},
		{"negative", -4, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Errorf("error = %v, want ErrInvalidDimensions", err)
				}
				return
			}
			if g.Width() != tt.width || g.Height() != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d", g.Width(), g.Height(), tt.width, tt.height)
			}
		})
	}
}

func TestAt(t *testing.T) {
	g, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Set(Coord{X: 1, Y: 2}, BRAM)

	t.Run("written cell", func(t *testing.T) {
		got, err := g.At(Coord{X: 1, Y: 2})
		if err != nil {
			t.Fatalf("At: %v", err)
		}
		if got != BRAM {
			t.Errorf("At(1,2) = %v, want BRAM", got)
		}
	})

	t.Run("unwritten cell defaults to Empty", func(t *testing.T) {
		got, err := g.At(Coord{X: 3, Y: 3})
		if err != nil {
			t.Fatalf("At: %v", err)
		}
		if got != Empty {
			t.Errorf("At(3,3) = %v, want Empty", got)
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		for _, c := range []Coord{{X: 4, Y: 0}, {X: 0, Y: 4}, {X: -1, Y: 0}, {X: 0, Y: -1}} {
			if _, err := g.At(c); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("At(%v) error = %v, want ErrOutOfBounds", c, err)
			}
		}
	})
}

func TestValidate(t *testing.T) {
	g, err := New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.FillBorder(IO)

	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	g.Set(Coord{X: 9, Y: 9}, CLB)
	if err := g.Validate(); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Validate() with stray site = %v, want ErrOutOfBounds", err)
	}
}

func TestFillCorners(t *testing.T) {
	g, _ := New(5, 4)
	g.FillCorners(DSP)

	corners := []Coord{{X: 0, Y: 0}, {X: 0, Y: 3}, {X: 4, Y: 0}, {X: 4, Y: 3}}
	for _, c := range corners {
		got, _ := g.At(c)
		if got != DSP {
			t.Errorf("At(%v) = %v, want DSP", c, got)
		}
	}
	if got, _ := g.At(Coord{X: 2, Y: 2}); got != Empty {
		t.Errorf("interior cell = %v, want Empty", got)
	}
}

func TestFillBorder(t *testing.T) {
	g, _ := New(4, 4)
	g.FillBorder(IO)

	counts := g.CountByType()
	if counts[IO] != 12 {
		t.Errorf("IO count = %d, want 12", counts[IO])
	}
	if counts[Empty] != 4 {
		t.Errorf("Empty count = %d, want 4", counts[Empty])
	}
	for _, c := range []Coord{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}} {
		if got, _ := g.At(c); got != Empty {
			t.Errorf("interior %v = %v, want Empty", c, got)
		}
	}
}

func TestFillRepeat(t *testing.T) {
	t.Run("stride pattern", func(t *testing.T) {
		g, _ := New(10, 10)
		g.FillRepeat(0, 0, 10, 10, 3, 5, BRAM)

		want := map[Coord]bool{}
		for _, x := range []int{0, 3, 6, 9} {
			for _, y := range []int{0, 5} {
				want[Coord{X: x, Y: y}] = true
			}
		}
		counts := g.CountByType()
		if counts[BRAM] != len(want) {
			t.Errorf("BRAM count = %d, want %d", counts[BRAM], len(want))
		}
		for c := range want {
			if got, _ := g.At(c); got != BRAM {
				t.Errorf("At(%v) = %v, want BRAM", c, got)
			}
		}
	})

	t.Run("region overhanging the grid is clipped", func(t *testing.T) {
		g, _ := New(4, 4)
		g.FillRepeat(2, 2, 10, 10, 1, 1, CLB)

		counts := g.CountByType()
		if counts[CLB] != 4 {
			t.Errorf("CLB count = %d, want 4 (clipped to 2x2)", counts[CLB])
		}
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil (no out-of-bounds writes)", err)
		}
	})

	t.Run("non-positive stride is a no-op", func(t *testing.T) {
		g, _ := New(4, 4)
		g.FillRepeat(0, 0, 4, 4, 0, 1, CLB)
		if counts := g.CountByType(); counts[CLB] != 0 {
			t.Errorf("CLB count = %d, want 0", counts[CLB])
		}
	})
}

func TestSitesOf(t *testing.T) {
	g, _ := New(3, 3)
	g.Set(Coord{X: 2, Y: 0}, CLB)
	g.Set(Coord{X: 0, Y: 1}, CLB)
	g.Set(Coord{X: 1, Y: 2}, IO)

	t.Run("column-major order", func(t *testing.T) {
		got := g.SitesOf(CLB)
		want := []Coord{{X: 0, Y: 1}, {X: 2, Y: 0}}
		if len(got) != len(want) {
			t.Fatalf("SitesOf(CLB) = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("SitesOf(CLB)[%d] = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("index refreshes after mutation", func(t *testing.T) {
		g.Set(Coord{X: 1, Y: 1}, CLB)
		if got := g.SitesOf(CLB); len(got) != 3 {
			t.Errorf("SitesOf(CLB) after Set = %d sites, want 3", len(got))
		}
	})

	t.Run("absent type", func(t *testing.T) {
		if got := g.SitesOf(DSP); len(got) != 0 {
			t.Errorf("SitesOf(DSP) = %v, want empty", got)
		}
	})
}

func TestSimple(t *testing.T) {
	t.Run("64x64 composition", func(t *testing.T) {
		g, err := Simple(64, 64)
		if err != nil {
			t.Fatalf("Simple: %v", err)
		}

		counts := g.CountByType()
		want := map[SiteType]int{
			IO:    248,  // border ring minus the four corners
			Empty: 4,    // corners
			CLB:   3472, // interior minus BRAM columns
			BRAM:  372,  // columns 10,20,...,60 × 62 interior rows
			DSP:   0,
		}
		for st, n := range want {
			if counts[st] != n {
				t.Errorf("%s count = %d, want %d", st, counts[st], n)
			}
		}

		total := 0
		for _, n := range counts {
			total += n
		}
		if total != g.Area() {
			t.Errorf("count total = %d, want %d", total, g.Area())
		}
	})

	t.Run("too small", func(t *testing.T) {
		if _, err := Simple(2, 8); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Simple(2,8) error = %v, want ErrInvalidDimensions", err)
		}
	})
}

func TestManhattan(t *testing.T) {
	tests := []struct {
		a, b Coord
		want int
	}{
		{Coord{X: 0, Y: 0}, Coord{X: 0, Y: 0}, 0},
		{Coord{X: 1, Y: 1}, Coord{X: 4, Y: 5}, 7},
		{Coord{X: 4, Y: 5}, Coord{X: 1, Y: 1}, 7},
		{Coord{X: 3, Y: 0}, Coord{X: 0, Y: 3}, 6},
	}
	for _, tt := range tests {
		if got := tt.a.Manhattan(tt.b); got != tt.want {
			t.Errorf("%v.Manhattan(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseSiteType(t *testing.T) {
	for _, st := range []SiteType{Empty, CLB, DSP, BRAM, IO} {
		parsed, err := ParseSiteType(st.String())
		if err != nil {
			t.Fatalf("ParseSiteType(%q): %v", st.String(), err)
		}
		if parsed != st {
			t.Errorf("ParseSiteType(%q) = %v, want %v", st.String(), parsed, st)
		}
	}

	if _, err := ParseSiteType("flipflop"); !errors.Is(err, ErrUnknownSiteType) {
		t.Errorf("ParseSiteType(flipflop) error = %v, want ErrUnknownSiteType", err)
	}
}

func TestGridJSONRoundTrip(t *testing.T) {
	g, err := Simple(8, 8)
	if err != nil {
		t.Fatalf("Simple: %v", err)
	}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var restored Grid
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if restored.Width() != g.Width() || restored.Height() != g.Height() {
		t.Errorf("dimensions = %dx%d, want %dx%d",
			restored.Width(), restored.Height(), g.Width(), g.Height())
	}
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			c := Coord{X: x, Y: y}
			a, _ := g.At(c)
			b, _ := restored.At(c)
			if a != b {
				t.Fatalf("At(%v) = %v after round trip, want %v", c, b, a)
			}
		}
	}
}

func TestGridJSONRejectsStraySites(t *testing.T) {
	raw := `{"width":4,"height":4,"sites":[{"x":9,"y":9,"type":"clb"}]}`
	var g Grid
	if err := json.Unmarshal([]byte(raw), &g); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Unmarshal error = %v, want ErrOutOfBounds", err)
	}
}

func TestASCII(t *testing.T) {
	g, _ := New(2, 2)
	g.Set(Coord{X: 0, Y: 0}, IO)
	g.Set(Coord{X: 1, Y: 1}, CLB)

	want := "" +
		"┌───┬───┐\n" +
		"│ I │   │\n" +
		"├───┼───┤\n" +
		"│   │ C │\n" +
		"└───┴───┘\n"

	if got := g.ASCII(); got != want {
		t.Errorf("ASCII() =\n%s\nwant\n%s", got, want)
	}
}
