package fabric

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned by [New] when width or height is
	// smaller than one. A fabric must contain at least one site.
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")

	// ErrOutOfBounds is returned by [Grid.At] for coordinates outside
	// [0,width)×[0,height), and by [Grid.Validate] when a stored site lies
	// outside the grid. An out-of-bounds site makes the whole fabric
	// unusable for placement.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrUnknownSiteType is returned by [ParseSiteType] for names that do
	// not match any site type.
	ErrUnknownSiteType = errors.New("unknown site type")
)

// SiteType is the functional category of one grid site: a macro kind that
// can host a netlist node, or Empty for unusable cells.
type SiteType uint8

const (
	// Empty marks a site that can never host a node.
	Empty SiteType = iota
	// CLB is a configurable logic block site.
	CLB
	// DSP is an arithmetic (digital signal processing) block site.
	DSP
	// BRAM is a block-RAM (memory) site.
	BRAM
	// IO is an input/output pad site.
	IO
)

// siteTypeNames maps each site type to its canonical lowercase name,
// used in JSON documents and CLI flags.
var siteTypeNames = map[SiteType]string{
	Empty: "empty",
	CLB:   "clb",
	DSP:   "dsp",
	BRAM:  "bram",
	IO:    "io",
}

// siteTypeRunes maps each site type to the single rune used by the ASCII
// renderer.
var siteTypeRunes = map[SiteType]rune{
	Empty: ' ',
	CLB:   'C',
	DSP:   'D',
	BRAM:  'B',
	IO:    'I',
}

// IsMacro reports whether the site type can host a netlist node.
func (t SiteType) IsMacro() bool { return t != Empty }

// String returns the canonical lowercase name of the site type.
func (t SiteType) String() string {
	if name, ok := siteTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("sitetype(%d)", uint8(t))
}

// Rune returns the single-character form used in ASCII fabric renderings.
func (t SiteType) Rune() rune {
	if r, ok := siteTypeRunes[t]; ok {
		return r
	}
	return '?'
}

// MarshalText implements encoding.TextMarshaler so site types serialize as
// their canonical names.
func (t SiteType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SiteType) UnmarshalText(data []byte) error {
	parsed, err := ParseSiteType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseSiteType converts a canonical name ("clb", "dsp", "bram", "io",
// "empty") to its SiteType.
func ParseSiteType(name string) (SiteType, error) {
	for t, n := range siteTypeNames {
		if n == name {
			return t, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownSiteType, name)
}

// MacroTypes returns the placeable site types in canonical order.
// Empty is excluded: it can never host a node.
func MacroTypes() []SiteType {
	return []SiteType{CLB, DSP, BRAM, IO}
}

// Coord is a grid coordinate. Coords are plain values: comparable, hashable
// and usable as map keys.
type Coord struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Manhattan returns the Manhattan (L1) distance to o.
func (c Coord) Manhattan(o Coord) int {
	dx := c.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := c.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// String returns the coordinate in "(x,y)" form.
func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Grid is a fixed-size fabric of typed sites. Cells never written read as
// Empty. The zero value is not usable; construct with [New].
//
// Builder methods ([Grid.Set], [Grid.FillCorners], [Grid.FillBorder],
// [Grid.FillRepeat]) are setup-time mutators. After construction the grid
// must be treated as read-only; the placement engine shares one Grid across
// all candidate solutions without locking.
type Grid struct {
	width  int
	height int
	sites  map[Coord]SiteType

	// byType caches site coordinates per macro type in column-major order.
	// Rebuilt lazily after any builder mutation.
	byType map[SiteType][]Coord
	dirty  bool
}

// New creates an empty grid of the given dimensions.
// Returns ErrInvalidDimensions unless both are at least 1.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		sites:  make(map[Coord]SiteType),
		dirty:  true,
	}, nil
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// Area returns width×height, the total number of sites.
func (g *Grid) Area() int { return g.width * g.height }

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// Set assigns a site type to one cell. No bounds check is performed here;
// [Grid.Validate] reports stored out-of-bounds sites afterwards, matching
// the fail-fast contract for misconfigured fabrics.
func (g *Grid) Set(c Coord, t SiteType) {
	g.sites[c] = t
	g.dirty = true
}

// At resolves the site type at c. Unwritten in-bounds cells are Empty;
// out-of-bounds coordinates return ErrOutOfBounds.
func (g *Grid) At(c Coord) (SiteType, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	return g.sites[c], nil
}

// Validate checks that every stored site lies within the grid bounds.
// An invalid fabric cannot support any placement, so callers must validate
// after construction and treat failure as fatal.
func (g *Grid) Validate() error {
	for c := range g.sites {
		if !g.InBounds(c) {
			return fmt.Errorf("%w: stored site %s in %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
		}
	}
	return nil
}

// CountByType tallies every cell of the grid, Empty included.
func (g *Grid) CountByType() map[SiteType]int {
	counts := map[SiteType]int{Empty: 0, CLB: 0, DSP: 0, BRAM: 0, IO: 0}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			counts[g.sites[Coord{X: x, Y: y}]]++
		}
	}
	return counts
}

// SitesOf returns every coordinate of the given site type in column-major
// order (x ascending, then y ascending). The returned slice is shared and
// must not be modified by the caller.
func (g *Grid) SitesOf(t SiteType) []Coord {
	if g.dirty {
		g.rebuildIndex()
	}
	return g.byType[t]
}

// rebuildIndex scans the full grid once and groups coordinates by type.
// The column-major scan order is part of the package contract: greedy
// seeding and deterministic site selection depend on it.
func (g *Grid) rebuildIndex() {
	byType := make(map[SiteType][]Coord)
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			c := Coord{X: x, Y: y}
			t := g.sites[c]
			byType[t] = append(byType[t], c)
		}
	}
	g.byType = byType
	g.dirty = false
}
