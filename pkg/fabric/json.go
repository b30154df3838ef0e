package fabric

import (
	"encoding/json"
	"fmt"
)

// siteJSON is one non-empty cell in the serialized form.
type siteJSON struct {
	X    int      `json:"x"`
	Y    int      `json:"y"`
	Type SiteType `json:"type"`
}

// gridJSON is the canonical serialization format for a fabric grid.
// Only non-empty cells are listed; everything else reads back as Empty.
type gridJSON struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Sites  []siteJSON `json:"sites"`
}

// MarshalJSON serializes the grid with sites in column-major order for
// deterministic output. Empty cells are omitted.
func (g *Grid) MarshalJSON() ([]byte, error) {
	doc := gridJSON{Width: g.width, Height: g.height}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			c := Coord{X: x, Y: y}
			if t := g.sites[c]; t != Empty {
				doc.Sites = append(doc.Sites, siteJSON{X: x, Y: y, Type: t})
			}
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON restores a grid from its serialized form.
// The result is validated: dimensions must be positive and every listed
// site must be in bounds.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var doc gridJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	restored, err := New(doc.Width, doc.Height)
	if err != nil {
		return err
	}
	for _, s := range doc.Sites {
		restored.Set(Coord{X: s.X, Y: s.Y}, s.Type)
	}
	if err := restored.Validate(); err != nil {
		return fmt.Errorf("decode grid: %w", err)
	}

	*g = *restored
	return nil
}
