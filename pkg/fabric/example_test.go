package fabric_test

import (
	"fmt"

	"github.com/fpgakit/placer/pkg/fabric"
)

func ExampleSimple() {
	// The canonical demo fabric: IO ring, Empty corners, CLB interior,
	// BRAM column every tenth column.
	g, _ := fabric.Simple(64, 64)

	counts := g.CountByType()
	fmt.Println("CLB:", counts[fabric.CLB])
	fmt.Println("BRAM:", counts[fabric.BRAM])
	fmt.Println("IO:", counts[fabric.IO])
	// Output:
	// CLB: 3472
	// BRAM: 372
	// IO: 248
}

func ExampleGrid_FillRepeat() {
	// Tile BRAM sites across a small interior with a stride of 2 columns.
	g, _ := fabric.New(6, 4)
	g.FillRepeat(1, 1, 4, 2, 2, 1, fabric.BRAM)

	fmt.Println("BRAM sites:", len(g.SitesOf(fabric.BRAM)))
	// Output:
	// BRAM sites: 4
}
