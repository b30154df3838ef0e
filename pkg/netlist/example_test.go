package netlist_test

import (
	"fmt"
	"math/rand"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
)

func ExampleGenerate() {
	rng := rand.New(rand.NewSource(1))
	net, err := netlist.Generate(netlist.GenOptions{Nodes: 40, IO: 6, BRAM: 4}, rng)
	if err != nil {
		fmt.Println("generate:", err)
		return
	}

	counts := net.CountByType()
	fmt.Println("nodes:", net.NodeCount())
	fmt.Println("clb:", counts[fabric.CLB])
	fmt.Println("io:", counts[fabric.IO])
	fmt.Println("bram:", counts[fabric.BRAM])
	// Output:
	// nodes: 40
	// clb: 30
	// io: 6
	// bram: 4
}

func ExampleCheckCapacity() {
	grid, _ := fabric.Simple(8, 8)
	net, _ := netlist.New([]fabric.SiteType{fabric.BRAM, fabric.BRAM}, nil)

	fmt.Println(netlist.CheckCapacity(grid, net))
	// Output:
	// insufficient sites for netlist: bram needs 2, fabric has 0
}
