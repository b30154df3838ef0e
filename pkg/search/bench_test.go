package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
)

func benchmarkRun(b *testing.B, width, height, nodes, io, bram int) {
	grid, err := fabric.Simple(width, height)
	if err != nil {
		b.Fatalf("Simple() unexpected error: %v", err)
	}
	net, err := netlist.Generate(netlist.GenOptions{Nodes: nodes, IO: io, BRAM: bram}, rand.New(rand.NewSource(13)))
	if err != nil {
		b.Fatalf("Generate() unexpected error: %v", err)
	}
	initial, err := place.Random(grid, net, rand.New(rand.NewSource(14)))
	if err != nil {
		b.Fatalf("Random() unexpected error: %v", err)
	}

	opts := Options{Steps: 500, Neighbors: 16, Seed: 42}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), initial, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunSmallFabric(b *testing.B) { benchmarkRun(b, 64, 64, 300, 30, 100) }

func BenchmarkRunLargeFabric(b *testing.B) { benchmarkRun(b, 200, 200, 1000, 50, 200) }
