package runs

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/fpgakit/placer/pkg/fabric"
	"github.com/fpgakit/placer/pkg/netlist"
	"github.com/fpgakit/placer/pkg/place"
	"github.com/fpgakit/placer/pkg/search"
)

func testRun(t *testing.T) *Run {
	t.Helper()
	grid, err := fabric.Simple(8, 8)
	if err != nil {
		t.Fatalf("Simple() unexpected error: %v", err)
	}
	net, err := netlist.Generate(netlist.GenOptions{Nodes: 20, IO: 4, EdgeProb: 0.1}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	initial, err := place.Random(grid, net, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Random() unexpected error: %v", err)
	}

	opts := search.Options{Steps: 10, Neighbors: 4, Seed: 3}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() unexpected error: %v", err)
	}
	result, err := search.Run(context.Background(), initial, opts)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	run, err := New(grid, net, place.StrategyRandom, opts, result)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return run
}

func TestNewRun(t *testing.T) {
	run := testRun(t)

	if run.ID == "" {
		t.Error("run has no ID")
	}
	if run.Width != 8 || run.Height != 8 {
		t.Errorf("run shape = %dx%d, want 8x8", run.Width, run.Height)
	}
	if run.Nodes != 20 {
		t.Errorf("run nodes = %d, want 20", run.Nodes)
	}
	if run.Strategy != "random" {
		t.Errorf("run strategy = %q, want random", run.Strategy)
	}
	if len(run.Series) != 10 {
		t.Errorf("len(Series) = %d, want 10", len(run.Series))
	}
	if len(run.Final) != 20 {
		t.Errorf("len(Final) = %d, want 20", len(run.Final))
	}
	if run.FabricHash == "" || run.NetlistHash == "" {
		t.Error("run is missing content hashes")
	}
}

func TestRunPlacementRebuild(t *testing.T) {
	run := testRun(t)

	p, err := run.Placement()
	if err != nil {
		t.Fatalf("Placement() unexpected error: %v", err)
	}
	cost, err := p.Cost()
	if err != nil {
		t.Fatalf("Cost() unexpected error: %v", err)
	}
	if cost != run.FinalCost {
		t.Errorf("rebuilt cost = %d, run says %d", cost, run.FinalCost)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	defer store.Close()

	run := testRun(t)
	if err := store.Put(ctx, run); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	got, err := store.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.ID != run.ID || got.FinalCost != run.FinalCost || len(got.Series) != len(run.Series) {
		t.Error("stored run does not match original")
	}

	// The stored record is self-contained.
	if _, err := got.Placement(); err != nil {
		t.Errorf("Placement() on stored run: %v", err)
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(context.Background(), "no-such-run"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	defer store.Close()

	older := testRun(t)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testRun(t)

	if err := store.Put(ctx, older); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}
	if err := store.Put(ctx, newer); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(List()) = %d, want 2", len(summaries))
	}
	if summaries[0].ID != newer.ID {
		t.Errorf("List()[0] = %s, want the newer run %s", summaries[0].ID, newer.ID)
	}
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() unexpected error: %v", err)
	}
	defer store.Close()

	run := testRun(t)
	if err := store.Put(ctx, run); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}
	if err := store.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, run.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want %v", err, ErrNotFound)
	}
	// Deleting again is not an error.
	if err := store.Delete(ctx, run.ID); err != nil {
		t.Errorf("Delete() of missing run: %v", err)
	}
}
