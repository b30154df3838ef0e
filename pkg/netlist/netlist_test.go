package netlist

import (
	"encoding/json"
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/fpgakit/placer/pkg/fabric"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		types   []fabric.SiteType
		edges   []Edge
		wantErr error
	}{
		{
			name:  "valid",
			types: []fabric.SiteType{fabric.CLB, fabric.CLB, fabric.IO},
			edges: []Edge{{From: 0, To: 1}, {From: 1, To: 2}},
		},
		{
			name:  "no edges",
			types: []fabric.SiteType{fabric.BRAM},
		},
		{
			name:    "empty site type",
			types:   []fabric.SiteType{fabric.CLB, fabric.Empty},
			wantErr: ErrEmptySiteType,
		},
		{
			name:    "endpoint out of range",
			types:   []fabric.SiteType{fabric.CLB, fabric.CLB},
			edges:   []Edge{{From: 0, To: 2}},
			wantErr: ErrInvalidEdgeEndpoint,
		},
		{
			name:    "negative endpoint",
			types:   []fabric.SiteType{fabric.CLB, fabric.CLB},
			edges:   []Edge{{From: -1, To: 1}},
			wantErr: ErrInvalidEdgeEndpoint,
		},
		{
			name:    "self edge",
			types:   []fabric.SiteType{fabric.CLB, fabric.CLB},
			edges:   []Edge{{From: 1, To: 1}},
			wantErr: ErrSelfEdge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := New(tt.types, tt.edges)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if net.NodeCount() != len(tt.types) {
				t.Errorf("NodeCount() = %d, want %d", net.NodeCount(), len(tt.types))
			}
			if net.EdgeCount() != len(tt.edges) {
				t.Errorf("EdgeCount() = %d, want %d", net.EdgeCount(), len(tt.edges))
			}
		})
	}
}

func TestNodeIDsAreDense(t *testing.T) {
	net, err := New([]fabric.SiteType{fabric.CLB, fabric.IO, fabric.BRAM}, nil)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	for i, node := range net.Nodes() {
		if node.ID != i {
			t.Errorf("node %d has ID %d", i, node.ID)
		}
	}
}

func TestDegree(t *testing.T) {
	net, err := New(
		[]fabric.SiteType{fabric.CLB, fabric.CLB, fabric.CLB, fabric.CLB},
		[]Edge{{From: 0, To: 1}, {From: 0, To: 2}, {From: 2, To: 0}},
	)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	want := []int{4, 1, 2, 0}
	for i, w := range want {
		if got := net.Degree(i); got != w {
			t.Errorf("Degree(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestCountByType(t *testing.T) {
	net, err := New([]fabric.SiteType{
		fabric.CLB, fabric.CLB, fabric.CLB,
		fabric.IO, fabric.IO,
		fabric.BRAM,
	}, nil)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	counts := net.CountByType()
	if counts[fabric.CLB] != 3 {
		t.Errorf("CLB count = %d, want 3", counts[fabric.CLB])
	}
	if counts[fabric.IO] != 2 {
		t.Errorf("IO count = %d, want 2", counts[fabric.IO])
	}
	if counts[fabric.BRAM] != 1 {
		t.Errorf("BRAM count = %d, want 1", counts[fabric.BRAM])
	}
	if counts[fabric.DSP] != 0 {
		t.Errorf("DSP count = %d, want 0", counts[fabric.DSP])
	}
}

func TestGenerateQuotas(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	net, err := Generate(GenOptions{Nodes: 40, IO: 6, BRAM: 4, DSP: 2, EdgeProb: 0.3}, rng)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	counts := net.CountByType()
	if counts[fabric.IO] != 6 || counts[fabric.BRAM] != 4 || counts[fabric.DSP] != 2 {
		t.Errorf("relabeled counts = io %d, bram %d, dsp %d; want 6, 4, 2",
			counts[fabric.IO], counts[fabric.BRAM], counts[fabric.DSP])
	}
	if counts[fabric.CLB] != 28 {
		t.Errorf("CLB count = %d, want 28", counts[fabric.CLB])
	}
}

func TestGenerateNoIsolatedNodes(t *testing.T) {
	// Low edge probability so the isolated-node pass has work to do.
	rng := rand.New(rand.NewSource(11))
	net, err := Generate(GenOptions{Nodes: 50, IO: 5, BRAM: 5, EdgeProb: 0.02}, rng)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	for i := 0; i < net.NodeCount(); i++ {
		if net.Degree(i) == 0 {
			t.Errorf("node %d is isolated", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := GenOptions{Nodes: 30, IO: 4, BRAM: 3, EdgeProb: 0.1}

	a, err := Generate(opts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	b, err := Generate(opts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(a.Nodes(), b.Nodes()) {
		t.Error("same seed produced different nodes")
	}
	if !reflect.DeepEqual(a.Edges(), b.Edges()) {
		t.Error("same seed produced different edges")
	}
}

func TestGenerateSingleNode(t *testing.T) {
	// One node can never be connected, and there is no anchor to attach it to.
	_, err := Generate(GenOptions{Nodes: 1}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoConnectedNode) {
		t.Fatalf("Generate() error = %v, want %v", err, ErrNoConnectedNode)
	}
}

func TestGenerateOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opts GenOptions
	}{
		{name: "zero nodes", opts: GenOptions{Nodes: 0}},
		{name: "negative quota", opts: GenOptions{Nodes: 10, IO: -1}},
		{name: "quotas exceed nodes", opts: GenOptions{Nodes: 10, IO: 5, BRAM: 5, DSP: 1}},
		{name: "probability above one", opts: GenOptions{Nodes: 10, EdgeProb: 1.5}},
		{name: "negative probability", opts: GenOptions{Nodes: 10, EdgeProb: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Generate(tt.opts, rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidGenOptions) {
				t.Errorf("Generate() error = %v, want %v", err, ErrInvalidGenOptions)
			}
		})
	}
}

func TestCheckCapacity(t *testing.T) {
	grid, err := fabric.Simple(8, 8) // 36 CLB, 24 IO, 0 BRAM
	if err != nil {
		t.Fatalf("Simple() unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		types    []fabric.SiteType
		wantErr  bool
		wantText []string
	}{
		{
			name:  "fits",
			types: []fabric.SiteType{fabric.CLB, fabric.CLB, fabric.IO},
		},
		{
			name:     "too many bram",
			types:    []fabric.SiteType{fabric.BRAM, fabric.BRAM},
			wantErr:  true,
			wantText: []string{"bram needs 2, fabric has 0"},
		},
		{
			name:     "multiple deficits",
			types:    append(manyOf(fabric.CLB, 40), fabric.BRAM),
			wantErr:  true,
			wantText: []string{"clb needs 40, fabric has 36", "bram needs 1, fabric has 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := New(tt.types, nil)
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			err = CheckCapacity(grid, net)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("CheckCapacity() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInsufficientSites) {
				t.Fatalf("CheckCapacity() error = %v, want %v", err, ErrInsufficientSites)
			}
			for _, want := range tt.wantText {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("CheckCapacity() error %q missing %q", err, want)
				}
			}
		})
	}
}

func manyOf(t fabric.SiteType, n int) []fabric.SiteType {
	out := make([]fabric.SiteType, n)
	for i := range out {
		out[i] = t
	}
	return out
}

func TestNetlistJSONRoundTrip(t *testing.T) {
	orig, err := Generate(GenOptions{Nodes: 25, IO: 4, BRAM: 3, EdgeProb: 0.15}, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	var decoded Netlist
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(orig.Nodes(), decoded.Nodes()) {
		t.Error("nodes changed across JSON round trip")
	}
	if !reflect.DeepEqual(orig.Edges(), decoded.Edges()) {
		t.Error("edges changed across JSON round trip")
	}
}

func TestNetlistJSONValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "duplicate node id",
			input:   `{"nodes":[{"id":0,"type":"clb"},{"id":0,"type":"clb"}],"edges":[]}`,
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "node id out of range",
			input:   `{"nodes":[{"id":0,"type":"clb"},{"id":5,"type":"clb"}],"edges":[]}`,
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "edge endpoint out of range",
			input:   `{"nodes":[{"id":0,"type":"clb"}],"edges":[{"from":0,"to":3}]}`,
			wantErr: ErrInvalidEdgeEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var net Netlist
			if err := json.Unmarshal([]byte(tt.input), &net); !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNetlistJSONUnorderedIDs(t *testing.T) {
	input := `{"nodes":[{"id":2,"type":"bram"},{"id":0,"type":"clb"},{"id":1,"type":"io"}],"edges":[{"from":0,"to":2}]}`

	var net Netlist
	if err := json.Unmarshal([]byte(input), &net); err != nil {
		t.Fatalf("Unmarshal() unexpected error: %v", err)
	}
	want := []fabric.SiteType{fabric.CLB, fabric.IO, fabric.BRAM}
	for i, w := range want {
		if got := net.Node(i).Type; got != w {
			t.Errorf("node %d type = %v, want %v", i, got, w)
		}
	}
}
