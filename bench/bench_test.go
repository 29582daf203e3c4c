package bench

import (
	"math"
	"testing"

	"github.com/Hakuto4838/SkipListSet.git/datastream"
	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/basic"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/tower"
	"go.uber.org/zap"
)

// mapSet 只實作 Set，用來確認沒有層級資訊時的行為
type mapSet map[skiplist.K]struct{}

func (m mapSet) Add(k skiplist.K)           { m[k] = struct{}{} }
func (m mapSet) Contains(k skiplist.K) bool { _, ok := m[k]; return ok }
func (m mapSet) Size() int                  { return len(m) }

func TestRun(t *testing.T) {
	wl := &datastream.Workload{
		Dist: map[skiplist.K]float64{1: 0.5, 2: 0.5},
		Ops: []datastream.Operation{
			{Type: datastream.OpContains, Key: 1},
			{Type: datastream.OpAdd, Key: 1},
			{Type: datastream.OpAdd, Key: 1},
			{Type: datastream.OpContains, Key: 1},
			{Type: datastream.OpContains, Key: 2},
		},
	}
	set := tower.New[skiplist.K]()
	res := Run(set, wl)
	if res.Adds != 2 || res.Contains != 3 || res.Hits != 1 {
		t.Errorf("Run() = %+v", res)
	}
	if set.Size() != 1 {
		t.Errorf("Size() = %d, want 1", set.Size())
	}
}

func TestBenchmarkMatchesAcrossImpls(t *testing.T) {
	wl, err := datastream.GenerateWorkload(datastream.WorkloadSpec{N: 500, S: 1.1, V: 1, Seed: 3, K: 5000, AddRatio: 0.4})
	if err != nil {
		t.Fatalf("GenerateWorkload: %v", err)
	}
	b := New(zap.NewNop())

	towerStats, err := b.Benchmark("tower", func(int) skiplist.Set[skiplist.K] {
		return tower.New(tower.WithSeed[skiplist.K](42), tower.WithMaxLevel[skiplist.K](16))
	}, wl, 3)
	if err != nil {
		t.Fatalf("Benchmark(tower): %v", err)
	}
	basicStats, err := b.Benchmark("basic", func(int) skiplist.Set[skiplist.K] {
		return basic.NewWithDecision[skiplist.K](coin.NewRandom[skiplist.K](42), 16)
	}, wl, 3)
	if err != nil {
		t.Fatalf("Benchmark(basic): %v", err)
	}
	mapStats, err := b.Benchmark("map", func(int) skiplist.Set[skiplist.K] { return mapSet{} }, wl, 2)
	if err != nil {
		t.Fatalf("Benchmark(map): %v", err)
	}

	if towerStats.Size != basicStats.Size || towerStats.Size != mapStats.Size {
		t.Errorf("sizes differ: tower %d basic %d map %d", towerStats.Size, basicStats.Size, mapStats.Size)
	}
	if towerStats.Levels != basicStats.Levels || math.Abs(towerStats.AvgSteps-basicStats.AvgSteps) > 1e-9 {
		t.Errorf("same coin should give same structure: %+v vs %+v", towerStats, basicStats)
	}
	if !math.IsNaN(mapStats.AvgSteps) || mapStats.Levels != 0 {
		t.Errorf("map set should have no structure stats: %+v", mapStats)
	}
	if towerStats.MinMs > towerStats.AvgMs || towerStats.AvgMs > towerStats.MaxMs {
		t.Errorf("min/avg/max out of order: %+v", towerStats)
	}
}

func TestBenchmarkInvalid(t *testing.T) {
	b := New(zap.NewNop())
	factory := func(int) skiplist.Set[skiplist.K] { return mapSet{} }
	if _, err := b.Benchmark("x", factory, &datastream.Workload{}, 0); err == nil {
		t.Error("expected error for zero runs")
	}
	if _, err := b.Benchmark("x", factory, nil, 1); err == nil {
		t.Error("expected error for nil workload")
	}
}
