package bench

import (
	"math"
	"sort"
	"time"

	"github.com/Hakuto4838/SkipListSet.git/datastream"
	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/analyTool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Factory 為每一輪建立新的空集合
type Factory func(run int) skiplist.Set[skiplist.K]

// Result 是單輪重播的結果
type Result struct {
	Elapsed  time.Duration
	Adds     int
	Contains int
	Hits     int
}

// Stats 是多輪的彙總
type Stats struct {
	Runs     int
	AvgMs    float64
	MinMs    float64
	MaxMs    float64
	OpsPerS  float64
	AvgSteps float64 // 結構相關，集合不支援 SearchPath 時為 NaN
	Size     int
	Levels   int // 集合不支援層級查詢時為 0
}

// Run 依序重播 workload
func Run(set skiplist.Set[skiplist.K], wl *datastream.Workload) Result {
	var res Result
	start := time.Now()
	for _, op := range wl.Ops {
		switch op.Type {
		case datastream.OpAdd:
			set.Add(op.Key)
			res.Adds++
		case datastream.OpContains:
			if set.Contains(op.Key) {
				res.Hits++
			}
			res.Contains++
		}
	}
	res.Elapsed = time.Since(start)
	return res
}

// Benchmarker 執行多輪並記錄 log
type Benchmarker struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Benchmarker {
	if logger == nil {
		logger = zap.L()
	}
	return &Benchmarker{logger: logger}
}

// Benchmark 以 factory 建立的集合重播 runs 次，步數取自第一輪的最終結構
func (b *Benchmarker) Benchmark(name string, factory Factory, wl *datastream.Workload, runs int) (Stats, error) {
	if runs <= 0 {
		return Stats{}, errors.Errorf("invalid runs: %d", runs)
	}
	if wl == nil {
		return Stats{}, errors.New("nil workload")
	}

	durations := make([]float64, 0, runs)
	stats := Stats{Runs: runs, AvgSteps: math.NaN()}
	for i := 0; i < runs; i++ {
		set := factory(i)
		res := Run(set, wl)
		ms := float64(res.Elapsed.Microseconds()) / 1000.0
		durations = append(durations, ms)
		b.logger.Debug("bench run finished",
			zap.String("impl", name),
			zap.Int("run", i),
			zap.Float64("ms", ms),
			zap.Int("hits", res.Hits),
			zap.Int("size", set.Size()),
		)

		if i == 0 {
			stats.Size = set.Size()
			if lv, ok := set.(skiplist.Leveled[skiplist.K]); ok {
				stats.Levels = lv.LevelCount()
			}
			if pf, ok := set.(skiplist.Pathfinder[skiplist.K]); ok {
				stats.AvgSteps, _ = analyTool.AnalyzeStep(pf, wl.Dist)
			}
		}
	}

	sort.Float64s(durations)
	sum := 0.0
	for _, v := range durations {
		sum += v
	}
	stats.AvgMs = sum / float64(len(durations))
	stats.MinMs = durations[0]
	stats.MaxMs = durations[len(durations)-1]
	if stats.AvgMs > 0 {
		stats.OpsPerS = float64(len(wl.Ops)) / (stats.AvgMs / 1000.0)
	}

	b.logger.Info("benchmark finished",
		zap.String("impl", name),
		zap.Int("runs", runs),
		zap.Float64("avg_ms", stats.AvgMs),
		zap.Int("size", stats.Size),
		zap.Int("levels", stats.Levels),
	)
	return stats, nil
}
