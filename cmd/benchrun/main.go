package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Hakuto4838/SkipListSet.git/bench"
	"github.com/Hakuto4838/SkipListSet.git/config"
	"github.com/Hakuto4838/SkipListSet.git/datastream"
	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/basic"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/instrument"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/tower"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// 輸入：-file、-dir，或 -out 加上產生參數
	var file string
	var dir string
	var out string
	var n int
	var a float64
	var b float64
	var k int
	var addRatio float64
	var seed uint64

	var cfgPath string
	var impls string
	var coinName string
	var runs int
	var maxLevel int
	var verbose bool

	flag.StringVar(&file, "file", "", "existing workload file (SLSET001 format)")
	flag.StringVar(&dir, "dir", "", "directory containing workload files to test (will test all .bin files)")
	flag.StringVar(&out, "out", "", "output path to write a generated workload file")
	flag.IntVar(&n, "n", 0, "number of keys")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter s (0 for uniform)")
	flag.Float64Var(&b, "b", 1.0, "Zipf parameter v")
	flag.IntVar(&k, "k", 0, "number of operations to generate")
	flag.Float64Var(&addRatio, "addRatio", 0.5, "ratio of Add operations")
	flag.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "seed for generators and coins")

	flag.StringVar(&cfgPath, "config", "", "JSON run config (overrides -impl, -coin, -runs, -seed, -maxLevel)")
	flag.StringVar(&impls, "impl", "all", "implementations to run: all or comma list (tower,basic)")
	flag.StringVar(&coinName, "coin", "random", "level decision: random or fast")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each benchmark")
	flag.IntVar(&maxLevel, "maxLevel", 32, "maximum number of levels")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	logger := newLogger(verbose)
	defer logger.Sync()

	var benchPaths []string
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
		impls = strings.Join(cfg.Impls, ",")
		coinName, runs, maxLevel = cfg.Coin, cfg.Runs, cfg.MaxLevel
		if cfg.Seed != 0 {
			seed = cfg.Seed
		}
		benchPaths = append(benchPaths, cfg.Files...)
	}

	// 判斷模式: -dir 優先於 -file
	switch {
	case len(benchPaths) > 0:
	case dir != "":
		files, err := collectWorkloadFiles(dir)
		if err != nil {
			logger.Fatal("scan directory", zap.String("dir", dir), zap.Error(err))
		}
		if len(files) == 0 {
			logger.Fatal("no .bin files found", zap.String("dir", dir))
		}
		benchPaths = files
	case file != "":
		benchPaths = []string{file}
	default:
		if out == "" {
			logger.Fatal("either -config, -file, -dir, or -out with generation params (-n,-a,-b,-k,-seed) must be provided")
		}
		wl, err := datastream.GenerateWorkload(datastream.WorkloadSpec{N: n, S: a, V: b, Seed: seed, K: k, AddRatio: addRatio})
		if err != nil {
			logger.Fatal("generate workload", zap.Error(err))
		}
		if err := datastream.WriteWorkloadFile(out, wl); err != nil {
			logger.Fatal("write workload", zap.String("out", out), zap.Error(err))
		}
		logger.Info("generated workload", zap.String("out", out), zap.Int("ops", len(wl.Ops)))
		benchPaths = []string{out}
	}

	toRun := parseImpls(impls)
	fmt.Printf("implementations to test: %s (coin=%s, maxLevel=%d)\n", strings.Join(toRun, ","), coinName, maxLevel)
	fmt.Println(strings.Repeat("=", 80))

	decisions := instrument.NewDecisionCounter("skiplistset_level_decisions_total")
	registry := prometheus.NewRegistry()
	registry.MustRegister(decisions)

	bm := bench.New(logger)
	for _, path := range benchPaths {
		wl, err := datastream.ReadWorkloadFile(path)
		if err != nil {
			logger.Error("read workload", zap.String("file", path), zap.Error(err))
			continue
		}
		fmt.Printf("workload: %s\n", path)
		fmt.Printf("ops: %d, keys: %d, entropy: %.6f\n", len(wl.Ops), len(wl.Dist), wl.Entropy())

		rows := make([][]string, 0, len(toRun))
		for _, impl := range toRun {
			factory, err := newFactory(impl, coinName, seed, maxLevel, decisions)
			if err != nil {
				logger.Fatal("build factory", zap.Error(err))
			}
			stats, err := bm.Benchmark(impl, factory, wl, runs)
			if err != nil {
				logger.Error("benchmark", zap.String("impl", impl), zap.Error(err))
				continue
			}
			steps := "N/A"
			if !math.IsNaN(stats.AvgSteps) {
				steps = fmt.Sprintf("%.6f", stats.AvgSteps)
			}
			rows = append(rows, []string{
				impl,
				fmt.Sprintf("%d", stats.Runs),
				fmt.Sprintf("%.3f", stats.AvgMs),
				fmt.Sprintf("%.3f", stats.MinMs),
				fmt.Sprintf("%.3f", stats.MaxMs),
				fmt.Sprintf("%.2f", stats.OpsPerS),
				fmt.Sprintf("%d", stats.Size),
				fmt.Sprintf("%d", stats.Levels),
				steps,
			})
		}
		renderTable([]string{"Impl", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "Size", "Levels", "AvgSteps"}, rows)
		fmt.Println()
	}

	printDecisions(registry, logger)
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

func newFactory(impl, coinName string, seed uint64, maxLevel int, counter *prometheus.CounterVec) (bench.Factory, error) {
	newCoin := func(run int) (skiplist.LevelDecision[skiplist.K], error) {
		var d skiplist.LevelDecision[skiplist.K]
		switch coinName {
		case "random":
			d = coin.NewRandom[skiplist.K](seed + uint64(run))
		case "fast":
			d = coin.NewFast[skiplist.K]()
		default:
			return nil, fmt.Errorf("unknown -coin: %s", coinName)
		}
		return instrument.NewCountingDecision(d, counter), nil
	}
	if _, err := newCoin(0); err != nil {
		return nil, err
	}

	switch impl {
	case "tower":
		return func(run int) skiplist.Set[skiplist.K] {
			d, _ := newCoin(run)
			return tower.New(tower.WithDecision(d), tower.WithMaxLevel[skiplist.K](maxLevel))
		}, nil
	case "basic":
		return func(run int) skiplist.Set[skiplist.K] {
			d, _ := newCoin(run)
			return basic.NewWithDecision(d, maxLevel)
		}, nil
	default:
		return nil, fmt.Errorf("unknown -impl: %s", impl)
	}
}

// collectWorkloadFiles 收集指定目錄下所有 .bin 檔案
func collectWorkloadFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func parseImpls(s string) []string {
	all := []string{"tower", "basic"}
	if s == "" || s == "all" {
		return all
	}
	out := make([]string, 0, len(all))
	seen := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		t := strings.TrimSpace(strings.ToLower(p))
		if seen[t] {
			continue
		}
		switch t {
		case "tower", "basic":
			out = append(out, t)
			seen[t] = true
		}
	}
	if len(out) == 0 {
		return all
	}
	return out
}

func renderTable(header []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

// printDecisions 印出所有輪次累計的升層決策次數
func printDecisions(registry *prometheus.Registry, logger *zap.Logger) {
	families, err := registry.Gather()
	if err != nil {
		logger.Error("gather metrics", zap.Error(err))
		return
	}
	rows := [][]string{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			outcome := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "outcome" {
					outcome = lp.GetValue()
				}
			}
			rows = append(rows, []string{outcome, fmt.Sprintf("%.0f", m.GetCounter().GetValue())})
		}
	}
	if len(rows) == 0 {
		return
	}
	renderTable([]string{"Decision", "Count"}, rows)
}
