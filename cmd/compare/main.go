package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Hakuto4838/SkipListSet.git/datastream"
	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/analyTool"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/tower"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/instrument"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type variant struct {
	name string
	set  *tower.Set[skiplist.K]
}

func buildVariants(keys []skiplist.K, seed uint64, maxLevel int) []variant {
	decisions := []struct {
		name string
		d    skiplist.LevelDecision[skiplist.K]
	}{
		{"random", coin.NewRandom[skiplist.K](seed)},
		{"random-p25", coin.NewRandomWithProbability[skiplist.K](seed, 0.25)},
		{"fast", coin.NewFast[skiplist.K]()},
		{"never", coin.Never[skiplist.K]()},
	}
	out := make([]variant, 0, len(decisions))
	for _, d := range decisions {
		s := tower.New(tower.WithDecision(d.d), tower.WithMaxLevel[skiplist.K](maxLevel))
		for _, k := range keys {
			s.Add(k)
		}
		out = append(out, variant{d.name, s})
	}
	return out
}

func main() {
	var n int
	var seed uint64
	var maxLevel int
	var show int

	flag.IntVar(&n, "n", 900, "number of keys")
	flag.Uint64Var(&seed, "seed", 42, "seed for the generator and coins")
	flag.IntVar(&maxLevel, "maxLevel", 16, "maximum number of levels")
	flag.IntVar(&show, "show", 35, "keys to render per level")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Zipf 分布作為查詢權重
	gen := datastream.NewZipfDataGenerator(n, 1.07, 1.0, seed)
	kmap := gen.GetKeyMap()
	keys := make([]skiplist.K, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, skiplist.K(i))
	}

	variants := buildVariants(keys, seed, maxLevel)
	registry := prometheus.NewRegistry()
	for _, v := range variants {
		reg := prometheus.WrapRegistererWith(prometheus.Labels{"coin": v.name}, registry)
		reg.MustRegister(instrument.NewSetCollector[skiplist.K]("skiplistset", v.set))
	}
	rows := make([][]string, 0, len(variants))
	for _, v := range variants {
		if err := v.set.Validate(); err != nil {
			logger.Fatal("invalid structure", zap.String("coin", v.name), zap.Error(err))
		}
		if err := analyTool.CheckStruct[skiplist.K](v.set, keys); err != nil {
			logger.Fatal("level laws violated", zap.String("coin", v.name), zap.Error(err))
		}
		score, _ := analyTool.AnalyzeStep[skiplist.K](v.set, kmap)
		counts := analyTool.CountLevel[skiplist.K](v.set)
		profile := make([]string, len(counts))
		for i, c := range counts {
			profile[i] = strconv.Itoa(c)
		}
		rows = append(rows, []string{
			v.name,
			strconv.Itoa(v.set.Size()),
			strconv.Itoa(v.set.LevelCount()),
			fmt.Sprintf("%.6f", score),
			strings.Join(profile, "/"),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Coin", "Size", "Levels", "AvgSteps", "Per-level counts"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	if err := printLevelGauges(registry); err != nil {
		logger.Error("gather metrics", zap.Error(err))
	}

	for _, v := range variants {
		fmt.Printf("\n=== %s ===\n", v.name)
		analyTool.PrintSkipList[skiplist.K](os.Stdout, v.set, keys, 8, show)
	}
}

// printLevelGauges 以表格印出各集合每層的元素數
func printLevelGauges(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	rows := [][]string{}
	for _, mf := range families {
		if mf.GetName() != "skiplistset_level_elements" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var coinName, lvl string
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "coin":
					coinName = lp.GetValue()
				case "level":
					lvl = lp.GetValue()
				}
			}
			rows = append(rows, []string{coinName, lvl, fmt.Sprintf("%.0f", m.GetGauge().GetValue())})
		}
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Coin", "Level", "Elements"})
	table.AppendBulk(rows)
	table.Render()
	return nil
}
