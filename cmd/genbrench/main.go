package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Hakuto4838/SkipListSet.git/datastream"
	"go.uber.org/zap"
)

// parseScientificNotation 解析科學記號字串（如 "1e5"）為整數
func parseScientificNotation(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// formatScientific 將數字格式化為科學記號（用於檔名）
func formatScientific(n int) string {
	if n == 0 {
		return "0"
	}
	exp := 0
	divisor := 1
	for n/divisor >= 10 {
		divisor *= 10
		exp++
	}
	coefficient := float64(n) / float64(divisor)
	if coefficient == float64(int(coefficient)) {
		return fmt.Sprintf("%de%d", int(coefficient), exp)
	}
	return fmt.Sprintf("%.1fe%d", coefficient, exp)
}

// formatDecimal 將浮點數格式化為不含小數點的字串（用於檔名）
func formatDecimal(f float64) string {
	val := int(f*100 + 0.5)
	switch {
	case val%100 == 0:
		return fmt.Sprintf("%d", val/100)
	case val%10 == 0:
		return fmt.Sprintf("%d_%d", val/100, (val%100)/10)
	default:
		return fmt.Sprintf("%d_%02d", val/100, val%100)
	}
}

func main() {
	var out string
	var path string
	var nStr string
	var a float64
	var b float64
	var kStr string
	var seed uint64
	var addRatio float64
	var nums int
	var simple bool

	flag.StringVar(&nStr, "n", "0", "number of keys (支援科學記號，如 1e5)")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter s (設為 0 時使用均勻分布)")
	flag.Float64Var(&b, "b", 1.0, "Zipf parameter v (當 a > 0 時有效)")
	flag.StringVar(&kStr, "k", "0", "number of operations to generate (支援科學記號，如 1e6)")
	flag.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "seed for generators")
	flag.Float64Var(&addRatio, "addRatio", 0.5, "ratio of Add operations")
	flag.IntVar(&nums, "nums", 1, "number of files to generate")
	flag.StringVar(&out, "out", "", "output filename prefix (留空則自動生成)")
	flag.StringVar(&path, "path", ".", "output directory path")
	flag.BoolVar(&simple, "simple", false, "使用 0..n-1 作為 key")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	n, err := parseScientificNotation(nStr)
	if err != nil {
		logger.Fatal("parse -n", zap.String("value", nStr), zap.Error(err))
	}
	k, err := parseScientificNotation(kStr)
	if err != nil {
		logger.Fatal("parse -k", zap.String("value", kStr), zap.Error(err))
	}

	if out == "" {
		out = fmt.Sprintf("set_n%s_k%s_a%s_b%s_ar%s",
			formatScientific(n),
			formatScientific(k),
			formatDecimal(a),
			formatDecimal(b),
			formatDecimal(addRatio))
	}

	if path != "." && path != "" {
		if err := os.MkdirAll(path, 0755); err != nil {
			logger.Fatal("create output directory", zap.String("path", path), zap.Error(err))
		}
	}

	logger.Info("generate workloads",
		zap.Int("n", n),
		zap.Int("k", k),
		zap.Float64("a", a),
		zap.Float64("b", b),
		zap.Float64("addRatio", addRatio),
		zap.Uint64("seed", seed),
		zap.Int("nums", nums),
		zap.String("path", path),
		zap.String("prefix", out),
	)

	for i := 0; i < nums; i++ {
		filename := fmt.Sprintf("%s.bin", out)
		if nums > 1 {
			filename = fmt.Sprintf("%s_%d.bin", out, i)
		}
		outfile := filepath.Join(path, filename)
		wl, err := datastream.GenerateWorkload(datastream.WorkloadSpec{
			N: n, S: a, V: b, Seed: seed + uint64(i), K: k, AddRatio: addRatio, SimpleKey: simple,
		})
		if err != nil {
			logger.Fatal("generate workload", zap.Error(err))
		}
		if err := datastream.WriteWorkloadFile(outfile, wl); err != nil {
			logger.Fatal("write workload", zap.String("file", outfile), zap.Error(err))
		}
		logger.Info("workload written", zap.String("file", outfile), zap.Float64("entropy", wl.Entropy()))
	}
}
