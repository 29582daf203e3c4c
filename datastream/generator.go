package datastream

import (
	"math"
	randv2 "math/rand/v2"
	"sort"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
)

// weightedGenerator 依照權重的累積分布抽樣索引
type weightedGenerator struct {
	weights []float64
	cdf     []float64
	rng     *randv2.Rand
}

func newWeightedGenerator(weights []float64, seed uint64) weightedGenerator {
	var sum float64
	for _, w := range weights {
		sum += w
	}
	cdf := make([]float64, len(weights))
	acc := 0.0
	for i := range weights {
		weights[i] /= sum
		acc += weights[i]
		cdf[i] = acc
	}
	return weightedGenerator{
		weights: weights,
		cdf:     cdf,
		rng:     randv2.New(randv2.NewPCG(seed, 0)),
	}
}

// Next 產生一筆索引 (0~n-1)
func (g *weightedGenerator) Next() int {
	r := g.rng.Float64()
	i := sort.SearchFloat64s(g.cdf, r)
	return min(i, len(g.cdf)-1)
}

// GenerateSequence 產生指定長度的索引序列
func (g *weightedGenerator) GenerateSequence(seqLen int) []int {
	seq := make([]int, seqLen)
	for i := range seq {
		seq[i] = g.Next()
	}
	return seq
}

func (g *weightedGenerator) GetKeyMap() map[skiplist.K]float64 {
	result := make(map[skiplist.K]float64, len(g.weights))
	for i, w := range g.weights {
		result[skiplist.K(i)] = w
	}
	return result
}

// GetCDF 回傳新的 slice，避免汙染內部狀態
func (g *weightedGenerator) GetCDF() []float64 {
	cp := make([]float64, len(g.cdf))
	copy(cp, g.cdf)
	return cp
}

func (g *weightedGenerator) GetPDF() []float64 {
	cp := make([]float64, len(g.weights))
	copy(cp, g.weights)
	return cp
}

func (g *weightedGenerator) Entropy() float64 {
	h := 0.0
	for _, p := range g.weights {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// UniformDataGenerator 每個索引出現機率皆相同
type UniformDataGenerator struct {
	weightedGenerator
}

func NewUniformDataGenerator(n int, seed uint64) *UniformDataGenerator {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1
	}
	return &UniformDataGenerator{newWeightedGenerator(weights, seed)}
}

// ZipfDataGenerator 產生符合 Zipf 分布的索引，權重 1/(i+b)^a 並隨機打亂
type ZipfDataGenerator struct {
	weightedGenerator
	a, b float64
}

func NewZipfDataGenerator(n int, a, b float64, seed uint64) *ZipfDataGenerator {
	weights := make([]float64, n)
	for i := 1; i <= n; i++ {
		weights[i-1] = 1.0 / math.Pow(float64(i)+b, a)
	}
	shuffle := randv2.New(randv2.NewPCG(seed, 1))
	shuffle.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})
	return &ZipfDataGenerator{
		weightedGenerator: newWeightedGenerator(weights, seed),
		a:                 a,
		b:                 b,
	}
}

// Params 回傳 Zipf 參數 a, b
func (z *ZipfDataGenerator) Params() (a, b float64) {
	return z.a, z.b
}
