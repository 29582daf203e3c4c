package coin

import (
	randv2 "math/rand/v2"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/valyala/fastrand"
)

const probability = 0.5

// Random 以帶種子的 PCG 產生器擲硬幣，每次呼叫彼此獨立
type Random[T any] struct {
	rng *randv2.Rand
	p   float64
}

// NewRandom 建立機率 0.5 的硬幣
func NewRandom[T any](seed uint64) *Random[T] {
	return NewRandomWithProbability[T](seed, probability)
}

// NewRandomWithProbability 建立升層機率為 p 的硬幣，p 不在 (0,1) 時使用 0.5
func NewRandomWithProbability[T any](seed uint64, p float64) *Random[T] {
	if p <= 0 || p >= 1 {
		p = probability
	}
	return &Random[T]{
		rng: randv2.New(randv2.NewPCG(seed, 0)),
		p:   p,
	}
}

func (r *Random[T]) ShouldPromote(T) bool {
	return r.rng.Float64() < r.p
}

// Clone 由目前的亂數流取出新種子
func (r *Random[T]) Clone() skiplist.LevelDecision[T] {
	return NewRandomWithProbability[T](r.rng.Uint64(), r.p)
}

// Probability 回傳升層機率
func (r *Random[T]) Probability() float64 {
	return r.p
}

// Fast 使用 fastrand 的全域狀態擲公平硬幣，無法指定種子
type Fast[T any] struct{}

func NewFast[T any]() Fast[T] {
	return Fast[T]{}
}

func (Fast[T]) ShouldPromote(T) bool {
	return fastrand.Uint32()&1 == 1
}

func (f Fast[T]) Clone() skiplist.LevelDecision[T] {
	return f
}
