package tower

import (
	"cmp"
	randv2 "math/rand/v2"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
)

const defaultMaxLevel = 32

// Set 是以多層雙向串列組成的 skip list 集合
// 每層頭尾各有一個哨兵，同一元素在各層的節點以 up/down 串成塔
// 非並行安全，寫入時呼叫端需自行序列化所有存取
type Set[T any] struct {
	levels   []*level[T] // levels[0] 為最底層，包含所有元素
	size     int
	compare  func(a, b T) int
	decision skiplist.LevelDecision[T]
	maxLevel int
}

type Option[T any] func(*Set[T])

// WithDecision 指定升層決策，nil 會被忽略
func WithDecision[T any](d skiplist.LevelDecision[T]) Option[T] {
	return func(s *Set[T]) {
		if d != nil {
			s.decision = d
		}
	}
}

// WithSeed 使用指定種子的公平硬幣
func WithSeed[T any](seed uint64) Option[T] {
	return func(s *Set[T]) {
		s.decision = coin.NewRandom[T](seed)
	}
}

// WithMaxLevel 限制最多的層數，小於 1 時忽略
func WithMaxLevel[T any](n int) Option[T] {
	return func(s *Set[T]) {
		if n >= 1 {
			s.maxLevel = n
		}
	}
}

// New 建立以 cmp.Compare 排序的空集合
func New[T cmp.Ordered](opts ...Option[T]) *Set[T] {
	return NewFunc(cmp.Compare[T], opts...)
}

// NewFunc 建立以 compare 排序的空集合，compare 必須是全序
func NewFunc[T any](compare func(a, b T) int, opts ...Option[T]) *Set[T] {
	s := &Set[T]{
		levels:   []*level[T]{newLevel[T]()},
		compare:  compare,
		maxLevel: defaultMaxLevel,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.decision == nil {
		s.decision = coin.NewRandom[T](randv2.Uint64())
	}
	return s
}

func (s *Set[T]) top() int {
	return len(s.levels) - 1
}

// findPredecessor 從最高層往下走，回傳 level 0 上最後一個小於 key 的節點
func (s *Set[T]) findPredecessor(key Key[T]) int32 {
	cur := headIdx
	for h := s.top(); ; h-- {
		nodes := s.levels[h].nodes
		for nodes[nodes[cur].next].key.Less(key, s.compare) {
			cur = nodes[cur].next
		}
		if h == 0 {
			return cur
		}
		cur = nodes[cur].down
	}
}

// addLevel 在最上方建立只有哨兵的新層，並與原本頂層的哨兵垂直相連
func (s *Set[T]) addLevel() {
	lv := newLevel[T]()
	prev := s.levels[s.top()]
	lv.nodes[headIdx].down = headIdx
	lv.nodes[tailIdx].down = tailIdx
	prev.nodes[headIdx].up = headIdx
	prev.nodes[tailIdx].up = tailIdx
	s.levels = append(s.levels, lv)
}

// Add 插入元素，已存在時不做任何事
func (s *Set[T]) Add(element T) {
	key := Normal(element)
	pred := s.findPredecessor(key)
	bottom := s.levels[0]
	if bottom.nodes[bottom.nodes[pred].next].key.Equal(key, s.compare) {
		return
	}

	below := bottom.insertAfter(pred, key)
	s.size++

	// 升層：每層詢問一次，達到 maxLevel 後不再詢問
	for h := 0; h+1 < s.maxLevel && s.decision.ShouldPromote(element); h++ {
		if h == s.top() {
			s.addLevel()
		}
		lower := s.levels[h]
		p := lower.nodes[below].prev
		for lower.nodes[p].up == none {
			p = lower.nodes[p].prev
		}
		upper := s.levels[h+1]
		idx := upper.insertAfter(lower.nodes[p].up, key)
		upper.nodes[idx].down = below
		lower.nodes[below].up = idx
		below = idx
	}
}

// Contains 與 IsElementOnLevel(element, 0) 等價，但以期望 O(log n) 的下降搜尋完成
func (s *Set[T]) Contains(element T) bool {
	key := Normal(element)
	pred := s.findPredecessor(key)
	nodes := s.levels[0].nodes
	return nodes[nodes[pred].next].key.Equal(key, s.compare)
}

func (s *Set[T]) Size() int {
	return s.size
}

func (s *Set[T]) LevelCount() int {
	return len(s.levels)
}

func (s *Set[T]) MaxLevel() int {
	return s.maxLevel
}

// ElementsOnLevel 計算該層哨兵之間的節點數，不存在的層回傳 0
func (s *Set[T]) ElementsOnLevel(level int) int {
	if level < 0 || level > s.top() {
		return 0
	}
	return s.levels[level].count()
}

// IsElementOnLevel 在指定層做水平掃描
func (s *Set[T]) IsElementOnLevel(element T, level int) bool {
	if level < 0 || level > s.top() {
		return false
	}
	key := Normal(element)
	nodes := s.levels[level].nodes
	for i := nodes[headIdx].next; i != tailIdx; i = nodes[i].next {
		c := nodes[i].key.Compare(key, s.compare)
		if c == 0 {
			return true
		}
		if c > 0 {
			break
		}
	}
	return false
}

// SearchPath 計算搜尋 element 的步數：每次水平前進算一步，每次下降算一步
// 在某層找到時立即停止
func (s *Set[T]) SearchPath(element T) (steps int, perLevel []int) {
	key := Normal(element)
	perLevel = make([]int, len(s.levels))
	cur := headIdx
	for h := s.top(); h >= 0; h-- {
		nodes := s.levels[h].nodes
		n := 0
		for nodes[nodes[cur].next].key.Less(key, s.compare) {
			cur = nodes[cur].next
			n++
		}
		if nodes[nodes[cur].next].key.Equal(key, s.compare) {
			n++
			perLevel[h] = n
			return steps + n, perLevel
		}
		perLevel[h] = n
		steps += n
		if h > 0 {
			steps++
			cur = nodes[cur].down
		}
	}
	return steps, perLevel
}
