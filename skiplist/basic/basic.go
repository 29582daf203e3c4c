package basic

import (
	"cmp"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
)

const maxLevel = 32

type basicNode[T any] struct {
	key  T
	next []*basicNode[T]
}

// BasicSkipList 是傳統的 forward 指標陣列 skip list
// 插入時只下降一次並快取每層的前驅，升層決策的詢問方式與 tower.Set 相同
type BasicSkipList[T any] struct {
	head     *basicNode[T]
	level    int // 使用中的層數
	size     int
	compare  func(a, b T) int
	decision skiplist.LevelDecision[T]
	maxLevel int
}

func NewBasicSkipList[T cmp.Ordered](seed uint64) *BasicSkipList[T] {
	return NewWithDecision[T](coin.NewRandom[T](seed), maxLevel)
}

// NewWithDecision 建立使用指定決策的 skip list，maxLvl 小於 1 時使用預設值
func NewWithDecision[T cmp.Ordered](decision skiplist.LevelDecision[T], maxLvl int) *BasicSkipList[T] {
	if maxLvl < 1 {
		maxLvl = maxLevel
	}
	return &BasicSkipList[T]{
		head:     newNode(*new(T), maxLvl),
		level:    1,
		compare:  cmp.Compare[T],
		decision: decision,
		maxLevel: maxLvl,
	}
}

func newNode[T any](key T, height int) *basicNode[T] {
	return &basicNode[T]{
		key:  key,
		next: make([]*basicNode[T], height),
	}
}

func (sl *BasicSkipList[T]) less(n *basicNode[T], key T) bool {
	return n != nil && sl.compare(n.key, key) < 0
}

func (sl *BasicSkipList[T]) equal(n *basicNode[T], key T) bool {
	return n != nil && sl.compare(n.key, key) == 0
}

func (sl *BasicSkipList[T]) Add(key T) {
	update := make([]*basicNode[T], sl.maxLevel)
	curr := sl.head
	for h := sl.level - 1; h >= 0; h-- {
		for sl.less(curr.next[h], key) {
			curr = curr.next[h]
		}
		update[h] = curr
	}
	if sl.equal(curr.next[0], key) {
		return
	}

	lvl := 0
	for lvl+1 < sl.maxLevel && sl.decision.ShouldPromote(key) {
		lvl++
	}
	for h := sl.level; h <= lvl; h++ {
		update[h] = sl.head
	}
	sl.level = max(sl.level, lvl+1)

	nd := newNode(key, lvl+1)
	for h := 0; h <= lvl; h++ {
		nd.next[h] = update[h].next[h]
		update[h].next[h] = nd
	}
	sl.size++
}

func (sl *BasicSkipList[T]) Contains(key T) bool {
	curr := sl.head
	for h := sl.level - 1; h >= 0; h-- {
		for sl.less(curr.next[h], key) {
			curr = curr.next[h]
		}
		if sl.equal(curr.next[h], key) {
			return true
		}
	}
	return false
}

func (sl *BasicSkipList[T]) Size() int {
	return sl.size
}

func (sl *BasicSkipList[T]) LevelCount() int {
	return sl.level
}

func (sl *BasicSkipList[T]) ElementsOnLevel(level int) int {
	if level < 0 || level >= sl.level {
		return 0
	}
	n := 0
	for nd := sl.head.next[level]; nd != nil; nd = nd.next[level] {
		n++
	}
	return n
}

func (sl *BasicSkipList[T]) IsElementOnLevel(key T, level int) bool {
	if level < 0 || level >= sl.level {
		return false
	}
	for nd := sl.head.next[level]; nd != nil; nd = nd.next[level] {
		if c := sl.compare(nd.key, key); c >= 0 {
			return c == 0
		}
	}
	return false
}

// SearchPath 與 tower.Set 使用相同的計步方式
func (sl *BasicSkipList[T]) SearchPath(key T) (int, []int) {
	perLevel := make([]int, sl.level)
	steps := 0
	curr := sl.head
	for h := sl.level - 1; h >= 0; h-- {
		n := 0
		for sl.less(curr.next[h], key) {
			curr = curr.next[h]
			n++
		}
		if sl.equal(curr.next[h], key) {
			perLevel[h] = n + 1
			return steps + n + 1, perLevel
		}
		perLevel[h] = n
		steps += n
		if h > 0 {
			steps++
		}
	}
	return steps, perLevel
}
