package coin

import (
	"github.com/Hakuto4838/SkipListSet.git/skiplist"
)

// Fixed 永遠回傳同一個答案
type Fixed[T any] struct {
	promote bool
}

// Always 每次都升層，塔高只受 MaxLevel 限制
func Always[T any]() Fixed[T] {
	return Fixed[T]{promote: true}
}

// Never 從不升層，所有元素只在 level 0
func Never[T any]() Fixed[T] {
	return Fixed[T]{promote: false}
}

func (f Fixed[T]) ShouldPromote(T) bool {
	return f.promote
}

func (f Fixed[T]) Clone() skiplist.LevelDecision[T] {
	return f
}

// Script 依序重播預先給定的答案，用完後一律回傳 false
type Script[T any] struct {
	answers []bool
	pos     int
}

func NewScript[T any](answers ...bool) *Script[T] {
	cp := make([]bool, len(answers))
	copy(cp, answers)
	return &Script[T]{answers: cp}
}

func (s *Script[T]) ShouldPromote(T) bool {
	if s.pos >= len(s.answers) {
		return false
	}
	ans := s.answers[s.pos]
	s.pos++
	return ans
}

// Clone 連同目前的位置一起複製
func (s *Script[T]) Clone() skiplist.LevelDecision[T] {
	cp := NewScript[T](s.answers...)
	cp.pos = s.pos
	return cp
}

// Remaining 回傳尚未使用的答案數
func (s *Script[T]) Remaining() int {
	return len(s.answers) - s.pos
}

// Heights 讓每個元素剛好升 heights[e] 層，未列出的元素不升層
type Heights[T comparable] struct {
	heights map[T]int
	last    T
	used    int
	started bool
}

func NewHeights[T comparable](heights map[T]int) *Heights[T] {
	cp := make(map[T]int, len(heights))
	for k, v := range heights {
		cp[k] = v
	}
	return &Heights[T]{heights: cp}
}

func (h *Heights[T]) ShouldPromote(element T) bool {
	if !h.started || element != h.last {
		h.last = element
		h.used = 0
		h.started = true
	}
	if h.used >= h.heights[element] {
		return false
	}
	h.used++
	return true
}

func (h *Heights[T]) Clone() skiplist.LevelDecision[T] {
	cp := NewHeights(h.heights)
	cp.last, cp.used, cp.started = h.last, h.used, h.started
	return cp
}
