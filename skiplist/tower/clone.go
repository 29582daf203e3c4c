package tower

import (
	"github.com/pkg/errors"
)

// Clone 建立完全獨立的深拷貝
// 由 level 0 往上逐層複製，每層的索引維持不變，
// 因此上層的 down 直接指向已複製好的下層節點
func (s *Set[T]) Clone() *Set[T] {
	cp := &Set[T]{
		levels:   make([]*level[T], 0, len(s.levels)),
		size:     s.size,
		compare:  s.compare,
		decision: s.decision.Clone(),
		maxLevel: s.maxLevel,
	}
	for _, lv := range s.levels {
		cp.levels = append(cp.levels, lv.clone())
	}
	return cp
}

// CopyFrom 以 src 的深拷貝取代目前內容，src 為自己時不做任何事
func (s *Set[T]) CopyFrom(src *Set[T]) {
	if s == src {
		return
	}
	cp := src.Clone()
	s.Reset()
	*s = *cp
}

// Move 把節點與計數轉移給新的集合，原集合變為空集合但仍可繼續使用
func (s *Set[T]) Move() *Set[T] {
	dst := &Set[T]{}
	dst.MoveFrom(s)
	return dst
}

// MoveFrom 取走 src 的節點與計數，src 為自己時不做任何事
func (s *Set[T]) MoveFrom(src *Set[T]) {
	if s == src {
		return
	}
	if s.levels != nil {
		s.Reset()
	}
	s.levels, s.size = src.levels, src.size
	s.compare, s.maxLevel = src.compare, src.maxLevel
	s.decision = src.decision

	src.levels = []*level[T]{newLevel[T]()}
	src.size = 0
	src.decision = s.decision.Clone()
}

// Reset 釋放每一層擁有的節點（含哨兵）各一次，並回到只有一層的空集合
func (s *Set[T]) Reset() {
	for _, lv := range s.levels {
		lv.release()
	}
	clear(s.levels)
	s.levels = []*level[T]{newLevel[T]()}
	s.size = 0
}

// Validate 檢查所有結構不變量，回傳第一個違反的項目
func (s *Set[T]) Validate() error {
	if len(s.levels) == 0 {
		return errors.New("no levels")
	}
	if len(s.levels) > s.maxLevel {
		return errors.Errorf("level count %d exceeds max level %d", len(s.levels), s.maxLevel)
	}
	for h, lv := range s.levels {
		if err := s.validateLevel(h, lv); err != nil {
			return errors.Wrapf(err, "level %d", h)
		}
	}
	if n := s.levels[0].count(); n != s.size {
		return errors.Errorf("size %d but level 0 holds %d elements", s.size, n)
	}
	return nil
}

func (s *Set[T]) validateLevel(h int, lv *level[T]) error {
	nodes := lv.nodes
	if len(nodes) < 2 {
		return errors.New("missing sentinels")
	}
	if nodes[headIdx].key.Kind() != KindNegInf || nodes[tailIdx].key.Kind() != KindPosInf {
		return errors.New("sentinels out of place")
	}
	var below, above *level[T]
	if h > 0 {
		below = s.levels[h-1]
	}
	if h < s.top() {
		above = s.levels[h+1]
	}
	if (below == nil) != (nodes[headIdx].down == none) || (below == nil) != (nodes[tailIdx].down == none) {
		return errors.New("sentinel down link mismatch")
	}
	if (above == nil) != (nodes[headIdx].up == none) || (above == nil) != (nodes[tailIdx].up == none) {
		return errors.New("sentinel up link mismatch")
	}

	seen := 0
	for i := headIdx; i != tailIdx; {
		next := nodes[i].next
		if next == none || int(next) >= len(nodes) {
			return errors.Errorf("broken next link at node %d", i)
		}
		if nodes[next].prev != i {
			return errors.Errorf("prev of node %d does not point back to %d", next, i)
		}
		if !nodes[i].key.Less(nodes[next].key, s.compare) {
			return errors.Errorf("keys not strictly increasing at node %d", next)
		}
		if next != tailIdx {
			seen++
			if err := s.validateTower(nodes, next, below, above); err != nil {
				return err
			}
		}
		if seen > len(nodes)-2 {
			return errors.New("cycle detected")
		}
		i = next
	}
	if seen != len(nodes)-2 {
		return errors.Errorf("%d nodes unreachable", len(nodes)-2-seen)
	}
	return nil
}

// validateTower 檢查單一節點的垂直連結是否對稱且 key 一致
func (s *Set[T]) validateTower(nodes []node[T], i int32, below, above *level[T]) error {
	n := nodes[i]
	if below != nil {
		if n.down == none {
			return errors.Errorf("node %d breaks tower continuity", i)
		}
		d := below.nodes[n.down]
		if d.up != i || !d.key.Equal(n.key, s.compare) {
			return errors.Errorf("node %d has an inconsistent down link", i)
		}
	} else if n.down != none {
		return errors.Errorf("bottom node %d has a down link", i)
	}
	if n.up != none {
		if above == nil {
			return errors.Errorf("top node %d has an up link", i)
		}
		u := above.nodes[n.up]
		if u.down != i || !u.key.Equal(n.key, s.compare) {
			return errors.Errorf("node %d has an inconsistent up link", i)
		}
	}
	return nil
}
