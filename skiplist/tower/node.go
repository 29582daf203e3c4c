package tower

const (
	none    = int32(-1)
	headIdx = int32(0) // -INF 哨兵在每層 arena 的位置
	tailIdx = int32(1) // +INF 哨兵
)

// node 是某個 key 在某一層的出現
// prev/next 為同層 arena 的索引，up/down 為相鄰層 arena 的索引
type node[T any] struct {
	key  Key[T]
	prev int32
	next int32
	up   int32
	down int32
}

// level 擁有自己的所有節點，垂直連結只用於導航
type level[T any] struct {
	nodes []node[T]
}

// newLevel 建立只有兩個哨兵的空層
func newLevel[T any]() *level[T] {
	lv := &level[T]{nodes: make([]node[T], 2, 8)}
	lv.nodes[headIdx] = node[T]{key: NegInf[T](), prev: none, next: tailIdx, up: none, down: none}
	lv.nodes[tailIdx] = node[T]{key: PosInf[T](), prev: headIdx, next: none, up: none, down: none}
	return lv
}

// insertAfter 在 pred 後面插入新節點並回傳其索引
func (lv *level[T]) insertAfter(pred int32, key Key[T]) int32 {
	idx := int32(len(lv.nodes))
	succ := lv.nodes[pred].next
	lv.nodes = append(lv.nodes, node[T]{key: key, prev: pred, next: succ, up: none, down: none})
	lv.nodes[pred].next = idx
	lv.nodes[succ].prev = idx
	return idx
}

// count 走訪計算哨兵之間的節點數
func (lv *level[T]) count() int {
	n := 0
	for i := lv.nodes[headIdx].next; i != tailIdx; i = lv.nodes[i].next {
		n++
	}
	return n
}

// clone 複製整層 arena，索引在新舊之間不變
func (lv *level[T]) clone() *level[T] {
	cp := &level[T]{nodes: make([]node[T], len(lv.nodes))}
	copy(cp.nodes, lv.nodes)
	return cp
}

// release 清空節點，讓元素可被回收
func (lv *level[T]) release() {
	clear(lv.nodes)
	lv.nodes = nil
}
