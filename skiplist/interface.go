package skiplist

// K 為 workload 工具使用的 key 型別
type K = int64

// Set 是有序集合家族共同的能力介面
type Set[T any] interface {
	Add(element T)
	Contains(element T) bool
	Size() int
}

// Leveled 提供層級結構的查詢，供驗證與分析使用
type Leveled[T any] interface {
	Set[T]
	// LevelCount 回傳目前已建立的層數（至少 1）
	LevelCount() int
	// ElementsOnLevel 回傳該層元素數量，不存在的層回傳 0
	ElementsOnLevel(level int) int
	// IsElementOnLevel 判斷元素是否出現在該層，不存在的層回傳 false
	IsElementOnLevel(element T, level int) bool
}

// Pathfinder 可回報搜尋路徑步數的集合
type Pathfinder[T any] interface {
	// SearchPath 回傳搜尋 element 的總步數與各層水平步數
	SearchPath(element T) (steps int, perLevel []int)
}

// LevelDecision 決定新插入的元素是否升到上一層（擲硬幣）
type LevelDecision[T any] interface {
	ShouldPromote(element T) bool
	// Clone 產生獨立的副本，複製集合時使用
	Clone() LevelDecision[T]
}
