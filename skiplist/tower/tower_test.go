package tower

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
)

func TestSetInterface(t *testing.T) {
	var _ skiplist.Set[int] = (*Set[int])(nil)
	var _ skiplist.Leveled[int] = (*Set[int])(nil)
	var _ skiplist.Pathfinder[int] = (*Set[int])(nil)
}

func TestEmptySet(t *testing.T) {
	s := New[int]()
	if s.Size() != 0 {
		t.Errorf("Size() = %d, want 0", s.Size())
	}
	if s.LevelCount() != 1 {
		t.Errorf("LevelCount() = %d, want 1", s.LevelCount())
	}
	if s.ElementsOnLevel(0) != 0 {
		t.Errorf("ElementsOnLevel(0) = %d, want 0", s.ElementsOnLevel(0))
	}
	if s.Contains(0) {
		t.Error("empty set contains 0")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSetBasic(t *testing.T) {
	s := New(WithSeed[int](42))
	for _, v := range []int{5, 1, 9, 3} {
		s.Add(v)
	}

	if s.Size() != 4 {
		t.Errorf("Size() = %d, want 4", s.Size())
	}
	if !s.Contains(1) {
		t.Error("Contains(1) = false, want true")
	}
	if s.Contains(7) {
		t.Error("Contains(7) = true, want false")
	}
	if s.ElementsOnLevel(0) != 4 {
		t.Errorf("ElementsOnLevel(0) = %d, want 4", s.ElementsOnLevel(0))
	}
	if s.LevelCount() < 1 {
		t.Errorf("LevelCount() = %d, want >= 1", s.LevelCount())
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestAddIdempotent(t *testing.T) {
	s := New(WithDecision[int](coin.Always[int]()), WithMaxLevel[int](4))
	s.Add(8)
	levels := s.LevelCount()
	s.Add(8)
	s.Add(8)
	if s.Size() != 1 {
		t.Errorf("Size() = %d after duplicate adds, want 1", s.Size())
	}
	if s.LevelCount() != levels {
		t.Errorf("LevelCount() changed from %d to %d on duplicate add", levels, s.LevelCount())
	}
	for h := 0; h < s.LevelCount(); h++ {
		if s.ElementsOnLevel(h) != 1 {
			t.Errorf("ElementsOnLevel(%d) = %d, want 1", h, s.ElementsOnLevel(h))
		}
	}
}

// 永遠升層時，每個元素都出現在每一層
func TestAlwaysPromote(t *testing.T) {
	s := New(WithDecision[int](coin.Always[int]()), WithMaxLevel[int](3))
	for _, v := range []int{1, 2, 3} {
		s.Add(v)
	}
	if s.LevelCount() != 3 {
		t.Fatalf("LevelCount() = %d, want 3", s.LevelCount())
	}
	for h := 0; h < s.LevelCount(); h++ {
		if got := s.ElementsOnLevel(h); got != 3 {
			t.Errorf("ElementsOnLevel(%d) = %d, want 3", h, got)
		}
		for _, v := range []int{1, 2, 3} {
			if !s.IsElementOnLevel(v, h) {
				t.Errorf("IsElementOnLevel(%d, %d) = false", v, h)
			}
		}
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestAlwaysPromoteDefaultMaxLevel(t *testing.T) {
	s := New(WithDecision[int](coin.Always[int]()))
	for _, v := range []int{1, 2, 3} {
		s.Add(v)
	}
	if s.LevelCount() != s.MaxLevel() {
		t.Fatalf("LevelCount() = %d, want %d", s.LevelCount(), s.MaxLevel())
	}
	for h := 0; h < s.LevelCount(); h++ {
		if got := s.ElementsOnLevel(h); got != 3 {
			t.Errorf("ElementsOnLevel(%d) = %d, want 3", h, got)
		}
	}
}

func TestNeverPromote(t *testing.T) {
	s := New(WithDecision[int](coin.Never[int]()))
	const n = 200
	for i := n; i > 0; i-- {
		s.Add(i)
	}
	if s.LevelCount() != 1 {
		t.Errorf("LevelCount() = %d, want 1", s.LevelCount())
	}
	if s.ElementsOnLevel(0) != n {
		t.Errorf("ElementsOnLevel(0) = %d, want %d", s.ElementsOnLevel(0), n)
	}
}

func TestHeightsPlacement(t *testing.T) {
	d := coin.NewHeights(map[int]int{5: 2, 9: 1})
	s := New(WithDecision[int](d))
	for _, v := range []int{5, 1, 9, 3} {
		s.Add(v)
	}

	if s.LevelCount() != 3 {
		t.Fatalf("LevelCount() = %d, want 3", s.LevelCount())
	}
	want := []int{4, 2, 1}
	for h, w := range want {
		if got := s.ElementsOnLevel(h); got != w {
			t.Errorf("ElementsOnLevel(%d) = %d, want %d", h, got, w)
		}
	}
	cases := []struct {
		v, level int
		want     bool
	}{
		{5, 2, true}, {5, 1, true}, {9, 1, true}, {9, 2, false},
		{1, 0, true}, {1, 1, false}, {3, 1, false}, {7, 0, false},
	}
	for _, c := range cases {
		if got := s.IsElementOnLevel(c.v, c.level); got != c.want {
			t.Errorf("IsElementOnLevel(%d, %d) = %v, want %v", c.v, c.level, got, c.want)
		}
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// 新元素的上層前驅要往左找到最近有 up 連結的節點
func TestPromoteFindsAncestor(t *testing.T) {
	d := coin.NewHeights(map[int]int{10: 2, 40: 1, 30: 2})
	s := New(WithDecision[int](d))
	for _, v := range []int{10, 20, 40, 30} {
		s.Add(v)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !s.IsElementOnLevel(30, 2) || !s.IsElementOnLevel(10, 2) || s.IsElementOnLevel(40, 2) {
		t.Error("unexpected level 2 membership")
	}
	if got := s.ElementsOnLevel(1); got != 3 {
		t.Errorf("ElementsOnLevel(1) = %d, want 3", got)
	}
}

func TestScriptConsultedOncePerLevel(t *testing.T) {
	d := coin.NewScript[int](true, false, true, true, false)
	s := New(WithDecision[int](d))
	s.Add(10)
	s.Add(20)
	if d.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", d.Remaining())
	}
	s.Add(30)
	if s.LevelCount() != 3 {
		t.Fatalf("LevelCount() = %d, want 3", s.LevelCount())
	}
	if !s.IsElementOnLevel(10, 1) || s.IsElementOnLevel(10, 2) {
		t.Error("10 should reach level 1 only")
	}
	if !s.IsElementOnLevel(20, 2) {
		t.Error("20 should reach level 2")
	}
	if s.IsElementOnLevel(30, 1) {
		t.Error("30 should stay on level 0")
	}
}

// 到達 maxLevel 時不再詢問升層
func TestMaxLevelStopsConsulting(t *testing.T) {
	d := coin.NewScript[int](true, true, true, true)
	s := New(WithDecision[int](d), WithMaxLevel[int](2))
	s.Add(1)
	if d.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3", d.Remaining())
	}
	if s.LevelCount() != 2 {
		t.Errorf("LevelCount() = %d, want 2", s.LevelCount())
	}
}

func TestOutOfRangeLevels(t *testing.T) {
	s := New(WithDecision[int](coin.Never[int]()))
	s.Add(1)
	for _, lv := range []int{-1, 1, 5} {
		if s.ElementsOnLevel(lv) != 0 {
			t.Errorf("ElementsOnLevel(%d) = %d, want 0", lv, s.ElementsOnLevel(lv))
		}
		if s.IsElementOnLevel(1, lv) {
			t.Errorf("IsElementOnLevel(1, %d) = true, want false", lv)
		}
	}
}

func TestRandomProperties(t *testing.T) {
	s := New(WithSeed[int](7))
	r := rand.New(rand.NewSource(42))
	added := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := r.Intn(20000)
		s.Add(v)
		added[v] = true
	}

	if s.Size() != len(added) {
		t.Fatalf("Size() = %d, want %d", s.Size(), len(added))
	}
	for v := -10; v < 20010; v++ {
		if s.Contains(v) != added[v] {
			t.Fatalf("Contains(%d) = %v, want %v", v, s.Contains(v), added[v])
		}
		if s.IsElementOnLevel(v, 0) != s.Contains(v) {
			t.Fatalf("IsElementOnLevel(%d, 0) differs from Contains", v)
		}
	}
	if s.ElementsOnLevel(0) != s.Size() {
		t.Errorf("ElementsOnLevel(0) = %d, want %d", s.ElementsOnLevel(0), s.Size())
	}
	for h := 1; h <= s.LevelCount(); h++ {
		if s.ElementsOnLevel(h) > s.ElementsOnLevel(h-1) {
			t.Errorf("level %d has more elements than level %d", h, h-1)
		}
	}
	if s.ElementsOnLevel(s.LevelCount()) != 0 {
		t.Error("level above the top must be empty")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	t.Logf("size=%d levels=%d", s.Size(), s.LevelCount())
}

func TestNewFuncComparator(t *testing.T) {
	fold := func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) }
	s := NewFunc(fold, WithSeed[string](3))
	for _, w := range []string{"Go", "skip", "LIST", "go", "List"} {
		s.Add(w)
	}
	if s.Size() != 3 {
		t.Errorf("Size() = %d, want 3", s.Size())
	}
	if !s.Contains("GO") || !s.Contains("Skip") {
		t.Error("case-folded lookups should succeed")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSearchPath(t *testing.T) {
	s := New(WithDecision[int](coin.Never[int]()))
	for i := 1; i <= 5; i++ {
		s.Add(i)
	}
	if steps, per := s.SearchPath(3); steps != 3 || per[0] != 3 {
		t.Errorf("SearchPath(3) = (%d, %v), want (3, [3])", steps, per)
	}
	if steps, _ := s.SearchPath(10); steps != 5 {
		t.Errorf("SearchPath(10) = %d, want 5", steps)
	}

	tall := New(WithDecision[int](coin.Always[int]()), WithMaxLevel[int](2))
	for i := 1; i <= 3; i++ {
		tall.Add(i)
	}
	steps, per := tall.SearchPath(3)
	if steps != 3 || per[1] != 3 || per[0] != 0 {
		t.Errorf("SearchPath(3) = (%d, %v), want (3, [0 3])", steps, per)
	}
}
