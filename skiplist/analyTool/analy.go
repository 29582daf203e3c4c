package analyTool

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/pkg/errors"
)

// StepMap 記錄每個 key 的搜尋步數
type StepMap[T cmp.Ordered] map[T]int

// AnalyzeStep 根據 dist 提供的 key 出現機率計算平均搜尋步數
func AnalyzeStep[T cmp.Ordered](sl skiplist.Pathfinder[T], dist map[T]float64) (float64, StepMap[T]) {
	if len(dist) == 0 {
		return 0.0, nil
	}

	step := StepMap[T]{}
	var totalExpectedSteps float64
	var totalProbability float64
	for key, p := range dist {
		s, _ := sl.SearchPath(key)
		step[key] = s
		totalExpectedSteps += float64(s) * p
		totalProbability += p
	}

	if totalProbability > 0 {
		return totalExpectedSteps / totalProbability, step
	}
	return 0.0, step
}

// CountLevel 回傳每層的元素數量，index 0 為最底層
func CountLevel[T any](sl skiplist.Leveled[T]) []int {
	counts := make([]int, sl.LevelCount())
	for i := range counts {
		counts[i] = sl.ElementsOnLevel(i)
	}
	return counts
}

// PrintLevelCounts 由上而下印出每層的節點數量
func PrintLevelCounts(w io.Writer, counts []int) {
	total := 0
	if len(counts) > 0 {
		total = counts[0]
	}
	fmt.Fprintf(w, "層級節點統計 (總節點數: %d, 層數: %d):\n", total, len(counts))
	for i := len(counts) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "Level %2d: %d 個節點\n", i, counts[i])
	}
}

// CheckStruct 以 keys 為母體檢查層級結構：
// level 0 等於 size、各層數量不增、塔連續、超出範圍的層為空
func CheckStruct[T any](sl skiplist.Leveled[T], keys []T) error {
	levels := sl.LevelCount()
	if levels < 1 {
		return errors.Errorf("level count %d, want >= 1", levels)
	}
	if n := sl.ElementsOnLevel(0); n != sl.Size() {
		return errors.Errorf("level 0 holds %d elements, size is %d", n, sl.Size())
	}
	for h := 1; h < levels; h++ {
		if sl.ElementsOnLevel(h) > sl.ElementsOnLevel(h-1) {
			return errors.Errorf("level %d holds more elements than level %d", h, h-1)
		}
	}
	if sl.ElementsOnLevel(levels) != 0 || sl.ElementsOnLevel(-1) != 0 {
		return errors.New("out-of-range level is not empty")
	}

	found := 0
	for _, key := range keys {
		if sl.IsElementOnLevel(key, 0) != sl.Contains(key) {
			return errors.Errorf("level 0 membership of %v differs from Contains", key)
		}
		if sl.Contains(key) {
			found++
		}
		top := -1
		for h := 0; h < levels; h++ {
			if !sl.IsElementOnLevel(key, h) {
				break
			}
			top = h
		}
		for h := top + 1; h < levels; h++ {
			if sl.IsElementOnLevel(key, h) {
				return errors.Errorf("tower of %v has a gap below level %d", key, h)
			}
		}
	}
	if found > sl.Size() {
		return errors.Errorf("found %d distinct keys but size is %d", found, sl.Size())
	}
	return nil
}

// towerHeights 回傳每個 key 所在的最高層，不存在為 -1
func towerHeights[T any](sl skiplist.Leveled[T], keys []T) []int {
	heights := make([]int, len(keys))
	for i, key := range keys {
		heights[i] = -1
		for h := 0; h < sl.LevelCount() && sl.IsElementOnLevel(key, h); h++ {
			heights[i] = h
		}
	}
	return heights
}

// PrintSkipList 打印 skip list 的結構，keys 需為升冪且不重複
func PrintSkipList[T any](w io.Writer, sl skiplist.Leveled[T], keys []T, maxLevel, maxNodes int) {
	if sl.Size() == 0 {
		fmt.Fprintln(w, "Skip list 為空")
		return
	}
	maxLevel = min(maxLevel, sl.LevelCount()-1)
	present := make([]T, 0, min(len(keys), maxNodes))
	for _, key := range keys {
		if len(present) >= maxNodes {
			break
		}
		if sl.Contains(key) {
			present = append(present, key)
		}
	}
	heights := towerHeights(sl, present)

	for i := maxLevel; i >= 0; i-- {
		var b strings.Builder
		fmt.Fprintf(&b, "level %d : -INF ->", i)
		for j, key := range present {
			if heights[j] >= i {
				fmt.Fprintf(&b, "%3v ->", key)
			} else {
				b.WriteString("    ->")
			}
		}
		b.WriteString(" +INF")
		fmt.Fprintln(w, b.String())
	}
}

// SkipListToCSV 將結構輸出到 CSV，每層一列，空格表示該層沒有此 key
func SkipListToCSV[T any](writer *csv.Writer, sl skiplist.Leveled[T], keys []T) error {
	present := make([]T, 0, len(keys))
	for _, key := range keys {
		if sl.Contains(key) {
			present = append(present, key)
		}
	}
	heights := towerHeights(sl, present)

	for i := sl.LevelCount() - 1; i >= 0; i-- {
		row := make([]string, len(present)+1)
		row[0] = fmt.Sprintf("level %d", i)
		for j, key := range present {
			if heights[j] >= i {
				row[j+1] = fmt.Sprint(key)
			}
		}
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}
	writer.Flush()
	return writer.Error()
}

func (mp StepMap[T]) sortedKeys() []T {
	keys := make([]T, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (mp StepMap[T]) Print(w io.Writer) {
	keys := mp.sortedKeys()
	for _, k := range keys {
		fmt.Fprintf(w, "%2v  ", k)
	}
	fmt.Fprintln(w)
	for _, k := range keys {
		fmt.Fprintf(w, "%2d  ", mp[k])
	}
	fmt.Fprintln(w)
}

func (mp StepMap[T]) PrintToCSV(writer *csv.Writer) error {
	keys := mp.sortedKeys()
	header := make([]string, len(keys)+1)
	steps := make([]string, len(keys)+1)
	header[0], steps[0] = "key", "steps"
	for i, k := range keys {
		header[i+1] = fmt.Sprint(k)
		steps[i+1] = fmt.Sprintf("%d", mp[k])
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	if err := writer.Write(steps); err != nil {
		return errors.Wrap(err, "write csv steps")
	}
	writer.Flush()
	return writer.Error()
}
