package analyTool

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/Hakuto4838/SkipListSet.git/skiplist/basic"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/coin"
	"github.com/Hakuto4838/SkipListSet.git/skiplist/tower"
)

func sampleTower() (*tower.Set[int], []int) {
	d := coin.NewHeights(map[int]int{3: 2, 7: 1})
	s := tower.New(tower.WithDecision[int](d))
	keys := []int{1, 3, 5, 7}
	for _, k := range keys {
		s.Add(k)
	}
	return s, keys
}

func TestCheckStruct(t *testing.T) {
	s, keys := sampleTower()
	if err := CheckStruct[int](s, append(keys, 2, 4, 100)); err != nil {
		t.Fatalf("CheckStruct(tower): %v", err)
	}

	b := basic.NewBasicSkipList[int](42)
	for i := 0; i < 500; i++ {
		b.Add(i * 3)
	}
	universe := make([]int, 1500)
	for i := range universe {
		universe[i] = i
	}
	if err := CheckStruct[int](b, universe); err != nil {
		t.Fatalf("CheckStruct(basic): %v", err)
	}
}

func TestCountLevel(t *testing.T) {
	s, _ := sampleTower()
	got := CountLevel[int](s)
	want := []int{4, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("CountLevel() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CountLevel()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	var buf bytes.Buffer
	PrintLevelCounts(&buf, got)
	if !strings.Contains(buf.String(), "Level  2: 1") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintSkipList(t *testing.T) {
	s, keys := sampleTower()
	var buf bytes.Buffer
	PrintSkipList[int](&buf, s, keys, 5, 10)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if want := "level 2 : -INF ->    ->  3 ->    ->    -> +INF"; lines[0] != want {
		t.Errorf("top line = %q, want %q", lines[0], want)
	}
	if want := "level 0 : -INF ->  1 ->  3 ->  5 ->  7 -> +INF"; lines[2] != want {
		t.Errorf("bottom line = %q, want %q", lines[2], want)
	}

	buf.Reset()
	PrintSkipList[int](&buf, tower.New[int](), nil, 5, 10)
	if !strings.Contains(buf.String(), "為空") {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestSkipListToCSV(t *testing.T) {
	s, keys := sampleTower()
	var buf bytes.Buffer
	if err := SkipListToCSV[int](csv.NewWriter(&buf), s, keys); err != nil {
		t.Fatalf("SkipListToCSV: %v", err)
	}
	want := "level 2,,3,,\nlevel 1,,3,,7\nlevel 0,1,3,5,7\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestAnalyzeStep(t *testing.T) {
	s := tower.New(tower.WithDecision[int](coin.Never[int]()))
	for i := 1; i <= 4; i++ {
		s.Add(i)
	}
	avg, steps := AnalyzeStep[int](s, map[int]float64{1: 0.5, 4: 0.5})
	if steps[1] != 1 || steps[4] != 4 {
		t.Errorf("steps = %v, want 1:1 4:4", steps)
	}
	if avg != 2.5 {
		t.Errorf("avg = %v, want 2.5", avg)
	}
	if avg, steps := AnalyzeStep[int](s, nil); avg != 0 || steps != nil {
		t.Errorf("empty dist = (%v, %v)", avg, steps)
	}

	var buf bytes.Buffer
	if err := steps.PrintToCSV(csv.NewWriter(&buf)); err != nil {
		t.Fatalf("PrintToCSV: %v", err)
	}
	if buf.String() != "key,1,4\nsteps,1,4\n" {
		t.Errorf("csv = %q", buf.String())
	}
}
