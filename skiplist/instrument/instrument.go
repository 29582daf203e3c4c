package instrument

import (
	"strconv"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomePromote = "promote"
	OutcomeStay    = "stay"
)

// NewDecisionCounter 建立以 outcome 為 label 的計數器
func NewDecisionCounter(name string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: "Level decisions made during insertion, by outcome.",
	}, []string{"outcome"})
}

// CountingDecision 包裝另一個決策並記錄每次的結果
type CountingDecision[T any] struct {
	inner   skiplist.LevelDecision[T]
	counter *prometheus.CounterVec
}

func NewCountingDecision[T any](inner skiplist.LevelDecision[T], counter *prometheus.CounterVec) *CountingDecision[T] {
	return &CountingDecision[T]{inner: inner, counter: counter}
}

func (d *CountingDecision[T]) ShouldPromote(element T) bool {
	ok := d.inner.ShouldPromote(element)
	if ok {
		d.counter.WithLabelValues(OutcomePromote).Inc()
	} else {
		d.counter.WithLabelValues(OutcomeStay).Inc()
	}
	return ok
}

// Clone 複製內部決策，計數器共用
func (d *CountingDecision[T]) Clone() skiplist.LevelDecision[T] {
	return NewCountingDecision(d.inner.Clone(), d.counter)
}

// SetCollector 在每次 scrape 時讀取集合的大小與各層元素數
// 集合非並行安全，scrape 需與寫入序列化
type SetCollector[T any] struct {
	set       skiplist.Leveled[T]
	sizeDesc  *prometheus.Desc
	levelDesc *prometheus.Desc
	countDesc *prometheus.Desc
}

func NewSetCollector[T any](name string, set skiplist.Leveled[T]) *SetCollector[T] {
	return &SetCollector[T]{
		set:       set,
		sizeDesc:  prometheus.NewDesc(name+"_size", "Distinct elements in the set.", nil, nil),
		levelDesc: prometheus.NewDesc(name+"_levels", "Materialized levels.", nil, nil),
		countDesc: prometheus.NewDesc(name+"_level_elements", "Elements stored on a level.", []string{"level"}, nil),
	}
}

func (c *SetCollector[T]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sizeDesc
	ch <- c.levelDesc
	ch <- c.countDesc
}

func (c *SetCollector[T]) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(c.set.Size()))
	levels := c.set.LevelCount()
	ch <- prometheus.MustNewConstMetric(c.levelDesc, prometheus.GaugeValue, float64(levels))
	for h := 0; h < levels; h++ {
		ch <- prometheus.MustNewConstMetric(c.countDesc, prometheus.GaugeValue,
			float64(c.set.ElementsOnLevel(h)), strconv.Itoa(h))
	}
}
