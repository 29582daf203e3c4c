package datastream

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	randv2 "math/rand/v2"
	"os"
	"sort"

	"github.com/Hakuto4838/SkipListSet.git/skiplist"
	"github.com/pkg/errors"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "SLSET001"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   DistCount
// 重複 DistCount 次：
//   int64   Key
//   float64 Weight
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OperationType (0=Contains,1=Add)
//   int64   Key

var (
	workloadMagic   = [8]byte{'S', 'L', 'S', 'E', 'T', '0', '0', '1'}
	workloadVersion = uint16(1)
)

// Workload 是 key 分布與操作序列
type Workload struct {
	Dist map[skiplist.K]float64
	Ops  []Operation
}

// WorkloadSpec 描述要產生的 workload
//   - N: key 數量
//   - S, V: Zipf 參數，S = 0 時使用均勻分布；否則需滿足 S > 1、V >= 1
//   - K: 操作數量
//   - AddRatio: 每筆操作為 Add 的機率，其餘為 Contains
//   - SimpleKey: key 直接使用 0..N-1，否則為不重複的隨機 uint32
type WorkloadSpec struct {
	N         int
	S, V      float64
	Seed      uint64
	K         int
	AddRatio  float64
	SimpleKey bool
}

func (spec WorkloadSpec) validate() error {
	if spec.N <= 0 {
		return errors.Errorf("invalid n: %d", spec.N)
	}
	if spec.K < 0 {
		return errors.Errorf("invalid k: %d", spec.K)
	}
	if spec.S != 0 && (spec.S <= 1.0 || spec.V < 1.0) {
		return errors.Errorf("invalid zipf params: s=%v must >1, v=%v must >=1", spec.S, spec.V)
	}
	if spec.AddRatio < 0 || spec.AddRatio > 1 {
		return errors.Errorf("addRatio (%v) must be between 0.0 and 1.0", spec.AddRatio)
	}
	return nil
}

// GenerateWorkload 依 spec 產生 workload，相同 spec 會得到相同結果
func GenerateWorkload(spec WorkloadSpec) (*Workload, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	r := randv2.New(randv2.NewPCG(spec.Seed, 0))

	// rank -> key 的隨機對應（不重複）
	rankToKey := make([]skiplist.K, spec.N)
	if spec.SimpleKey {
		for i := range rankToKey {
			rankToKey[i] = skiplist.K(i)
		}
		r.Shuffle(len(rankToKey), func(i, j int) { rankToKey[i], rankToKey[j] = rankToKey[j], rankToKey[i] })
	} else {
		check := make(map[skiplist.K]struct{}, spec.N)
		for i := range rankToKey {
			key := skiplist.K(r.Uint32())
			for _, ok := check[key]; ok; _, ok = check[key] {
				key = skiplist.K(r.Uint32())
			}
			rankToKey[i] = key
			check[key] = struct{}{}
		}
	}

	weights := make([]float64, spec.N)
	var sumW float64
	for i := range weights {
		if spec.S == 0 {
			weights[i] = 1
		} else {
			weights[i] = 1.0 / math.Pow(spec.V+float64(i), spec.S)
		}
		sumW += weights[i]
	}
	dist := make(map[skiplist.K]float64, spec.N)
	for rank, key := range rankToKey {
		dist[key] = weights[rank] / sumW
	}

	var nextRank func() int
	if spec.S == 0 {
		nextRank = func() int { return r.IntN(spec.N) }
	} else {
		zipf := randv2.NewZipf(r, spec.S, spec.V, uint64(spec.N-1))
		nextRank = func() int { return int(zipf.Uint64()) }
	}

	ops := make([]Operation, spec.K)
	for i := range ops {
		op := OpContains
		if r.Float64() < spec.AddRatio {
			op = OpAdd
		}
		ops[i] = Operation{Type: op, Key: rankToKey[nextRank()]}
	}
	return &Workload{Dist: dist, Ops: ops}, nil
}

// WriteWorkload 將 workload 以二進位格式寫出，分布依 key 升冪輸出以確保可重現
func WriteWorkload(w io.Writer, wl *Workload) error {
	if wl == nil {
		return errors.New("nil workload")
	}
	bw := bufio.NewWriter(w)
	write := func(v any) error {
		return binary.Write(bw, binary.LittleEndian, v)
	}

	if _, err := bw.Write(workloadMagic[:]); err != nil {
		return errors.Wrap(err, "write magic")
	}
	if err := write(workloadVersion); err != nil {
		return errors.Wrap(err, "write version")
	}
	if err := write(uint16(0)); err != nil { // reserved
		return errors.Wrap(err, "write reserved")
	}

	keys := make([]skiplist.K, 0, len(wl.Dist))
	for k := range wl.Dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	if err := write(uint32(len(keys))); err != nil {
		return errors.Wrap(err, "write dist count")
	}
	for _, k := range keys {
		if err := write(int64(k)); err != nil {
			return errors.Wrap(err, "write dist key")
		}
		if err := write(wl.Dist[k]); err != nil {
			return errors.Wrap(err, "write dist weight")
		}
	}

	if err := write(uint64(len(wl.Ops))); err != nil {
		return errors.Wrap(err, "write op count")
	}
	for i, op := range wl.Ops {
		if err := write(uint8(op.Type)); err != nil {
			return errors.Wrapf(err, "write op %d", i)
		}
		if err := write(int64(op.Key)); err != nil {
			return errors.Wrapf(err, "write op %d", i)
		}
	}
	return errors.Wrap(bw.Flush(), "flush workload")
}

// WriteWorkloadFile 將 workload 寫入檔案
func WriteWorkloadFile(filename string, wl *Workload) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "create workload file")
	}
	if err := WriteWorkload(file, wl); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "close workload file")
}

// ReadWorkload 讀取二進位 workload
func ReadWorkload(r io.Reader) (*Workload, error) {
	br := bufio.NewReader(r)
	read := func(v any) error {
		return binary.Read(br, binary.LittleEndian, v)
	}

	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, errors.Wrap(err, "read magic")
	}
	if magic != workloadMagic {
		return nil, errors.Errorf("invalid magic: %q", magic)
	}
	var ver, reserved uint16
	if err := read(&ver); err != nil {
		return nil, errors.Wrap(err, "read version")
	}
	if ver != workloadVersion {
		return nil, errors.Errorf("unsupported version: %d", ver)
	}
	if err := read(&reserved); err != nil {
		return nil, errors.Wrap(err, "read reserved")
	}

	var distCount uint32
	if err := read(&distCount); err != nil {
		return nil, errors.Wrap(err, "read dist count")
	}
	dist := make(map[skiplist.K]float64, distCount)
	for i := uint32(0); i < distCount; i++ {
		var key int64
		var weight float64
		if err := read(&key); err != nil {
			return nil, errors.Wrapf(err, "read dist entry %d", i)
		}
		if err := read(&weight); err != nil {
			return nil, errors.Wrapf(err, "read dist entry %d", i)
		}
		dist[skiplist.K(key)] = weight
	}

	var opCount uint64
	if err := read(&opCount); err != nil {
		return nil, errors.Wrap(err, "read op count")
	}
	ops := make([]Operation, 0, min(opCount, 1<<20))
	for i := uint64(0); i < opCount; i++ {
		var t uint8
		var key int64
		if err := read(&t); err != nil {
			return nil, errors.Wrapf(err, "read op %d", i)
		}
		if err := read(&key); err != nil {
			return nil, errors.Wrapf(err, "read op %d", i)
		}
		if OperationType(t) > OpAdd {
			return nil, errors.Errorf("op %d: unknown operation type %d", i, t)
		}
		ops = append(ops, Operation{Type: OperationType(t), Key: skiplist.K(key)})
	}

	return &Workload{Dist: dist, Ops: ops}, nil
}

// ReadWorkloadFile 讀取 workload 檔案
func ReadWorkloadFile(filename string) (*Workload, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open workload file")
	}
	defer fd.Close()
	wl, err := ReadWorkload(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", filename)
	}
	return wl, nil
}

// ToSequenceModel 將 Workload 轉為可重播的 SequenceModel
func (wl *Workload) ToSequenceModel() *SequenceModel {
	if wl == nil {
		return NewSequenceModelFromOps(nil)
	}
	return NewSequenceModelFromOps(wl.Ops)
}

// Entropy 計算分布的熵（單位：bit），忽略 <= 0 的值
func (wl *Workload) Entropy() float64 {
	h := 0.0
	for _, p := range wl.Dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// Keys 回傳升冪排序的所有 key
func (wl *Workload) Keys() []skiplist.K {
	keys := make([]skiplist.K, 0, len(wl.Dist))
	for k := range wl.Dist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// DistributeToCSV 依 key 升冪輸出兩列：key 與機率
func (wl *Workload) DistributeToCSV(writer *csv.Writer) error {
	keys := wl.Keys()
	header := make([]string, 0, len(keys)+2)
	probs := make([]string, 0, len(keys)+2)
	header = append(header, "", "")
	probs = append(probs, "", "")
	for _, k := range keys {
		header = append(header, fmt.Sprintf("%d", k))
		probs = append(probs, fmt.Sprintf("%f", wl.Dist[k]))
	}
	if err := writer.Write(header); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	if err := writer.Write(probs); err != nil {
		return errors.Wrap(err, "write csv probs")
	}
	writer.Flush()
	return writer.Error()
}
