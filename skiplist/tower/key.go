package tower

// Kind 區分一般 key 與 -INF / +INF 哨兵
type Kind uint8

const (
	KindNormal Kind = iota
	KindNegInf
	KindPosInf
)

func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "Normal"
	case KindNegInf:
		return "-INF"
	case KindPosInf:
		return "+INF"
	default:
		return "Unknown"
	}
}

// Key 是帶有哨兵語意的 key，比較時 -INF 小於一切、+INF 大於一切
type Key[T any] struct {
	kind  Kind
	value T
}

func Normal[T any](v T) Key[T] {
	return Key[T]{kind: KindNormal, value: v}
}

func NegInf[T any]() Key[T] {
	return Key[T]{kind: KindNegInf}
}

func PosInf[T any]() Key[T] {
	return Key[T]{kind: KindPosInf}
}

func (k Key[T]) Kind() Kind {
	return k.kind
}

// Value 回傳一般 key 的值，哨兵回傳零值與 false
func (k Key[T]) Value() (T, bool) {
	if k.kind != KindNormal {
		var zero T
		return zero, false
	}
	return k.value, true
}

func (k Key[T]) IsSentinel() bool {
	return k.kind != KindNormal
}

// Compare 回傳 -1、0、1；兩個一般 key 以 cmp 比較
func (k Key[T]) Compare(o Key[T], cmp func(a, b T) int) int {
	switch k.kind {
	case KindNegInf:
		if o.kind == KindNegInf {
			return 0
		}
		return -1
	case KindPosInf:
		if o.kind == KindPosInf {
			return 0
		}
		return 1
	}
	switch o.kind {
	case KindNegInf:
		return 1
	case KindPosInf:
		return -1
	}
	c := cmp(k.value, o.value)
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}

func (k Key[T]) Less(o Key[T], cmp func(a, b T) int) bool {
	return k.Compare(o, cmp) < 0
}

func (k Key[T]) Equal(o Key[T], cmp func(a, b T) int) bool {
	return k.Compare(o, cmp) == 0
}
