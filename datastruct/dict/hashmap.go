package dict

// Processor 遍历时对每个键值对调用，返回 false 时停止遍历
type Processor func(key string, value any) bool

// Pair 是 Entries 返回的键值对
type Pair struct {
	Key   string
	Value any
}

type HashMap interface {
	Len() int
	Put(key string, value any)
	PutIfAbsent(key string, value any) (ok bool)
	PutIfExists(key string, value any) (ok bool)
	Get(key string) (value any, ok bool)
	Has(key string) bool
	Delete(key string) (ok bool)
	ForEach(p Processor)
	Keys() []string
	Values() []any
	Entries() []Pair
	RandomKeys(nKeys int) []string
	RandomDistinctKeys(nKeys int) []string
	Clear()
}

var (
	_ HashMap = (*Table)(nil)
	_ HashMap = (*ConcurrentHashMap)(nil)
)
