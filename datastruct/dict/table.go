package dict

import (
	"math/rand"

	"github.com/pkg/errors"

	"chainmap/config"
	"chainmap/lib/logger"
)

const (
	DefaultCapacity   = 16
	DefaultLoadFactor = 0.75
)

// ErrIndexOutOfBounds 只在内部下标计算出错时出现，公开方法不会触发
var ErrIndexOutOfBounds = errors.New("bucket index out of bounds")

type entry struct {
	key   string
	value any
	next  *entry
}

// Table 是拉链法实现的哈希表，不是线程安全的，需要并发访问时使用 ConcurrentHashMap。
// 零值可以直接使用，首次写入时按默认容量与负载因子分配 bucket。
//
// 从 buckets[i] 可达的每个 entry 都满足 hashCode(key, capacity) == i，
// 扩容时所有 entry 会按新的 capacity 重新分配。
type Table struct {
	buckets      []*entry
	capacity     int
	initCapacity int
	loadFactor   float64
	size         int
	logGrowth    bool
}

func MakeTable() *Table {
	return MakeTableWithOptions(DefaultCapacity, DefaultLoadFactor)
}

// MakeTableWithOptions 创建指定初始容量与负载因子的 Table。
// capacity 向上取整为 2 的幂且不小于 16；loadFactor 不在 (0, 1] 内时使用 0.75。
func MakeTableWithOptions(capacity int, loadFactor float64) *Table {
	capacity = computeCapacity(capacity)
	if loadFactor <= 0 || loadFactor > 1 {
		loadFactor = DefaultLoadFactor
	}
	return &Table{
		buckets:      make([]*entry, capacity),
		capacity:     capacity,
		initCapacity: capacity,
		loadFactor:   loadFactor,
	}
}

func MakeTableFromProperties(p *config.TableProperties) *Table {
	t := MakeTableWithOptions(p.Capacity, p.LoadFactor)
	t.logGrowth = p.LogGrowth
	return t
}

func (t *Table) Capacity() int {
	return t.capacity
}

func (t *Table) LoadFactor() float64 {
	return t.loadFactor
}

func (t *Table) Len() int {
	if t == nil {
		panic("Nil Table")
	}
	return t.size
}

// Put 写入键值对。先检查负载，必要时扩容并重新散列，再按当前容量定位 bucket；
// 已存在的 key 原地覆盖，否则追加到链尾。
func (t *Table) Put(key string, value any) {
	if t == nil {
		panic("Nil Table")
	}
	if len(t.buckets) == 0 {
		t.lazyInit()
	}
	t.growIfNeeded()
	index := hashCode(key, t.capacity)
	e := t.bucketAt(index)
	if e == nil {
		t.buckets[index] = &entry{key: key, value: value}
		t.size++
		return
	}
	for {
		if e.key == key {
			e.value = value
			return
		}
		if e.next == nil {
			e.next = &entry{key: key, value: value}
			t.size++
			return
		}
		e = e.next
	}
}

func (t *Table) PutIfAbsent(key string, value any) (ok bool) {
	if t.Has(key) {
		return false
	}
	t.Put(key, value)
	return true
}

func (t *Table) PutIfExists(key string, value any) (ok bool) {
	e := t.find(key)
	if e == nil {
		return false
	}
	e.value = value
	return true
}

func (t *Table) Get(key string) (value any, ok bool) {
	e := t.find(key)
	if e == nil {
		return nil, false
	}
	return e.value, true
}

// Has 遍历整条链判断 key 是否存在
func (t *Table) Has(key string) bool {
	return t.find(key) != nil
}

func (t *Table) Delete(key string) (ok bool) {
	if !t.Has(key) {
		return false
	}
	index := hashCode(key, t.capacity)
	var prev *entry
	for e := t.bucketAt(index); e != nil; prev, e = e, e.next {
		if e.key != key {
			continue
		}
		if prev == nil {
			t.buckets[index] = e.next
		} else {
			prev.next = e.next
		}
		t.size--
		return true
	}
	return false
}

// Clear 丢弃所有 bucket，容量恢复为初始容量
func (t *Table) Clear() {
	if t == nil {
		panic("Nil Table")
	}
	t.buckets = nil
	t.size = 0
	t.lazyInit()
	if t.logGrowth {
		logger.Debugf("table cleared, capacity reset to %d", t.capacity)
	}
}

// ForEach 按 bucket 下标、再按链内顺序遍历
func (t *Table) ForEach(p Processor) {
	if t == nil {
		panic("Nil Table")
	}
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			if !p(e.key, e.value) {
				return
			}
		}
	}
}

func (t *Table) Keys() []string {
	keys := make([]string, 0, t.Len())
	t.ForEach(func(key string, _ any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (t *Table) Values() []any {
	values := make([]any, 0, t.Len())
	t.ForEach(func(_ string, value any) bool {
		values = append(values, value)
		return true
	})
	return values
}

func (t *Table) Entries() []Pair {
	pairs := make([]Pair, 0, t.Len())
	t.ForEach(func(key string, value any) bool {
		pairs = append(pairs, Pair{Key: key, Value: value})
		return true
	})
	return pairs
}

func (t *Table) find(key string) *entry {
	if t == nil {
		panic("Nil Table")
	}
	if len(t.buckets) == 0 {
		return nil
	}
	for e := t.bucketAt(hashCode(key, t.capacity)); e != nil; e = e.next {
		if e.key == key {
			return e
		}
	}
	return nil
}

// RandomKeys 随机取 nKeys 个 key，可能重复；nKeys 不小于元素数时返回全部 key
func (t *Table) RandomKeys(nKeys int) []string {
	if nKeys <= 0 {
		return []string{}
	}
	if nKeys >= t.Len() {
		return t.Keys()
	}
	res := make([]string, 0, nKeys)
	for len(res) < nKeys {
		if key, ok := t.randomKey(); ok {
			res = append(res, key)
		}
	}
	return res
}

// RandomDistinctKeys 随机取 nKeys 个互不相同的 key
func (t *Table) RandomDistinctKeys(nKeys int) []string {
	if nKeys <= 0 {
		return []string{}
	}
	if nKeys >= t.Len() {
		return t.Keys()
	}
	seen := make(map[string]struct{}, nKeys)
	res := make([]string, 0, nKeys)
	for len(res) < nKeys {
		key, ok := t.randomKey()
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, key)
	}
	return res
}

// randomKey 随机选一个 bucket，再在链上随机选一个 entry；表为空时返回 false
func (t *Table) randomKey() (string, bool) {
	if t.Len() == 0 {
		return "", false
	}
	for {
		head := t.bucketAt(rand.Intn(t.capacity))
		if head == nil {
			continue
		}
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		e := head
		for i := rand.Intn(n); i > 0; i-- {
			e = e.next
		}
		return e.key, true
	}
}

// bucketAt 获取下标处的链头
func (t *Table) bucketAt(index int) *entry {
	if index < 0 || index >= len(t.buckets) {
		panic(errors.Wrapf(ErrIndexOutOfBounds, "index %d, capacity %d", index, len(t.buckets)))
	}
	return t.buckets[index]
}

// count 遍历所有链统计 entry 数，与 size 应始终一致
func (t *Table) count() int {
	n := 0
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			n++
		}
	}
	return n
}

func (t *Table) lazyInit() {
	if t.initCapacity <= 0 {
		t.initCapacity = DefaultCapacity
	}
	if t.loadFactor <= 0 {
		t.loadFactor = DefaultLoadFactor
	}
	t.capacity = t.initCapacity
	t.buckets = make([]*entry, t.capacity)
}

func (t *Table) growIfNeeded() {
	if float64(t.size) < t.loadFactor*float64(t.capacity) {
		return
	}
	old := t.capacity
	t.rehash(old * 2)
	if t.logGrowth {
		logger.Debugf("table grown from %d to %d buckets, %d entries", old, t.capacity, t.size)
	}
}

// rehash 按原遍历顺序把所有 entry 追加到新容量的 bucket 链尾
func (t *Table) rehash(capacity int) {
	old := t.buckets
	t.buckets = make([]*entry, capacity)
	t.capacity = capacity
	tails := make([]*entry, capacity)
	for _, head := range old {
		e := head
		for e != nil {
			next := e.next
			e.next = nil
			index := hashCode(e.key, capacity)
			if tails[index] == nil {
				t.buckets[index] = e
			} else {
				tails[index].next = e
			}
			tails[index] = e
			e = next
		}
	}
}
