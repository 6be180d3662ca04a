package dict

import (
	"math/rand"
	"sync"
	"sync/atomic"

	"chainmap/config"
)

// ConcurrentHashMap 是线程安全的 map，每个 shard 是一个由读写锁保护的 Table
type ConcurrentHashMap struct {
	shards  []*shard
	size    int32
	nShards int
}

type shard struct {
	table *Table
	mutex sync.RWMutex
}

func MakeConcurrent(nShards int) *ConcurrentHashMap {
	return makeConcurrent(nShards, MakeTable)
}

func MakeConcurrentFromProperties(p *config.TableProperties) *ConcurrentHashMap {
	return makeConcurrent(p.Shards, func() *Table {
		return MakeTableFromProperties(p)
	})
}

func makeConcurrent(nShards int, newTable func() *Table) *ConcurrentHashMap {
	nShards = computeCapacity(nShards)
	shards := make([]*shard, nShards)
	for i := 0; i < nShards; i++ {
		shards[i] = &shard{
			table: newTable(),
		}
	}
	return &ConcurrentHashMap{
		shards:  shards,
		nShards: nShards,
	}
}

func (m *ConcurrentHashMap) Len() int {
	if m == nil {
		panic("Nil ConcurrentHashMap")
	}
	return int(atomic.LoadInt32(&(m.size)))
}

func (m *ConcurrentHashMap) Put(key string, value any) {
	s := m.shardOf(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.table.Has(key) {
		m.ascendSize()
	}
	s.table.Put(key, value)
}

func (m *ConcurrentHashMap) PutIfAbsent(key string, value any) (ok bool) {
	s := m.shardOf(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.table.PutIfAbsent(key, value) {
		return false
	}
	m.ascendSize()
	return true
}

func (m *ConcurrentHashMap) PutIfExists(key string, value any) (ok bool) {
	s := m.shardOf(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.table.PutIfExists(key, value)
}

func (m *ConcurrentHashMap) Get(key string) (value any, ok bool) {
	s := m.shardOf(key)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.table.Get(key)
}

func (m *ConcurrentHashMap) Has(key string) bool {
	s := m.shardOf(key)
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.table.Has(key)
}

func (m *ConcurrentHashMap) Delete(key string) (ok bool) {
	s := m.shardOf(key)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.table.Delete(key) {
		return false
	}
	m.descendSize()
	return true
}

// ForEach 依次持有每个 shard 的读锁遍历，p 中不能再写入本 map
func (m *ConcurrentHashMap) ForEach(p Processor) {
	if m == nil {
		panic("Nil ConcurrentHashMap")
	}
	for _, s := range m.shards {
		proceed := true
		func() {
			s.mutex.RLock()
			defer s.mutex.RUnlock()
			s.table.ForEach(func(key string, value any) bool {
				proceed = p(key, value)
				return proceed
			})
		}()
		if !proceed {
			return
		}
	}
}

func (m *ConcurrentHashMap) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.ForEach(func(key string, _ any) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (m *ConcurrentHashMap) Values() []any {
	values := make([]any, 0, m.Len())
	m.ForEach(func(_ string, value any) bool {
		values = append(values, value)
		return true
	})
	return values
}

func (m *ConcurrentHashMap) Entries() []Pair {
	pairs := make([]Pair, 0, m.Len())
	m.ForEach(func(key string, value any) bool {
		pairs = append(pairs, Pair{Key: key, Value: value})
		return true
	})
	return pairs
}

// RandomKeys 先随机选 shard，再由该 shard 的 Table 随机选 key，结果可能重复
func (m *ConcurrentHashMap) RandomKeys(nKeys int) []string {
	if nKeys <= 0 {
		return []string{}
	}
	if nKeys >= m.Len() {
		return m.Keys()
	}
	res := make([]string, 0, nKeys)
	for len(res) < nKeys && m.Len() > 0 {
		if key, ok := m.shards[rand.Intn(m.nShards)].randomKey(); ok {
			res = append(res, key)
		}
	}
	return res
}

func (m *ConcurrentHashMap) RandomDistinctKeys(nKeys int) []string {
	if nKeys <= 0 {
		return []string{}
	}
	if nKeys >= m.Len() {
		return m.Keys()
	}
	picked := MakeTableWithOptions(nKeys*2, DefaultLoadFactor)
	for picked.Len() < nKeys && m.Len() > 0 {
		if key, ok := m.shards[rand.Intn(m.nShards)].randomKey(); ok {
			picked.Put(key, true)
		}
	}
	return picked.Keys()
}

func (m *ConcurrentHashMap) Clear() {
	if m == nil {
		panic("Nil ConcurrentHashMap")
	}
	for _, s := range m.shards {
		s.mutex.Lock()
		n := s.table.Len()
		s.table.Clear()
		atomic.AddInt32(&(m.size), -int32(n))
		s.mutex.Unlock()
	}
}

// shardOf 根据 fnv32 的结果，得到 key 所在的 shard
func (m *ConcurrentHashMap) shardOf(key string) *shard {
	if m == nil {
		panic("Nil ConcurrentHashMap")
	}
	index := (uint32(m.nShards) - 1) & fnv32(key)
	if index >= uint32(m.nShards) {
		panic("Shard index out of boundary")
	}
	return m.shards[index]
}

// randomKey 从 shard 处随机取得一个 key
func (s *shard) randomKey() (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.table.randomKey()
}

// ascendSize 会使 size 自增
func (m *ConcurrentHashMap) ascendSize() int32 {
	return atomic.AddInt32(&(m.size), 1)
}

// descendSize 会使 size 自减
func (m *ConcurrentHashMap) descendSize() int32 {
	return atomic.AddInt32(&(m.size), -1)
}
