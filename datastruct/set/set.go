package set

import "chainmap/datastruct/dict"

type Consumer func(string) bool

// HashSet 是以 dict.HashMap 的 key 作为成员的集合
type HashSet struct {
	m dict.HashMap
}

func NewHashSet(members ...string) *HashSet {
	return NewHashSetOn(dict.MakeTable(), members...)
}

// NewHashSetOn 使用给定的 HashMap 作为底层存储，m 应为空
func NewHashSetOn(m dict.HashMap, members ...string) *HashSet {
	res := &HashSet{m: m}
	for _, str := range members {
		res.Add(str)
	}
	return res
}

func (s *HashSet) Size() int {
	return s.m.Len()
}

func (s *HashSet) Add(val string) (ok bool) {
	return s.m.PutIfAbsent(val, struct{}{})
}

func (s *HashSet) Contains(val string) bool {
	return s.m.Has(val)
}

func (s *HashSet) Remove(val string) (ok bool) {
	return s.m.Delete(val)
}

func (s *HashSet) Clear() {
	s.m.Clear()
}

func (s *HashSet) ForEach(c Consumer) {
	s.m.ForEach(func(key string, _ any) bool {
		return c(key)
	})
}

func (s *HashSet) Members() []string {
	return s.m.Keys()
}

func (s *HashSet) RandomMembers(nMembers int) []string {
	return s.m.RandomKeys(nMembers)
}

func (s *HashSet) RandomDistinctMembers(nMembers int) []string {
	return s.m.RandomDistinctKeys(nMembers)
}

// withCapacity 创建一个预留 n 个成员空间的空集合，避免结果集合在写入时反复扩容
func withCapacity(n int) *HashSet {
	return NewHashSetOn(dict.MakeTableWithOptions(int(float64(n)/dict.DefaultLoadFactor)+1, dict.DefaultLoadFactor))
}

// Intersect 遍历较小的集合，在较大的集合中查找
func (s *HashSet) Intersect(s1 *HashSet) *HashSet {
	if s == nil {
		panic("HashSet is nil")
	}
	small, large := s, s1
	if s1.Size() < s.Size() {
		small, large = s1, s
	}
	res := withCapacity(small.Size())
	small.ForEach(func(member string) bool {
		if large.Contains(member) {
			res.Add(member)
		}
		return true
	})
	return res
}

func (s *HashSet) Union(s1 *HashSet) *HashSet {
	if s == nil {
		panic("HashSet is nil")
	}
	res := withCapacity(s.Size() + s1.Size())
	add := func(member string) bool {
		res.Add(member)
		return true
	}
	s.ForEach(add)
	s1.ForEach(add)
	return res
}

func (s *HashSet) Diff(s1 *HashSet) *HashSet {
	if s == nil {
		panic("HashSet is nil")
	}
	res := withCapacity(s.Size())
	s.ForEach(func(member string) bool {
		if !s1.Contains(member) {
			res.Add(member)
		}
		return true
	})
	return res
}
