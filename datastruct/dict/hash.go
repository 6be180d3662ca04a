package dict

import (
	"unicode"
	"unicode/utf16"
)

const primeNumber = 31

// hashCode 是多项式滚动哈希，逐个 UTF-16 码元计算 (31*code + c) mod capacity，
// 结果落在 [0, capacity) 内
func hashCode(key string, capacity int) int {
	code := 0
	for _, r := range key {
		if r1, r2 := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
			code = (primeNumber*code + int(r1)) % capacity
			code = (primeNumber*code + int(r2)) % capacity
			continue
		}
		code = (primeNumber*code + int(r)) % capacity
	}
	return code
}

// fnv32 用于把 key 分配到 ConcurrentHashMap 的 shard
func fnv32(key string) uint32 {
	hash := uint32(2166136261)
	// 此处不用 for range 是因为不应考虑字符而是只考虑字节
	for i := 0; i < len(key); i++ {
		hash *= uint32(16777619)
		hash ^= uint32(key[i])
	}
	return hash
}

// computeCapacity 计算不小于 n 的 2 的整数次幂，最小为 16
func computeCapacity(n int) int {
	if n <= DefaultCapacity {
		return DefaultCapacity
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return 1 + n
}
