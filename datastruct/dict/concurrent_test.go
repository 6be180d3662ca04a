package dict

import (
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainmap/config"
)

func TestConcurrentPut(t *testing.T) {
	m := MakeConcurrent(0)
	count := 100
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(i int) {
			defer wg.Done()
			key := "k" + strconv.Itoa(i)
			m.Put(key, i)
			m.Put(key, i*2)
		}(i)
	}
	wg.Wait()
	require.Equal(t, count, m.Len())
	for i := 0; i < count; i++ {
		v, ok := m.Get("k" + strconv.Itoa(i))
		require.True(t, ok)
		require.Equal(t, i*2, v)
	}
}

func TestConcurrentPutIfAbsent(t *testing.T) {
	m := MakeConcurrent(4)
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if m.PutIfAbsent("only", i) {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1, won)
	require.Equal(t, 1, m.Len())
	require.True(t, m.PutIfExists("only", -1))
	require.False(t, m.PutIfExists("absent", -1))
	v, _ := m.Get("only")
	require.Equal(t, -1, v)
}

func TestConcurrentDelete(t *testing.T) {
	m := MakeConcurrent(0)
	for i := 0; i < 100; i++ {
		m.Put(strconv.Itoa(i), i)
	}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				assert.True(t, m.Delete(strconv.Itoa(i)))
			}
		}(i)
	}
	wg.Wait()
	require.Equal(t, 50, m.Len())
	require.False(t, m.Delete("0"))
	require.False(t, m.Has("0"))
	require.True(t, m.Has("1"))
}

func TestConcurrentEnumeration(t *testing.T) {
	m := MakeConcurrentFromProperties(config.Default())
	want := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		key := strconv.Itoa(i)
		m.Put(key, i)
		want = append(want, key)
	}
	keys := m.Keys()
	sort.Strings(keys)
	sort.Strings(want)
	require.Equal(t, want, keys)
	require.Len(t, m.Values(), 200)
	for _, pair := range m.Entries() {
		require.Equal(t, pair.Key, strconv.Itoa(pair.Value.(int)))
	}

	visited := 0
	m.ForEach(func(string, any) bool {
		visited++
		return visited < 5
	})
	require.Equal(t, 5, visited)
}

func TestConcurrentClear(t *testing.T) {
	m := MakeConcurrent(0)
	for i := 0; i < 100; i++ {
		m.Put(strconv.Itoa(i), i)
	}
	m.Clear()
	require.Equal(t, 0, m.Len())
	require.Empty(t, m.Keys())
	m.Put("a", 1)
	require.Equal(t, 1, m.Len())
}

func TestConcurrentRandomKeys(t *testing.T) {
	m := MakeConcurrent(4)
	for i := 0; i < 100; i++ {
		m.Put(strconv.Itoa(i), i)
	}

	picked := m.RandomKeys(40)
	require.Len(t, picked, 40)
	for _, key := range picked {
		require.True(t, m.Has(key))
	}

	distinct := m.RandomDistinctKeys(70)
	require.Len(t, distinct, 70)
	seen := make(map[string]bool)
	for _, key := range distinct {
		require.True(t, m.Has(key))
		require.Falsef(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}

	require.Len(t, m.RandomKeys(1000), 100)
	require.ElementsMatch(t, m.Keys(), m.RandomDistinctKeys(100))
	require.Empty(t, m.RandomKeys(0))
	require.Empty(t, MakeConcurrent(0).RandomDistinctKeys(5))
}
