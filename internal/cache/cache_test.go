package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_LoadEmpty(t *testing.T) {
	var s Snapshot[map[string]int]
	v, ok := s.Load()
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSnapshot_StoreReplaces(t *testing.T) {
	var s Snapshot[[]string]
	s.Store([]string{"a"})
	s.Store([]string{"b", "c"})

	v, ok := s.Load()
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, v)
}

func TestSnapshot_ConcurrentReaders(t *testing.T) {
	var s Snapshot[int]
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Store(n)
		}(i)
		go func() {
			defer wg.Done()
			s.Load()
		}()
	}
	wg.Wait()

	_, ok := s.Load()
	assert.True(t, ok)
}
