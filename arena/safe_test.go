package arena

import (
	"runtime"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeArenaOperations(t *testing.T) {
	s := NewSafeArena(1024)
	require.NotNil(t, s.a)

	b, err := s.AllocBytes(100)
	require.NoError(t, err)
	assert.Len(t, b, 100)
	assert.NotZero(t, s.Metrics().SizeInUse)

	require.NoError(t, s.EnsureCapacity(2000))
	assert.Equal(t, 2, s.Metrics().NumChunks)

	s.Reset()
	assert.Zero(t, s.Metrics().SizeInUse)

	s.Release()
	assert.Panics(t, func() { _, _ = s.AllocBytes(100) })
}

func TestBoundedSafeArena(t *testing.T) {
	s := NewBoundedSafeArena(256, 256)
	_, err := AllocSlice[int32](s, 64)
	require.NoError(t, err)
	_, err = AllocSlice[int32](s, 1)
	assert.True(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, 256, s.Metrics().Limit)
}

func TestSafeArenaConcurrency(t *testing.T) {
	s := NewSafeArena(1024)
	const numGoroutines = 10
	const numAllocsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numAllocsPerGoroutine; j++ {
				switch j % 3 {
				case 0:
					_, _ = s.AllocBytes(64)
				case 1:
					_, _ = AllocSlice[byte](s, 32)
				case 2:
					_ = s.EnsureCapacity(128)
				}
			}
		}()
	}

	wg.Wait()

	m := s.Metrics()
	assert.NotZero(t, m.SizeInUse)
	assert.NotZero(t, m.NumChunks)
}

func TestSafeArenaConcurrentReset(t *testing.T) {
	s := NewSafeArena(1024)
	const numWorkers = 5

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := 0; i < numWorkers-2; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = s.AllocBytes(32)
				runtime.Gosched()
			}
		}()
	}

	go func() {
		defer wg.Done()
		for i := 0; i < 5; i++ {
			runtime.Gosched()
			s.Reset()
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			_ = s.Metrics()
			runtime.Gosched()
		}
	}()

	wg.Wait()
}

func BenchmarkSafeArenaConcurrent(b *testing.B) {
	s := NewSafeArena(1024 * 1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = s.AllocBytes(64)
			i++
			if i%1000 == 999 {
				s.Reset()
			}
		}
	})
}
