package arraylist_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/pavanmanishd/arraylist"
	"github.com/pavanmanishd/arraylist/arena"
)

// BenchmarkConcurrencyPatterns measures lists confined to goroutines with
// different ways of sharing memory
func BenchmarkConcurrencyPatterns(b *testing.B) {
	const n = 256

	b.Run("Heap_PerGoroutine", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				l, _ := arraylist.New[int64]()
				for j := 0; j < n; j++ {
					_ = l.AddLast(int64(j))
				}
				l.Release()
			}
		})
	})

	b.Run("SafeArena_Shared", func(b *testing.B) {
		s := arena.NewSafeArena(1024 * 1024)
		defer s.Release()
		alloc := arraylist.InArena[int64](s)
		workers := runtime.GOMAXPROCS(0)
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			var wg sync.WaitGroup
			wg.Add(workers)
			for w := 0; w < workers; w++ {
				go func() {
					defer wg.Done()
					l, _ := arraylist.NewWithAllocator(alloc)
					for j := 0; j < n; j++ {
						_ = l.AddLast(int64(j))
					}
					l.Release()
				}()
			}
			wg.Wait()
			s.Reset()
		}
	})

	b.Run("Arena_PerGoroutine", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			a := arena.NewArena(64 * 1024)
			defer a.Release()
			alloc := arraylist.InArena[int64](a)
			for pb.Next() {
				l, _ := arraylist.NewWithAllocator(alloc)
				for j := 0; j < n; j++ {
					_ = l.AddLast(int64(j))
				}
				l.Release()
				a.Reset()
			}
		})
	})
}
