//go:build bench

package mdpress

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	workers := []int{0, 1, 2, 4, 8}

	for _, w := range workers {
		b.Run(workerName(w), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				result := ResolvePoolSize(w)
				_ = result
			}
		})
	}
}

func workerName(w int) string {
	if w == 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", w)
}

// prewarmPool forces lazy creation of every slot, then returns them all.
// Converters use the native engine so no browser is involved.
func prewarmPool(b *testing.B, pool *ConverterPool, size int) {
	b.Helper()
	converters := make([]*Converter, size)
	for i := 0; i < size; i++ {
		c, err := pool.Acquire()
		if err != nil {
			b.Fatal(err)
		}
		converters[i] = c
	}
	for i := 0; i < size; i++ {
		pool.Release(converters[i])
	}
}

// BenchmarkConverterPoolAcquireRelease benchmarks pool acquire/release cycle.
func BenchmarkConverterPoolAcquireRelease(b *testing.B) {
	sizes := []int{1, 2, 4, 8}

	for _, size := range sizes {
		b.Run(poolSizeName(size), func(b *testing.B) {
			pool := NewConverterPool(size)
			prewarmPool(b, pool, size)

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				c, err := pool.Acquire()
				if err != nil {
					b.Fatal(err)
				}
				pool.Release(c)
			}

			b.StopTimer()
			pool.Close()
		})
	}
}

func poolSizeName(size int) string {
	return fmt.Sprintf("size_%d", size)
}

// BenchmarkConverterPoolContention benchmarks pool under contention.
// Simulates multiple goroutines competing for pool resources.
func BenchmarkConverterPoolContention(b *testing.B) {
	poolSize := 4
	goroutines := []int{4, 8, 16, 32}

	for _, g := range goroutines {
		b.Run(goroutineName(g), func(b *testing.B) {
			pool := NewConverterPool(poolSize)
			prewarmPool(b, pool, poolSize)

			b.ReportAllocs()
			b.ResetTimer()

			var wg sync.WaitGroup
			opsPerGoroutine := b.N / g
			if opsPerGoroutine < 1 {
				opsPerGoroutine = 1
			}

			for i := 0; i < g; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < opsPerGoroutine; j++ {
						c, err := pool.Acquire()
						if err != nil {
							return
						}
						// Simulate minimal work
						runtime.Gosched()
						pool.Release(c)
					}
				}()
			}
			wg.Wait()

			b.StopTimer()
			pool.Close()
		})
	}
}

func goroutineName(g int) string {
	return fmt.Sprintf("goroutines_%d", g)
}

// BenchmarkConverterPoolParallel benchmarks parallel pool access.
func BenchmarkConverterPoolParallel(b *testing.B) {
	pool := NewConverterPool(runtime.GOMAXPROCS(0))
	prewarmPool(b, pool, pool.Size())

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			c, err := pool.Acquire()
			if err != nil {
				b.Fatal(err)
			}
			pool.Release(c)
		}
	})

	b.StopTimer()
	pool.Close()
}

// BenchmarkNewConverterPool benchmarks pool creation. Converters are created
// lazily, so this measures only the pool bookkeeping.
func BenchmarkNewConverterPool(b *testing.B) {
	sizes := []int{1, 4, 8}

	for _, size := range sizes {
		b.Run(poolSizeName(size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				pool := NewConverterPool(size)
				_ = pool
			}
		})
	}
}
