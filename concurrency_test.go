// FILE: lixenwraith/gameini/concurrency_test.go
package gameini

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentDisjointKeys runs add, get, set, delete cycles on disjoint keys
func TestConcurrentDisjointKeys(t *testing.T) {
	const (
		workers = 16
		rounds  = 200
	)
	s := NewSection("S")

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				key := fmt.Sprintf("k%d_%d", w, i)
				if err := s.AddInt(key, int32(i)); err != nil {
					errs <- err
					return
				}
				if n, err := s.GetInt(key); err != nil || n != int32(i) {
					errs <- fmt.Errorf("get %s: %d, %v", key, n, err)
					return
				}
				if err := s.SetInt(key, int32(-i)); err != nil {
					errs <- err
					return
				}
				if n, err := s.GetInt(key); err != nil || n != int32(-i) {
					errs <- fmt.Errorf("get after set %s: %d, %v", key, n, err)
					return
				}
				if i%2 == 0 {
					if err := s.Delete(key); err != nil {
						errs <- err
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	// Odd rounds are kept; none lost
	assert.Equal(t, workers*rounds/2, s.Len())
}

// TestConcurrentFileSections creates sections and values from many goroutines
func TestConcurrentFileSections(t *testing.T) {
	f, err := NewFile()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.NoError(t, f.SetInt(fmt.Sprintf("S%d", i%5), fmt.Sprintf("K%d_%d", w, i), int32(i)))
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 5, f.Len())
	total := 0
	for _, s := range f.Sections() {
		total += s.Len()
	}
	assert.Equal(t, 8*50, total)
}

// TestCrossDomainSameKey races sync and async writers on one key
func TestCrossDomainSameKey(t *testing.T) {
	ctx := context.Background()
	s := NewSection("S")
	require.NoError(t, s.AddInt("Shared", 0))
	a := s.Async()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			assert.NoError(t, s.SetInt("Shared", 1))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			assert.NoError(t, a.SetInt(ctx, "Shared", 2))
		}
	}()
	wg.Wait()

	n, err := s.GetInt("Shared")
	require.NoError(t, err)
	assert.Contains(t, []int32{1, 2}, n)
	assert.Equal(t, 1, s.Len())

	// Once both writers are done the last write decides
	require.NoError(t, a.SetInt(ctx, "Shared", 3))
	n, err = s.GetInt("Shared")
	require.NoError(t, err)
	assert.Equal(t, int32(3), n)
}

// TestCrossDomainDisjointKeys checks that sync and async writers to different keys both land
func TestCrossDomainDisjointKeys(t *testing.T) {
	ctx := context.Background()
	f, err := NewFile()
	require.NoError(t, err)
	a := f.Async()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, f.AddInt("S", fmt.Sprintf("sync%d", i), int32(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, a.AddInt(ctx, "S", fmt.Sprintf("async%d", i), int32(i)))
		}
	}()
	wg.Wait()

	s, err := f.Section("S")
	require.NoError(t, err)
	assert.Equal(t, 400, s.Len())
	assert.Equal(t, 1, f.Len())
}

// TestAsyncSerialized checks that async writers exclude each other
func TestAsyncSerialized(t *testing.T) {
	ctx := context.Background()
	s := NewSection("S")
	a := s.Async()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.NoError(t, a.AddString(ctx, fmt.Sprintf("k%d_%d", w, i), "v"))
			}
		}(w)
	}
	wg.Wait()

	n, err := a.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, n, 400)
}
