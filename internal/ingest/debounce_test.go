package ingest

import (
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var mu sync.Mutex
	var got []string
	deb := newDebouncer(10*time.Millisecond, func(p string) {
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
	})

	deb.Add("a.txt")
	deb.Add("a.txt")
	deb.Add("b.txt")
	deb.Flush()

	mu.Lock()
	defer mu.Unlock()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "a.txt" || got[1] != "b.txt" {
		t.Fatalf("got %v, want [a.txt b.txt]", got)
	}
}

func TestDebouncerConcurrentAddAndFlush(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}
	deb := newDebouncer(time.Millisecond, func(p string) {
		mu.Lock()
		seen[p]++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				deb.Add(fmt.Sprintf("g%d-%d.txt", g, i))
				if i%10 == 0 {
					deb.Flush()
				}
			}
		}(g)
	}
	wg.Wait()
	deb.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 200 {
		t.Fatalf("got %d distinct paths, want 200", len(seen))
	}
	for p, n := range seen {
		if n != 1 {
			t.Fatalf("path %s emitted %d times, want 1", p, n)
		}
	}
}

func TestDebouncerZeroDelayEmitsImmediately(t *testing.T) {
	var got []string
	deb := newDebouncer(0, func(p string) { got = append(got, p) })
	deb.Add("now.txt")
	if len(got) != 1 || got[0] != "now.txt" {
		t.Fatalf("got %v, want [now.txt]", got)
	}
}

func TestDebouncerStopDropsPending(t *testing.T) {
	var got []string
	deb := newDebouncer(time.Hour, func(p string) { got = append(got, p) })
	deb.Add("late.txt")
	deb.Stop()
	deb.Flush()
	if len(got) != 0 {
		t.Fatalf("got %v, want nothing after Stop", got)
	}
}
