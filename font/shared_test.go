package font

import (
	"errors"
	"sync"
	"testing"
)

func TestSharedData_Refcount(t *testing.T) {
	s := NewSharedData([]byte{1, 2, 3})
	if s.Refs() != 1 {
		t.Fatalf("Refs() = %d, want 1", s.Refs())
	}
	if err := s.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	s.Release()
	if s.Bytes() == nil {
		t.Fatal("bytes dropped while a reference is held")
	}
	s.Release()
	if s.Bytes() != nil {
		t.Error("bytes kept after last release")
	}
	s.Release()
	if s.Refs() != 0 {
		t.Errorf("Refs() = %d after extra release, want 0", s.Refs())
	}
	if err := s.Acquire(); !errors.Is(err, ErrReleased) {
		t.Errorf("Acquire() after release = %v, want ErrReleased", err)
	}
}

func TestDataPool_ReadsOncePerLiveBuffer(t *testing.T) {
	reads := 0
	p := &DataPool{ReadFile: func(string) ([]byte, error) {
		reads++
		return []byte("ttcf"), nil
	}}

	a, err := p.Acquire("fonts.ttc")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	b, err := p.Acquire("fonts.ttc")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if a != b {
		t.Error("same path returned different buffers")
	}
	if reads != 1 {
		t.Errorf("reads = %d, want 1", reads)
	}

	a.Release()
	if p.Len() != 1 {
		t.Errorf("Len() = %d while a holder remains, want 1", p.Len())
	}
	b.Release()
	if p.Len() != 0 {
		t.Errorf("Len() = %d after last release, want 0", p.Len())
	}

	c, err := p.Acquire("fonts.ttc")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer c.Release()
	if reads != 2 {
		t.Errorf("reads = %d after re-open, want 2", reads)
	}
}

func TestDataPool_Concurrent(t *testing.T) {
	var mu sync.Mutex
	reads := 0
	p := &DataPool{ReadFile: func(string) ([]byte, error) {
		mu.Lock()
		reads++
		mu.Unlock()
		return []byte("font"), nil
	}}

	held := make([]*SharedData, 16)
	var wg sync.WaitGroup
	for i := range held {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := p.Acquire("a.ttc")
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			held[i] = s
		}(i)
	}
	wg.Wait()

	if reads != 1 {
		t.Errorf("reads = %d, want 1", reads)
	}
	if held[0].Refs() != len(held) {
		t.Errorf("Refs() = %d, want %d", held[0].Refs(), len(held))
	}
	for _, s := range held {
		s.Release()
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}
