package font

import (
	"fmt"
	"os"
	"sync"
)

// SharedData is a reference-counted, read-only font file buffer.
//
// Every member of a collection opened from one path holds a reference to
// the same SharedData, so the file is read once and its bytes live until
// the last holder releases them. NewSharedData returns a buffer with one
// reference owned by the caller.
//
// SharedData is safe for concurrent use.
// SharedData must not be copied after creation (enforced by copyCheck).
type SharedData struct {
	// addr is used for copy protection.
	// It must point to the SharedData itself.
	addr *SharedData

	mu   sync.Mutex
	data []byte
	refs int

	// onRelease runs once after the last reference is released.
	onRelease func()
}

// NewSharedData wraps b without copying it. The caller must not modify b
// afterwards.
func NewSharedData(b []byte) *SharedData {
	s := &SharedData{data: b, refs: 1}
	s.addr = s
	return s
}

// ReadSharedData reads a file into a new SharedData.
func ReadSharedData(path string) (*SharedData, error) {
	// #nosec G304 -- Font file path is provided by the user
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}
	return NewSharedData(b), nil
}

// Bytes returns the buffer, or nil once released.
func (s *SharedData) Bytes() []byte {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Len returns the buffer length.
func (s *SharedData) Len() int {
	return len(s.Bytes())
}

// Refs returns the number of outstanding references.
func (s *SharedData) Refs() int {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

// Acquire adds a reference. It fails with ErrReleased if the buffer has
// already been released by its last holder.
func (s *SharedData) Acquire() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		return ErrReleased
	}
	s.refs++
	slogger().Debug("font: shared data acquired", "refs", s.refs, "size", len(s.data))
	return nil
}

// Release drops a reference. When the count reaches zero the bytes are
// dropped. Releasing an already released buffer is a no-op.
func (s *SharedData) Release() {
	s.copyCheck()
	s.mu.Lock()
	if s.refs == 0 {
		s.mu.Unlock()
		return
	}
	s.refs--
	refs := s.refs
	var hook func()
	if refs == 0 {
		s.data = nil
		hook, s.onRelease = s.onRelease, nil
	}
	s.mu.Unlock()

	slogger().Debug("font: shared data released", "refs", refs)
	if hook != nil {
		hook()
	}
}

// copyCheck panics if SharedData was copied by value.
func (s *SharedData) copyCheck() {
	if s.addr != s {
		panic("font: SharedData must not be copied by value")
	}
}

// DataPool hands out one SharedData per path while any reference to it
// is alive. It is how collection members opened separately end up sharing
// a single read of their file.
//
// DataPool is safe for concurrent use. The zero value is ready to use.
type DataPool struct {
	mu      sync.Mutex
	entries map[string]*SharedData

	// ReadFile reads a path; nil means os.ReadFile.
	ReadFile func(path string) ([]byte, error)
}

// Acquire returns the live SharedData for path with a new reference owned
// by the caller, reading the file only if no live buffer exists.
func (p *DataPool) Acquire(path string) (*SharedData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.entries[path]; ok {
		if err := s.Acquire(); err == nil {
			return s, nil
		}
		delete(p.entries, path)
	}

	read := p.ReadFile
	if read == nil {
		read = os.ReadFile
	}
	b, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read font file: %w", err)
	}

	s := NewSharedData(b)
	s.onRelease = func() { p.forget(path, s) }
	if p.entries == nil {
		p.entries = make(map[string]*SharedData)
	}
	p.entries[path] = s
	return s, nil
}

// Len returns the number of live buffers.
func (p *DataPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

func (p *DataPool) forget(path string, s *SharedData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.entries[path] == s {
		delete(p.entries, path)
	}
}
