// Package imagecache records the load status of artwork images, keyed by image
// reference. The gallery is handed a Cache rather than reaching for a global.
package imagecache

import (
	"image"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Status is where an image is in its load lifecycle.
type Status int

const (
	// Unknown means no load has been attempted.
	Unknown Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is the cached result for one image reference.
type Entry struct {
	Status Status
	Image  image.Image
	Err    error
}

// Cache stores entries by image reference.
type Cache interface {
	Get(ref string) (Entry, bool)
	Set(ref string, e Entry)
}

// Memory is an in-process Cache bounded to a number of decoded images. When
// full, the least recently used reference is evicted. Rendering reads every
// visible thumbnail each frame, so on-screen images and fresh claims stay.
type Memory struct {
	// mu serializes writers so Claim can check and mark in one step.
	mu  sync.Mutex
	lru *lru.Cache[string, Entry]
}

// DefaultLimit bounds NewMemory caches created with a non-positive limit.
const DefaultLimit = 512

// NewMemory returns an empty cache holding at most limit entries.
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	c, err := lru.New[string, Entry](limit)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &Memory{lru: c}
}

// Get returns the entry for ref and marks it recently used.
func (m *Memory) Get(ref string) (Entry, bool) {
	return m.lru.Get(ref)
}

// Set stores e under ref. Empty references are ignored.
func (m *Memory) Set(ref string, e Entry) {
	if ref == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Add(ref, e)
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}

// Counts tallies entries by status.
func (m *Memory) Counts() map[Status]int {
	out := make(map[Status]int)
	for _, ref := range m.lru.Keys() {
		if e, ok := m.lru.Peek(ref); ok {
			out[e.Status]++
		}
	}
	return out
}

// claim marks ref as Loading if nothing is recorded for it yet.
func (m *Memory) claim(ref string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.lru.Peek(ref); ok && e.Status != Unknown {
		return false
	}
	m.lru.Add(ref, Entry{Status: Loading})
	return true
}

// Claim marks ref as Loading unless a load is already running or finished,
// and reports whether the caller now owns the load.
func Claim(c Cache, ref string) bool {
	if ref == "" {
		return false
	}
	if m, ok := c.(*Memory); ok {
		return m.claim(ref)
	}
	if e, ok := c.Get(ref); ok && e.Status != Unknown {
		return false
	}
	c.Set(ref, Entry{Status: Loading})
	return true
}
