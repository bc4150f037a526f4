package cache

import "sync"

// lru cache
//   - map key -> list node for O(1) lookup
//   - list head is the most recently used entry, the tail is evicted first

type EvitedCallback = func(string, interface{})

type LruCache struct {
	mu       sync.Mutex
	capacity int64
	onEvited EvitedCallback
	maps     map[string]*LinkedListNode
	dList    *List
	hits     int64
	misses   int64
}

// NewLruCache holds at most cap entries; callback (may be nil) sees every
// evicted entry.
func NewLruCache(cap int64, callback EvitedCallback) *LruCache {
	if cap <= 0 {
		cap = 1
	}
	return &LruCache{
		capacity: cap,
		maps:     make(map[string]*LinkedListNode, cap),
		dList:    NewList(),
		onEvited: callback,
	}
}

func (l *LruCache) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.maps)
}

// Stats returns hit and miss counts since creation.
func (l *LruCache) Stats() (hits, misses int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hits, l.misses
}

func (l *LruCache) Get(key string) (interface{}, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	pv, is := l.maps[key]
	if is {
		l.hits++
		l.dList.toHead(pv)
		return pv.Value, true
	}
	l.misses++
	return nil, false
}

func (l *LruCache) Put(key string, value interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.put(key, value)
}

func (l *LruCache) put(key string, value interface{}) {
	if n, ok := l.maps[key]; ok {
		n.Value = value
		l.dList.toHead(n)
		return
	}
	if l.dList.Len() >= l.capacity {
		l.evict()
	}
	l.maps[key] = l.dList.PushFront(key, value)
}

func (l *LruCache) evict() {
	tail := l.dList.Back()
	if tail == nil {
		return
	}
	l.dList.Remove(tail)
	delete(l.maps, tail.Key)
	if l.onEvited != nil {
		l.onEvited(tail.Key, tail.Value)
	}
}
