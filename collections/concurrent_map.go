package collections

import "github.com/deso-protocol/go-deadlock"

// ConcurrentMap is a map guarded by a read/write mutex. Search workers park their
// per-chunk results here until the merge step consumes them in order.
type ConcurrentMap[Key comparable, Value any] struct {
	mtx deadlock.RWMutex
	m   map[Key]Value
}

func NewConcurrentMap[Key comparable, Value any]() *ConcurrentMap[Key, Value] {
	return &ConcurrentMap[Key, Value]{
		m: make(map[Key]Value),
	}
}

func (cm *ConcurrentMap[Key, Value]) Set(key Key, val Value) {
	cm.mtx.Lock()
	defer cm.mtx.Unlock()

	cm.m[key] = val
}

// Pop removes key and returns the value it held.
func (cm *ConcurrentMap[Key, Value]) Pop(key Key) (Value, bool) {
	cm.mtx.Lock()
	defer cm.mtx.Unlock()

	val, ok := cm.m[key]
	if ok {
		delete(cm.m, key)
	}
	return val, ok
}

func (cm *ConcurrentMap[Key, Value]) Count() int {
	cm.mtx.RLock()
	defer cm.mtx.RUnlock()

	return len(cm.m)
}
