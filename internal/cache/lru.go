package cache

// item is one cached entry linked into the recency ring.
type item[K comparable, V any] struct {
	key        K
	value      V
	prev, next *item[K, V]
}

// ring orders items by recency around a sentinel: root.next is the most
// recently used item and root.prev the least. Not safe for concurrent use.
type ring[K comparable, V any] struct {
	root item[K, V]
}

func (r *ring[K, V]) init() {
	r.root.next = &r.root
	r.root.prev = &r.root
}

func (r *ring[K, V]) empty() bool { return r.root.next == &r.root }

// pushFront links it as the most recently used item.
func (r *ring[K, V]) pushFront(it *item[K, V]) {
	it.prev = &r.root
	it.next = r.root.next
	r.root.next.prev = it
	r.root.next = it
}

// touch moves a linked item to the front.
func (r *ring[K, V]) touch(it *item[K, V]) {
	if r.root.next == it {
		return
	}
	r.unlink(it)
	r.pushFront(it)
}

func (r *ring[K, V]) unlink(it *item[K, V]) {
	it.prev.next = it.next
	it.next.prev = it.prev
	it.prev, it.next = nil, nil
}

// back returns the least recently used item, or nil when empty.
func (r *ring[K, V]) back() *item[K, V] {
	if r.empty() {
		return nil
	}
	return r.root.prev
}
