package asynclog

import "sync"

// OverflowPolicy selects what a bounded dispatch queue does with a record
// that arrives while the queue is full.
type OverflowPolicy int

const (
	// OverflowBlock parks the producer until the consumer makes room.
	OverflowBlock OverflowPolicy = iota
	// OverflowDropNewest rejects the incoming record.
	OverflowDropNewest
	// OverflowDropOldest evicts the oldest queued record to make room.
	OverflowDropOldest
)

// item is one queued unit of work for the drain consumer: either a record to
// replay or a flush barrier to acknowledge.
type item struct {
	rec     Record
	barrier chan struct{}
}

// dispatchQueue is the ordered conduit between producer goroutines and the
// single drain consumer. The default configuration (capacity 0) is unbounded:
// a push never fails and never blocks on the consumer, at the accepted cost
// of unbounded memory when producers outrun the sink. A positive capacity
// bounds the record count and applies the overflow policy; barriers are
// exempt from the bound so Flush cannot deadlock against a full queue.
//
// Its mutex is the only producer-side coordination point in the pipeline.
type dispatchQueue struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	notFull  *sync.Cond
	items    []item
	head     int
	records  int
	closed   bool

	capacity int
	policy   OverflowPolicy
}

func newDispatchQueue(capacity int, policy OverflowPolicy) *dispatchQueue {
	q := &dispatchQueue{capacity: capacity, policy: policy}
	q.nonEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

func (q *dispatchQueue) depth() int {
	return len(q.items) - q.head
}

// full reports whether the record count has reached the bound. Barriers are
// not counted. Caller holds mu.
func (q *dispatchQueue) full() bool {
	return q.capacity > 0 && q.records >= q.capacity
}

// push appends it to the queue. It reports whether the item was accepted;
// false means the queue is closed or the overflow policy dropped the record.
func (q *dispatchQueue) push(it item) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	if it.barrier == nil {
		for q.full() {
			switch q.policy {
			case OverflowDropNewest:
				return false
			case OverflowDropOldest:
				q.evictOldest()
			default:
				q.notFull.Wait()
				if q.closed {
					return false
				}
			}
		}
		q.records++
	}
	q.items = append(q.items, it)
	q.nonEmpty.Signal()
	return true
}

// evictOldest removes the oldest record, skipping barriers. full() implies a
// record exists to evict. Caller holds mu.
func (q *dispatchQueue) evictOldest() {
	for i := q.head; i < len(q.items); i++ {
		if q.items[i].barrier != nil {
			continue
		}
		copy(q.items[i:], q.items[i+1:])
		q.items = q.items[:len(q.items)-1]
		q.records--
		return
	}
}

// pop blocks until an item is available and removes it. It reports false once
// the queue is closed and fully drained, which is the consumer's signal to
// exit.
func (q *dispatchQueue) pop() (item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.depth() == 0 {
		if q.closed {
			return item{}, false
		}
		q.nonEmpty.Wait()
	}
	it := q.items[q.head]
	q.items[q.head] = item{}
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > len(q.items)/2 {
		// Reclaim the dead prefix so a queue that never fully drains does
		// not retain one slot per record ever pushed.
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	if it.barrier == nil {
		q.records--
		q.notFull.Signal()
	}
	return it, true
}

// close stops intake. Items already queued remain poppable; pop reports
// false only after the backlog is drained.
func (q *dispatchQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.nonEmpty.Broadcast()
	q.notFull.Broadcast()
}
