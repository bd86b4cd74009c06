package event

import (
	"container/heap"
	"sync"
	"time"

	apperrors "github.com/eris/director/internal/errors"
)

// DebounceWindows names the minimum re-admission interval per class.
type DebounceWindows struct {
	State     time.Duration
	Damage    time.Duration
	Milestone time.Duration
}

func (w DebounceWindows) forClass(class DebounceClass) time.Duration {
	switch class {
	case DebounceClassState:
		return w.State
	case DebounceClassDamage:
		return w.Damage
	case DebounceClassMilestone:
		return w.Milestone
	default:
		return 0
	}
}

// heapItem is the container/heap element: an Event plus its insertion
// sequence, so ties within a priority resolve first-arrival-first-served
// rather than by heap-internal ordering.
type heapItem struct {
	event Event
	seq   uint64
}

type priorityHeap []heapItem

func (h priorityHeap) Len() int { return len(h) }

func (h priorityHeap) Less(i, j int) bool {
	if h[i].event.Priority != h[j].event.Priority {
		return h[i].event.Priority > h[j].event.Priority
	}
	return h[i].seq < h[j].seq
}

func (h priorityHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *priorityHeap) Push(x any) {
	*h = append(*h, x.(heapItem))
}

func (h *priorityHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// OverflowHandler is notified each time the queue evicts an entry under
// pressure. Implementations should be non-blocking (e.g. increment a
// metric); the processor does not wait on it.
type OverflowHandler func(evicted Event)

// Processor is the debounced priority queue described in the Event
// Processor component: submit is non-blocking, next pops the highest
// priority eligible event honoring per-category debounce, and a rolling
// chat buffer retains recent chat text for context assembly.
type Processor struct {
	mu sync.Mutex

	windows DebounceWindows
	cap     int
	onDrop  OverflowHandler

	heap    priorityHeap
	nextSeq uint64

	lastPopped map[DebounceClass]time.Time

	chatBuffer    []Event
	chatBufferCap int
}

// NewProcessor constructs a Processor with the given debounce windows,
// queue capacity cap, and chat buffer size.
func NewProcessor(windows DebounceWindows, queueCap, chatBufferCap int, onDrop OverflowHandler) *Processor {
	return &Processor{
		windows:       windows,
		cap:           queueCap,
		onDrop:        onDrop,
		lastPopped:    make(map[DebounceClass]time.Time),
		chatBufferCap: chatBufferCap,
	}
}

// Submit enqueues an event. Submit never blocks; if the queue is already at
// capacity, the lowest-priority oldest entry is evicted and onDrop is
// invoked with it (the overflow is never silent).
func (p *Processor) Submit(evt Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if evt.Kind == KindChat {
		p.chatBuffer = append(p.chatBuffer, evt)
		if len(p.chatBuffer) > p.chatBufferCap {
			p.chatBuffer = p.chatBuffer[len(p.chatBuffer)-p.chatBufferCap:]
		}
	}

	heap.Push(&p.heap, heapItem{event: evt, seq: p.nextSeq})
	p.nextSeq++

	if p.cap > 0 && p.heap.Len() > p.cap {
		p.evictLowestPriorityOldest()
	}
}

// evictLowestPriorityOldest drops the worst-ranked entry in the queue. The
// heap only gives cheap access to the best entry, so eviction scans — queue
// caps are small enough (hundreds, not millions) that this is acceptable.
// Caller must hold p.mu.
func (p *Processor) evictLowestPriorityOldest() {
	worst := 0
	for i := 1; i < len(p.heap); i++ {
		if p.heap[i].event.Priority < p.heap[worst].event.Priority {
			worst = i
		} else if p.heap[i].event.Priority == p.heap[worst].event.Priority && p.heap[i].seq < p.heap[worst].seq {
			worst = i
		}
	}
	evicted := p.heap[worst]
	p.heap = append(p.heap[:worst], p.heap[worst+1:]...)
	heap.Init(&p.heap)

	if p.onDrop != nil {
		p.onDrop(evicted.event)
	}
}

// Next returns the highest-priority eligible event, or ok=false if none is
// currently eligible (either the queue is empty or every remaining entry is
// still inside its debounce window).
func (p *Processor) Next(now time.Time) (evt Event, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var held []heapItem
	defer func() {
		for _, h := range held {
			heap.Push(&p.heap, h)
		}
	}()

	for p.heap.Len() > 0 {
		item := heap.Pop(&p.heap).(heapItem)

		if item.event.Kind == KindChat {
			return item.event, true
		}

		class, gated := debounceClassOf(item.event.Kind)
		if !gated {
			return item.event, true
		}

		last, seen := p.lastPopped[class]
		if !seen || item.event.ArrivalTime.Sub(last) > p.windows.forClass(class) {
			p.lastPopped[class] = now
			return item.event, true
		}

		held = append(held, item)
	}

	return Event{}, false
}

// ChatBuffer returns a snapshot of the rolling chat history, oldest first.
func (p *Processor) ChatBuffer() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.chatBuffer))
	copy(out, p.chatBuffer)
	return out
}

// Len reports the number of events currently queued (including entries
// ineligible under debounce).
func (p *Processor) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.heap.Len()
}

// ErrQueueOverflow is the domain error recorded when an overflow eviction
// occurs, for callers that want to surface it through HandleError rather
// than the lower-level OverflowHandler callback.
func ErrQueueOverflow(evictedEventKind Kind) error {
	return apperrors.WithMetadata(
		apperrors.CodeQueueOverflow,
		"event queue overflowed, evicted lowest-priority event",
		map[string]string{"EventKind": string(evictedEventKind)},
	)
}
