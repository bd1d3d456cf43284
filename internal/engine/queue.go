package engine

// Queue decouples event producers (engine workers, possibly many) from the
// single consumer. Publish never blocks on a slow consumer: events buffer
// in memory and drain on the consumer's schedule. Losing scrape throughput
// to a stalled reader is the failure mode this guards against.
type Queue struct {
	in  chan Event
	out chan Event
}

// NewQueue creates the queue and starts its pump.
func NewQueue() *Queue {
	q := &Queue{
		in:  make(chan Event),
		out: make(chan Event),
	}
	go q.pump()
	return q
}

// pump shuttles events from producers to the consumer through an unbounded
// in-memory buffer, preserving FIFO order per hand-off.
func (q *Queue) pump() {
	var buf []Event
	in := q.in
	for in != nil || len(buf) > 0 {
		var out chan Event
		var next Event
		if len(buf) > 0 {
			out = q.out
			next = buf[0]
		}
		select {
		case ev, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buf = append(buf, ev)
		case out <- next:
			buf = buf[1:]
		}
	}
	close(q.out)
}

// Publish enqueues an event. Safe for concurrent producers.
func (q *Queue) Publish(ev Event) {
	q.in <- ev
}

// Events returns the consumer channel. It closes after the producer calls
// Close and all buffered events have drained.
func (q *Queue) Events() <-chan Event {
	return q.out
}

// Close stops intake. Called exactly once by the producing engine after its
// final event.
func (q *Queue) Close() {
	close(q.in)
}
