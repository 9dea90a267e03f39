package engine

// Action is a mutation postponed to the end of the current tick.
type Action func()

// Deferred is the end-of-tick action queue. Actions run in push order.
// Actions pushed while the queue drains run on the next drain.
type Deferred struct {
	queue []Action
}

// Push appends an action.
func (d *Deferred) Push(a Action) {
	if a != nil {
		d.queue = append(d.queue, a)
	}
}

// Len returns the number of pending actions.
func (d *Deferred) Len() int { return len(d.queue) }

// Drain runs every action queued before the call and returns how many ran.
func (d *Deferred) Drain() int {
	batch := d.queue
	d.queue = nil
	for i, a := range batch {
		a()
		batch[i] = nil
	}
	return len(batch)
}
