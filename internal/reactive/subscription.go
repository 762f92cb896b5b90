package reactive

// Subscription is one subscriber's handle on a shared query entry.
//
// Delivery coalesces: the channel holds only the newest result, so a slow
// consumer skips intermediate values but always observes the latest one.
type Subscription struct {
	registry *Registry
	entry    *entry
	ch       chan Result
}

// Updates returns the result channel. It is closed by Close; a receive after
// that yields the zero Result with ok == false.
func (s *Subscription) Updates() <-chan Result {
	return s.ch
}

// Close stops redelivery. An in-flight re-evaluation finishing afterwards is
// discarded, never delivered.
func (s *Subscription) Close() {
	s.registry.unsubscribe(s)
}

// deliver replaces any undrained result with the newer one.
// Callers must hold the registry lock, which serializes producers.
func (s *Subscription) deliver(res Result) {
	select {
	case <-s.ch:
	default:
	}

	s.ch <- res
}
