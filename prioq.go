package thaiseg

// DefaultRunePublisher is the default implementation of RunePublisher.
//
// Subscribers are held in a queue which is partitioned into two regions:
// subscribers still active are kept at the front of the queue, subscribers
// which are done are kept at the end. gap is the index of the first done
// subscriber. Top() is the last subscriber of the queue, thus a done
// subscriber whenever there is one.
type DefaultRunePublisher struct {
	q              []RuneSubscriber
	gap            int
	penaltiesTotal []int
	aggregate      PenaltyAggregator
}

// Len returns the number of subscribers.
func (rpub *DefaultRunePublisher) Len() int {
	return len(rpub.q)
}

// Top returns the subscriber at the end of the queue, or nil.
func (rpub *DefaultRunePublisher) Top() RuneSubscriber {
	if len(rpub.q) == 0 {
		return nil
	}
	return rpub.q[len(rpub.q)-1]
}

func (rpub *DefaultRunePublisher) at(i int) RuneSubscriber {
	return rpub.q[i]
}

// Push puts a subscriber into the queue, respecting the partition.
func (rpub *DefaultRunePublisher) Push(rsub RuneSubscriber) {
	rpub.q = append(rpub.q, rsub)
	if rsub.Done() {
		return
	}
	last := len(rpub.q) - 1
	rpub.q[rpub.gap], rpub.q[last] = rpub.q[last], rpub.q[rpub.gap]
	rpub.gap++
}

// Fix re-establishes the partition after subscriber i may have changed its
// Done() state.
func (rpub *DefaultRunePublisher) Fix(i int) {
	if i < 0 || i >= len(rpub.q) {
		return
	}
	done := rpub.q[i].Done()
	if done && i < rpub.gap { // move to done-region
		rpub.gap--
		rpub.q[i], rpub.q[rpub.gap] = rpub.q[rpub.gap], rpub.q[i]
	} else if !done && i >= rpub.gap { // move to active region
		rpub.q[i], rpub.q[rpub.gap] = rpub.q[rpub.gap], rpub.q[i]
		rpub.gap++
	}
}

// PopDone removes and returns a done subscriber, if any. Otherwise it
// returns nil.
func (rpub *DefaultRunePublisher) PopDone() RuneSubscriber {
	if len(rpub.q) == 0 || rpub.gap >= len(rpub.q) {
		return nil
	}
	last := len(rpub.q) - 1
	subscr := rpub.q[last]
	rpub.q[last] = nil
	rpub.q = rpub.q[:last]
	return subscr
}
