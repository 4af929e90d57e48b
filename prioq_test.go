package thaiseg

import "testing"

// --- ad hoc subscriber for testing purposes ---------------------------

type fakeRule struct { // will implement RuneSubscriber
	done  bool
	unsub int
}

func (fr *fakeRule) Done() bool                                 { return fr.done }
func (fr *fakeRule) Unsubscribed()                              { fr.unsub++ }
func (fr *fakeRule) RuneEvent(r rune, codePointClass int) []int { return nil }
func (fr *fakeRule) MatchLength() int                           { return 1 }

// ----------------------------------------------------------------------

func TestQueueSingleDone(t *testing.T) {
	pq := &DefaultRunePublisher{}
	if pq.PopDone() != nil {
		t.Error("should not be able to PopDone() on empty Q")
	}
	pq.Push(&fakeRule{done: true})
	if pq.Len() != 1 {
		t.Error("Len() should be 1 for Q with 1 item")
	}
	if !pq.Top().Done() {
		t.Error("single item in Q is done; access by Top() does not reflect this")
	}
	if pq.gap != 0 {
		t.Errorf("gap after Push() is wrong, should be 0, is %d", pq.gap)
	}
	pq.Fix(0)
	if pq.gap != 0 {
		t.Errorf("gap after Fix() is wrong, should be 0, is %d", pq.gap)
	}
}

func TestQueueRevive(t *testing.T) {
	pq := &DefaultRunePublisher{}
	fr := &fakeRule{done: true}
	pq.Push(fr)
	pq.Push(&fakeRule{done: false})
	if !pq.Top().Done() {
		t.Error("top item in Q is not done; should be")
	}
	if pq.gap != 1 {
		t.Errorf("gap after 2 x Push() is wrong, should be 1, is %d", pq.gap)
	}
	fr.done = false
	pq.Fix(1)
	if pq.Top().Done() {
		t.Error("top item in Q is done; should not be any more")
	}
	if pq.gap != 2 {
		t.Errorf("gap after Fix() in Q with length 2 is wrong: %d", pq.gap)
	}
}

func TestQueuePopAfterFix(t *testing.T) {
	pq := &DefaultRunePublisher{}
	rules := []*fakeRule{{}, {}, {}, {}}
	for _, fr := range rules {
		pq.Push(fr)
	}
	if pq.gap != 4 {
		t.Errorf("gap after 4 x Push() is wrong: %d", pq.gap)
	}
	for i := 2; i >= 0; i-- {
		rules[i].done = true
		pq.Fix(i)
	}
	if pq.gap != 1 {
		t.Errorf("gap after Fix() is wrong: %d", pq.gap)
	}
	for j := 0; j < 3; j++ {
		if s := pq.PopDone(); s == nil {
			t.Error("top 3 items should have been done")
		}
	}
	if pq.Top().Done() {
		t.Error("only item in Q is done; should not be")
	}
	if pq.Len() != 1 {
		t.Error("Len() should be 1 after 3 pops")
	}
}

func TestQueueInterleaved(t *testing.T) {
	pq := &DefaultRunePublisher{}
	fr1, fr2, fr3 := &fakeRule{}, &fakeRule{}, &fakeRule{}
	pq.Push(fr1)
	pq.Push(fr2)
	pq.Push(fr3)
	fr2.done = true
	pq.Fix(1)
	if s := pq.PopDone(); s != fr2 {
		t.Errorf("expected popped item to be the done one, is %v", s)
	}
	pq.Push(&fakeRule{})
	if s := pq.PopDone(); s != nil {
		t.Error("top item should not have been done")
	}
	fr1.done = true
	pq.Fix(0)
	if s := pq.PopDone(); s != fr1 {
		t.Error("new top item should have been done")
	}
}

func TestPublishUnsubscribesDoneRules(t *testing.T) {
	pub := NewRunePublisher()
	alive, dying := &fakeRule{}, &fakeRule{}
	pub.SubscribeMe(alive)
	pub.SubscribeMe(dying)
	dying.done = true // will be noticed during the next rune event
	longest, _ := pub.PublishRuneEvent('ก', 0)
	if longest != 1 {
		t.Errorf("expected longest active match to be 1, is %d", longest)
	}
	if dying.unsub != 1 || alive.unsub != 0 {
		t.Errorf("expected exactly the done rule to be unsubscribed, have %d|%d", alive.unsub, dying.unsub)
	}
	if pub.Len() != 1 {
		t.Errorf("expected 1 remaining subscriber, have %d", pub.Len())
	}
}
