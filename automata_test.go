package thaiseg

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const (
	classA = iota + 1
	classB
)

// start A x B
func ruleAB(rec *Recognizer, r rune, cpClass int) NfaStateFn {
	rec.MatchLen++
	return finishAB
}

func finishAB(rec *Recognizer, r rune, cpClass int) NfaStateFn {
	if cpClass == classB {
		return DoAccept(rec, 0, InfinitePenalty)
	}
	return DoAbort(rec)
}

func TestRecognizerAccept(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	pub := NewRunePublisher()
	pub.SubscribeMe(NewPooledRecognizer(classA, ruleAB))
	longest, p := pub.PublishRuneEvent('a', classA)
	if longest != 1 || len(p) != 0 {
		t.Fatalf("expected active match of length 1 without penalties, have %d and %v", longest, p)
	}
	longest, p = pub.PublishRuneEvent('b', classB)
	if longest != 0 {
		t.Errorf("expected no active match after accept, have %d", longest)
	}
	if len(p) != 2 || p[1] != InfinitePenalty {
		t.Errorf("expected break between a and b to be suppressed, have %v", p)
	}
	if pub.Len() != 0 {
		t.Errorf("expected recognizer to be unsubscribed, have %d subscribers", pub.Len())
	}
}

func TestRecognizerAbort(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	pub := NewRunePublisher()
	pub.SubscribeMe(NewRecognizer(classA, ruleAB))
	pub.PublishRuneEvent('a', classA)
	_, p := pub.PublishRuneEvent('a', classA)
	if len(p) != 0 {
		t.Errorf("aborted recognizer should not contribute penalties, have %v", p)
	}
}

func TestAggregators(t *testing.T) {
	if AddPenalties(10, InfinitePenalty) != 1010 {
		t.Error("AddPenalties should add up penalties")
	}
	if MaxPenalties(10, InfiniteMerits) != 10 {
		t.Error("MaxPenalties should return the larger penalty")
	}
}
