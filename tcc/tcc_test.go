package tcc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestClusters(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	for i, tc := range []struct {
		input  string
		output string
	}{
		{"ฉันบอกว่าฉันทำอย่างนั้นไม่ได้", "ฉัน|บ|อ|ก|ว่า|ฉัน|ทำ|อ|ย่า|ง|นั้น|ไม่|ได้"},
		{"เกม", "เก|ม"},
		{"มือ", "มือ"},
		{"การ์ตูน", "การ์|ตู|น"},
		{"จันทร์", "จัน|ทร์"},
		{"๑๒๓", "๑๒๓"},
		{"ก", "ก"},
	} {
		clusters := Segment(tc.input)
		if strings.Join(clusters, "") != tc.input {
			t.Errorf("test #%d: clusters do not reconstruct input: %v", i, clusters)
		}
		if out := strings.Join(clusters, "|"); out != tc.output {
			t.Errorf("test #%d: expected %s, have %s", i, tc.output, out)
		}
	}
}

func TestEmpty(t *testing.T) {
	if clusters := Segment(""); len(clusters) != 0 {
		t.Errorf("expected no clusters for empty input, have %v", clusters)
	}
	if pos := Positions(""); len(pos) != 0 {
		t.Errorf("expected no positions for empty input, have %v", pos)
	}
}

func TestPositions(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	pos := Positions("ฉันบอกว่าฉันทำอย่างนั้นไม่ได้")
	expected := []int{3, 4, 5, 6, 9, 12, 14, 15, 18, 19, 23, 26, 29}
	if len(pos) != len(expected) {
		t.Fatalf("expected %d positions, have %v", len(expected), pos)
	}
	for i := range expected {
		if pos[i] != expected[i] {
			t.Errorf("expected position #%d to be %d, is %d", i, expected[i], pos[i])
		}
	}
}

func ExampleSegment() {
	fmt.Println(Segment("ไม่ได้"))
	// Output: [ไม่ ได้]
}

func TestClusterString(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	s := StringFromString("ฉันทำไม่ได้")
	if s.Len() != 4 {
		t.Fatalf("expected 4 clusters, have %d", s.Len())
	}
	if s.Nth(0) != "ฉัน" || s.Nth(3) != "ได้" {
		t.Errorf("unexpected clusters %q, %q", s.Nth(0), s.Nth(3))
	}
	if StringFromString("").Len() != 0 {
		t.Errorf("expected empty cluster string")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for index out of range")
		}
	}()
	s.Nth(4)
}
