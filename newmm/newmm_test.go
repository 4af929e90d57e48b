package newmm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/thaiseg/dictionary"
)

func TestSegment(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	for i, tc := range []struct {
		input  string
		output string
	}{
		{"ฉันบอกว่าฉันทำอย่างนั้นไม่ได้", "ฉัน|บอก|ว่า|ฉัน|ทำ|อย่างนั้น|ไม่ได้"},
		{"ผมรักภาษาไทย", "ผม|รัก|ภาษาไทย"},
		{"ฉันกินปลา", "ฉัน|กิน|ปลา"},
		{"ผมชอบ Python 3.12 มาก", "ผม|ชอบ| |Python| |3.12| |มาก"},
		{"สวัสดี\nครับ", "สวัสดี|\n|ครับ"},
		{"hello", "hello"},
	} {
		tokens := Segment(tc.input, nil)
		if strings.Join(tokens, "") != tc.input {
			t.Errorf("test #%d: tokens do not reconstruct input: %q", i, tokens)
		}
		if out := strings.Join(tokens, "|"); out != tc.output {
			t.Errorf("test #%d: expected %q, have %q", i, tc.output, out)
		}
	}
}

func TestSegmentEmpty(t *testing.T) {
	for _, f := range []func(string, *dictionary.Dictionary) []string{Segment, SegmentSafe, SegmentLongest} {
		tokens := f("", nil)
		if tokens == nil || len(tokens) != 0 {
			t.Errorf("expected empty non-nil slice, have %#v", tokens)
		}
	}
}

func TestSegmentCustomDictionary(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	dict := dictionary.New("ฉัน", "บอกว่า", "ฉันทำ")
	tokens := Segment("ฉันบอกว่า", dict)
	if fmt.Sprint(tokens) != "[ฉัน บอกว่า]" {
		t.Errorf("expected [ฉัน บอกว่า], have %v", tokens)
	}
}

// Every prefix of a long repeated word is a dictionary word. The position
// graph outgrows MaxGraphSize before the first ambiguity window closes.
func TestSegmentLargeGraph(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	dict := dictionary.New()
	for k := 1; k <= 30; k++ {
		dict.Add(strings.Repeat("กา", k))
	}
	text := []rune(strings.Repeat("กา", 40))
	if n := len(dict.Prefixes(text, 0)) + len(dict.Prefixes(text, 2)); n <= MaxGraphSize {
		t.Fatalf("expected more than %d edges from the first two positions, have %d", MaxGraphSize, n)
	}
	tokens := Segment(string(text), dict)
	if strings.Join(tokens, "") != string(text) {
		t.Fatalf("tokens do not reconstruct input: %q", tokens)
	}
	if len(tokens) != 2 || tokens[0] != strings.Repeat("กา", 30) || tokens[1] != strings.Repeat("กา", 10) {
		t.Errorf("expected 30 + 10 syllables, have %q", tokens)
	}
}

func TestSegmentDeterministic(t *testing.T) {
	text := "ฉันบอกว่าฉันทำอย่างนั้นไม่ได้"
	first := Segment(text, nil)
	for i := 0; i < 5; i++ {
		if fmt.Sprint(Segment(text, nil)) != fmt.Sprint(first) {
			t.Fatalf("segmenting is not deterministic")
		}
	}
}

func TestSegmentSafe(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	short := "ฉันบอกว่าฉันทำอย่างนั้นไม่ได้"
	if fmt.Sprint(SegmentSafe(short, nil)) != fmt.Sprint(Segment(short, nil)) {
		t.Errorf("safe mode should not change segmentation of short texts")
	}
	long := strings.Repeat(short+" ", 10)
	tokens := SegmentSafe(long, nil)
	if strings.Join(tokens, "") != long {
		t.Fatalf("safe mode tokens do not reconstruct input")
	}
	long = strings.Repeat("กกกกกกกกกก", 30) // no spaces, no dictionary words
	tokens = SegmentSafe(long, nil)
	if strings.Join(tokens, "") != long {
		t.Fatalf("safe mode tokens do not reconstruct input without spaces")
	}
	if len(tokens) < 2 {
		t.Errorf("expected long text to be cut into chunks, have %d token(s)", len(tokens))
	}
}

func TestSegmentLongest(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	text := "ฉันบอกว่าฉันทำอย่างนั้นไม่ได้"
	tokens := SegmentLongest(text, nil)
	if strings.Join(tokens, "|") != "ฉัน|บอก|ว่า|ฉัน|ทำ|อย่างนั้น|ไม่ได้" {
		t.Errorf("unexpected longest matching result %v", tokens)
	}
	tokens = SegmentLongest("ผมชอบ hello", nil)
	if strings.Join(tokens, "|") != "ผม|ชอบ| |hello" {
		t.Errorf("unexpected longest matching result %q", tokens)
	}
}

func TestShortestPath(t *testing.T) {
	g := make(graph)
	g.addEdge(0, 2)
	g.addEdge(0, 3)
	g.addEdge(2, 5)
	g.addEdge(3, 5)
	g.addEdge(5, 7)
	if path := shortestPath(g, 0, 7); fmt.Sprint(path) != "[0 2 5 7]" {
		t.Errorf("expected path [0 2 5 7], have %v", path)
	}
	if path := shortestPath(g, 3, 3); fmt.Sprint(path) != "[3]" {
		t.Errorf("expected trivial path, have %v", path)
	}
}

func ExampleSegment() {
	fmt.Println(Segment("ฉันบอกว่าฉันทำอย่างนั้นไม่ได้", nil))
	// Output: [ฉัน บอก ว่า ฉัน ทำ อย่างนั้น ไม่ได้]
}
