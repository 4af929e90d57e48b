package tcc

import (
	"fmt"
	"strings"

	"github.com/npillmayer/thaiseg/segment"
)

// String is a Thai text, indexed by Thai Character Clusters.
// A cluster string is a read-only data structure.
//
// Finding clusters is an operation with runtime complexity O(N). Clients
// should not convert large texts into cluster strings in one go, but rather
// operate on manageable fragments, such as runs of Thai text.
type String interface {
	Nth(int) string // return nth cluster
	Len() int       // length of string in units of clusters
}

type clusterString struct {
	content string
	breaks  []int // byte offsets of cluster starts, plus len(content)
}

// StringFromString creates a cluster string from a Go string.
func StringFromString(s string) String {
	cstr := &clusterString{content: s, breaks: make([]int, 1, len(s)/6+2)}
	if s == "" {
		return cstr
	}
	seg := segment.NewSegmenter(NewBreaker())
	seg.Init(strings.NewReader(s))
	br := 0
	for seg.Next() {
		br += len(seg.Bytes())
		cstr.breaks = append(cstr.breaks, br)
	}
	if err := seg.Err(); err != nil {
		tracer().Errorf("cluster string: %v", err)
	}
	return cstr
}

// Nth returns the nth cluster. It panics if n is out of range.
func (cstr *clusterString) Nth(n int) string {
	if n < 0 || n >= cstr.Len() {
		panic(fmt.Sprintf("cluster string index out of bounds, [%d] in [0:%d]", n, cstr.Len()))
	}
	return cstr.content[cstr.breaks[n]:cstr.breaks[n+1]]
}

func (cstr *clusterString) Len() int {
	return len(cstr.breaks) - 1
}
