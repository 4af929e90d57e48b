package fixture

import (
	"fmt"
	"strings"
	"testing"
)

func TestBreakTestInput(t *testing.T) {
	in, out := BreakTestInput("ผม ÷ ชอบ ÷ U+0020 ÷ Py × thon ÷")
	if in != "ผมชอบ Python" {
		t.Errorf("unexpected input %q", in)
	}
	if fmt.Sprintf("%q", out) != `["ผม" "ชอบ" " " "Python"]` {
		t.Errorf("unexpected segments %q", out)
	}
}

func TestScan(t *testing.T) {
	tf := NewTestFile(strings.NewReader("# header\n\nก ÷ ข # two\nค\n"))
	defer tf.Close()
	var cases []string
	for tf.Scan() {
		cases = append(cases, tf.Text())
	}
	if tf.Err() != nil {
		t.Fatal(tf.Err())
	}
	if len(cases) != 2 || cases[0] != "ก ÷ ข" || cases[1] != "ค" {
		t.Errorf("unexpected test cases %q", cases)
	}
}
