package demo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/npillmayer/thaiseg/tokenize"
)

// withAttacutStub segments with newmm, and with longest matching in place
// of the attacut model.
func withAttacutStub(ctx context.Context, text, engine string) ([]string, error) {
	if engine == "attacut" {
		engine = "longest"
	}
	return tokenize.WordTokenize(ctx, text, tokenize.Engine(engine))
}

func TestRunOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(context.Background(), &buf, withAttacutStub); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, have %d: %q", len(lines), lines)
	}
	if lines[0] != Sentence {
		t.Errorf("first line should be the sentence, is %q", lines[0])
	}
	if lines[1] != "nmm [ฉัน บอก ว่า ฉัน ทำ อย่างนั้น ไม่ได้]" {
		t.Errorf("unexpected newmm line %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "attacut [") {
		t.Errorf("unexpected attacut line %q", lines[2])
	}
}

func TestRunDeterministic(t *testing.T) {
	var first, second bytes.Buffer
	_ = Run(context.Background(), &first, withAttacutStub)
	_ = Run(context.Background(), &second, withAttacutStub)
	if first.String() != second.String() {
		t.Errorf("expected identical output for two runs")
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	failing := func(ctx context.Context, text, engine string) ([]string, error) {
		if engine == "attacut" {
			return nil, errors.New("model missing")
		}
		return []string{text}, nil
	}
	var buf bytes.Buffer
	err := Run(context.Background(), &buf, failing)
	if err == nil {
		t.Fatal("expected error from attacut run")
	}
	if !strings.Contains(err.Error(), "attacut") {
		t.Errorf("expected error to name the failing run, have %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("expected lines before the failure to be kept, have %q", buf.String())
	}
}

func TestRunUnknownEngine(t *testing.T) {
	seg := func(ctx context.Context, text, engine string) ([]string, error) {
		return tokenize.WordTokenize(ctx, text, tokenize.Engine(engine+"-x"))
	}
	err := Run(context.Background(), &bytes.Buffer{}, seg)
	if !errors.Is(err, tokenize.ErrUnknownEngine) {
		t.Errorf("expected ErrUnknownEngine, have %v", err)
	}
}

func ExampleRun() {
	seg := func(ctx context.Context, text, engine string) ([]string, error) {
		return []string{"<" + engine + ">"}, nil
	}
	_ = Run(context.Background(), os.Stdout, seg)
	// Output:
	// ฉันบอกว่าฉันทำอย่างนั้นไม่ได้
	// nmm [<newmm>]
	// attacut [<attacut>]
}
