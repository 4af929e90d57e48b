package attacut

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// boundaryPredictor is a Predictor which marks fixed positions as word
// starts, per call.
type boundaryPredictor struct {
	starts [][]int
	calls  int
}

func (bp *boundaryPredictor) Predict(ctx context.Context, chars, syllables []int64) ([]float32, error) {
	logits := make([]float32, len(chars))
	for i := range logits {
		logits[i] = -5
	}
	if bp.calls < len(bp.starts) {
		for _, s := range bp.starts[bp.calls] {
			logits[s] = 5
		}
	}
	bp.calls++
	return logits, nil
}

type shortPredictor struct{}

func (shortPredictor) Predict(ctx context.Context, chars, syllables []int64) ([]float32, error) {
	return []float32{1}, nil
}

type failingPredictor struct{}

func (failingPredictor) Predict(ctx context.Context, chars, syllables []int64) ([]float32, error) {
	return nil, errors.New("no model")
}

func testVocabularies() (Vocabulary, Vocabulary) {
	chars := Vocabulary{PadToken: 0, UnkToken: 1, "ฉ": 2, "ั": 3, "น": 4}
	syllables := Vocabulary{PadToken: 0, UnkToken: 1, "ฉัน": 2}
	return chars, syllables
}

func TestTokenize(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	chars, syllables := testVocabularies()
	p := &boundaryPredictor{starts: [][]int{{0, 3, 6, 9, 12, 14, 19, 23, 26}}}
	tok := NewTokenizer(p, chars, syllables, 0)
	text := "ฉันบอกว่าฉันทำอย่างนั้นไม่ได้"
	tokens, err := tok.Tokenize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(tokens, "") != text {
		t.Errorf("tokens do not reconstruct input: %v", tokens)
	}
	if fmt.Sprint(tokens) != "[ฉัน บอก ว่า ฉัน ทำ อย่าง นั้น ไม่ ได้]" {
		t.Errorf("unexpected tokens %v", tokens)
	}
}

func TestTokenizeMixed(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New()
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	chars, syllables := testVocabularies()
	p := &boundaryPredictor{starts: [][]int{{2}, {2}}}
	tok := NewTokenizer(p, chars, syllables, DefaultThreshold)
	tokens, err := tok.Tokenize(context.Background(), "ผมชอบ hello 42 ไปมา")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(tokens, "|") != "ผม|ชอบ| |hello| |42| |ไป|มา" {
		t.Errorf("unexpected tokens %q", tokens)
	}
	if p.calls != 2 {
		t.Errorf("expected model to be called for 2 Thai runs, was called %d times", p.calls)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	chars, syllables := testVocabularies()
	tok := NewTokenizer(failingPredictor{}, chars, syllables, 0)
	tokens, err := tok.Tokenize(context.Background(), "")
	if err != nil || tokens == nil || len(tokens) != 0 {
		t.Errorf("expected empty token list without error, have %v, %v", tokens, err)
	}
}

func TestPredictionErrors(t *testing.T) {
	chars, syllables := testVocabularies()
	tok := NewTokenizer(shortPredictor{}, chars, syllables, 0)
	if _, err := tok.Tokenize(context.Background(), "ฉัน"); !errors.Is(err, ErrPrediction) {
		t.Errorf("expected ErrPrediction, have %v", err)
	}
	tok = NewTokenizer(failingPredictor{}, chars, syllables, 0)
	if _, err := tok.Tokenize(context.Background(), "ฉัน"); err == nil {
		t.Errorf("expected predictor error to propagate")
	}
}

func TestThreshold(t *testing.T) {
	chars, syllables := testVocabularies()
	if th := NewTokenizer(nil, chars, syllables, 1.5).Threshold(); th != DefaultThreshold {
		t.Errorf("expected default threshold for invalid value, have %f", th)
	}
	// logit 5 ≈ 0.993; a threshold above suppresses all breaks
	p := &boundaryPredictor{starts: [][]int{{3}}}
	tok := NewTokenizer(p, chars, syllables, 0.999)
	tokens, _ := tok.Tokenize(context.Background(), "ฉันบอก")
	if len(tokens) != 1 {
		t.Errorf("expected a single token with high threshold, have %v", tokens)
	}
}

func TestFeatures(t *testing.T) {
	chars, syllables := testVocabularies()
	tok := NewTokenizer(nil, chars, syllables, 0)
	c, s := tok.features([]rune("ฉันบ"))
	if fmt.Sprint(c) != "[2 3 4 1]" {
		t.Errorf("unexpected character ids %v", c)
	}
	if fmt.Sprint(s) != "[2 2 2 1]" {
		t.Errorf("unexpected syllable ids %v", s)
	}
}

func TestCheckModelDir(t *testing.T) {
	if err := CheckModelDir(""); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound for empty dir, have %v", err)
	}
	dir := t.TempDir()
	if err := CheckModelDir(dir); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound for empty dir, have %v", err)
	}
	for _, name := range []string{ModelFile, CharactersFile, SyllablesFile} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := CheckModelDir(dir); err != nil {
		t.Errorf("expected complete model dir to pass, have %v", err)
	}
	if _, err := Open(ModelConfig{Dir: filepath.Join(dir, "nope")}); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected Open to fail with ErrModelNotFound, have %v", err)
	}
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), CharactersFile)
	if err := os.WriteFile(path, []byte(`{"<PAD>": 0, "<UNK>": 7, "ก": 9}`), 0644); err != nil {
		t.Fatal(err)
	}
	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatal(err)
	}
	if vocab.ID("ก") != 9 || vocab.ID("ข") != 7 {
		t.Errorf("unexpected ids: ก=%d, ข=%d", vocab.ID("ก"), vocab.ID("ข"))
	}
	if err = os.WriteFile(path, []byte(`[1,2]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = LoadVocabulary(path); err == nil {
		t.Errorf("expected error for malformed vocabulary")
	}
	for _, content := range []string{`null`, `{}`} {
		if err = os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err = LoadVocabulary(path); err == nil {
			t.Errorf("expected error for empty vocabulary %s", content)
		}
	}
}

func TestDetectRuntime(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "libonnxruntime.so")
	if err := os.WriteFile(lib, []byte("fake"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("THAISEG_ORT_LIB", lib)
	t.Setenv("ORT_LIBRARY_PATH", filepath.Join(t.TempDir(), "does-not-exist"))
	path, err := DetectRuntime("")
	if err != nil {
		t.Fatalf("DetectRuntime failed: %v", err)
	}
	if path != lib {
		t.Errorf("expected %q, got %q", lib, path)
	}
	if _, err = DetectRuntime(filepath.Join(t.TempDir(), "missing.so")); err == nil {
		t.Errorf("expected error for missing explicit library")
	}
}
