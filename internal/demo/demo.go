// Package demo shows Thai word segmentation of a fixed sentence with the
// engines newmm and attacut.
package demo

import (
	"context"
	"fmt"
	"io"
)

// Sentence is the demo input: "I said I cannot do that".
const Sentence = "ฉันบอกว่าฉันทำอย่างนั้นไม่ได้"

// Segmenter splits text into words with the engine of the given name.
type Segmenter func(ctx context.Context, text, engine string) ([]string, error)

// Runs of the demo, label and engine.
var runs = []struct {
	label, engine string
}{
	{"nmm", "newmm"},
	{"attacut", "attacut"},
}

// Run writes the sentence, followed by one line per engine with the label
// of the engine and the words found. The first error ends the run; lines
// already written are kept.
func Run(ctx context.Context, w io.Writer, seg Segmenter) error {
	if _, err := fmt.Fprintln(w, Sentence); err != nil {
		return err
	}
	for _, r := range runs {
		tokens, err := seg(ctx, Sentence, r.engine)
		if err != nil {
			return fmt.Errorf("demo %s: %w", r.label, err)
		}
		if _, err = fmt.Fprintln(w, r.label, tokens); err != nil {
			return err
		}
	}
	return nil
}
