/*
Package attacut implements neural Thai word segmentation.

Content

AttaCut segments Thai text with a small neural network, a dilated
convolutional model trained on the BEST corpus (Chormai et al., "AttaCut: A
Fast and Accurate Neural Thai Word Segmenter", 2019). For each code-point of
the input the model receives two features: the id of the character and the
id of the syllable the character belongs to. It answers with one logit per
code-point, estimating the chance that a word starts there.

This package does not train or bundle a model. A model directory holds

  model.onnx        the network, exported to ONNX
  characters.json   character vocabulary (string → id)
  syllables.json    syllable vocabulary (string → id)

and is evaluated with ONNX Runtime (see Open). Syllables are approximated
by Thai Character Clusters (package tcc).

Non-Thai runs of the input (Latin words, numbers, whitespace) are not shown
to the model, but are passed through as tokens of their own.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package attacut

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thaiseg/tcc"
	"github.com/npillmayer/thaiseg/thai"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// DefaultThreshold is the probability above which a code-point starts a word.
const DefaultThreshold = 0.5

// ErrModelNotFound is returned if a model directory or one of its files is
// missing.
var ErrModelNotFound = errors.New("attacut: model not found")

// ErrPrediction is returned if a predictor answers with a wrong number of
// logits.
var ErrPrediction = errors.New("attacut: prediction does not match input")

// Predictor evaluates the segmentation model. Given character ids and
// syllable ids of equal length n, it returns n logits.
type Predictor interface {
	Predict(ctx context.Context, chars, syllables []int64) ([]float32, error)
}

// Tokenizer splits Thai text into words, using a Predictor.
type Tokenizer struct {
	predictor Predictor
	chars     Vocabulary
	syllables Vocabulary
	threshold float64
}

// NewTokenizer creates a tokenizer from a predictor and the vocabularies
// the predictor has been trained with. A threshold outside of (0,1)
// selects DefaultThreshold.
func NewTokenizer(p Predictor, chars, syllables Vocabulary, threshold float64) *Tokenizer {
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Tokenizer{
		predictor: p,
		chars:     chars,
		syllables: syllables,
		threshold: threshold,
	}
}

// Threshold returns the decision threshold of the tokenizer.
func (t *Tokenizer) Threshold() float64 {
	return t.threshold
}

// Tokenize splits text into words. Concatenating the words yields text.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) ([]string, error) {
	tokens := make([]string, 0, len(text)/8)
	runes := []rune(text)
	for pos := 0; pos < len(runes); {
		if n := thai.NonThaiPrefix(runes[pos:]); n > 0 {
			tokens = append(tokens, string(runes[pos:pos+n]))
			pos += n
			continue
		}
		end := pos + 1
		for end < len(runes) && !thai.StartsNonThai(runes[end:]) {
			end++
		}
		words, err := t.tokenizeThai(ctx, runes[pos:end])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, words...)
		pos = end
	}
	return tokens, nil
}

// tokenizeThai segments a run of Thai text.
func (t *Tokenizer) tokenizeThai(ctx context.Context, run []rune) ([]string, error) {
	chars, syllables := t.features(run)
	logits, err := t.predictor.Predict(ctx, chars, syllables)
	if err != nil {
		return nil, fmt.Errorf("attacut: %w", err)
	}
	if len(logits) != len(run) {
		return nil, fmt.Errorf("%w: %d logits for %d characters", ErrPrediction, len(logits), len(run))
	}
	var words []string
	start := 0
	for i := 1; i < len(run); i++ {
		if sigmoid(logits[i]) > t.threshold {
			words = append(words, string(run[start:i]))
			start = i
		}
	}
	words = append(words, string(run[start:]))
	tracer().Debugf("attacut: %d characters → %d words", len(run), len(words))
	return words, nil
}

// features maps a run of Thai text to character ids and syllable ids.
// Every character gets the id of the cluster it belongs to.
func (t *Tokenizer) features(run []rune) (chars, syllables []int64) {
	chars = make([]int64, len(run))
	syllables = make([]int64, len(run))
	for i, r := range run {
		chars[i] = t.chars.ID(string(r))
	}
	clusters := tcc.StringFromString(string(run))
	i := 0
	for k := 0; k < clusters.Len(); k++ {
		id := t.syllables.ID(clusters.Nth(k))
		for range clusters.Nth(k) {
			syllables[i] = id
			i++
		}
	}
	return chars, syllables
}

func sigmoid(x float32) float64 {
	return 1 / (1 + math.Exp(-float64(x)))
}
