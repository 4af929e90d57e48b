/*
Package tokenize is the entry point for Thai word segmentation.

WordTokenize splits a text into words with one of several engines, selected
by name:

  newmm        dictionary-based maximal matching (default, alias "mm")
  newmm-safe   newmm, cutting long texts into chunks first
  longest      dictionary-based greedy longest matching
  attacut      neural segmentation, needs a model directory

Typical Usage

  words, err := tokenize.WordTokenize(ctx, "ฉันบอกว่า", tokenize.Engine("newmm"))

Engines are kept in a registry; clients may register engines of their own.
Selecting an engine unknown to the registry is an error.

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tokenize

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/thaiseg/dictionary"
	"github.com/npillmayer/thaiseg/tcc"
)

// tracer traces to the core-tracer.
func tracer() tracing.Trace {
	return gtrace.CoreTracer
}

// DefaultEngine is the engine used if none is selected.
const DefaultEngine = "newmm"

// ErrUnknownEngine is returned for engine names not in the registry.
var ErrUnknownEngine = errors.New("tokenize: unknown engine")

// Settings carries the options of a tokenization call to an engine.
type Settings struct {
	Engine         string
	Dictionary     *dictionary.Dictionary // nil selects the default dictionary
	KeepWhitespace bool
	ModelDir       string  // attacut model directory
	ORTLibrary     string  // ONNX Runtime library, detected if empty
	APIVersion     uint32  // ONNX Runtime C-API version
	Threshold      float64 // attacut decision threshold
}

// Option configures a tokenization call.
type Option func(*Settings)

// Engine selects the segmentation engine by name.
func Engine(name string) Option {
	return func(s *Settings) { s.Engine = name }
}

// Dictionary selects a custom dictionary for dictionary-based engines.
func Dictionary(dict *dictionary.Dictionary) Option {
	return func(s *Settings) { s.Dictionary = dict }
}

// KeepWhitespace selects whether whitespace is kept in the output.
// If false, tokens are trimmed of spaces and blank tokens are dropped.
func KeepWhitespace(keep bool) Option {
	return func(s *Settings) { s.KeepWhitespace = keep }
}

// AttacutModel sets the model directory for the attacut engine.
func AttacutModel(dir string) Option {
	return func(s *Settings) { s.ModelDir = dir }
}

// ORTLibrary sets the path of the ONNX Runtime shared library.
func ORTLibrary(path string) Option {
	return func(s *Settings) { s.ORTLibrary = path }
}

// APIVersion sets the ONNX Runtime C-API version.
func APIVersion(v uint32) Option {
	return func(s *Settings) { s.APIVersion = v }
}

// Threshold sets the decision threshold of the attacut engine.
func Threshold(th float64) Option {
	return func(s *Settings) { s.Threshold = th }
}

// --- Registry --------------------------------------------------------------

// SegmentFunc is the signature of a segmentation engine.
type SegmentFunc func(ctx context.Context, text string, s Settings) ([]string, error)

var registry = struct {
	sync.RWMutex
	engines map[string]SegmentFunc
}{engines: make(map[string]SegmentFunc)}

// Register adds an engine to the registry, replacing any engine of the
// same name.
func Register(name string, f SegmentFunc) {
	registry.Lock()
	defer registry.Unlock()
	registry.engines[strings.ToLower(name)] = f
}

// Engines returns the names of all registered engines, sorted.
func Engines() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.engines))
	for name := range registry.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(name string) (SegmentFunc, bool) {
	registry.RLock()
	defer registry.RUnlock()
	f, ok := registry.engines[strings.ToLower(name)]
	return f, ok
}

// --- Tokenizing ------------------------------------------------------------

// WordTokenize splits text into words. Unless whitespace is dropped,
// concatenating the words yields text.
func WordTokenize(ctx context.Context, text string, opts ...Option) ([]string, error) {
	s := Settings{Engine: DefaultEngine, KeepWhitespace: true}
	for _, opt := range opts {
		opt(&s)
	}
	f, ok := lookup(s.Engine)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, s.Engine)
	}
	if text == "" {
		return []string{}, nil
	}
	tokens, err := f(ctx, text, s)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", s.Engine, err)
	}
	tracer().P("engine", s.Engine).Debugf("%d tokens", len(tokens))
	if !s.KeepWhitespace {
		tokens = stripWhitespace(tokens)
	}
	return tokens, nil
}

// SubwordTokenize splits text into units smaller than words. The only
// engine is "tcc", which splits into Thai Character Clusters.
func SubwordTokenize(ctx context.Context, text string, engine string) ([]string, error) {
	if engine == "" {
		engine = "tcc"
	}
	if strings.ToLower(engine) != "tcc" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
	return tcc.Segment(text), nil
}

func stripWhitespace(tokens []string) []string {
	out := tokens[:0]
	for _, t := range tokens {
		if strings.TrimFunc(t, unicode.IsSpace) == "" {
			continue
		}
		out = append(out, strings.Trim(t, " "))
	}
	return out
}
