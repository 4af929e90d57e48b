package tokenize

import (
	"context"
	"fmt"
	"sync"

	"github.com/npillmayer/thaiseg/attacut"
	"github.com/npillmayer/thaiseg/newmm"
)

func init() {
	Register("newmm", segmentNewmm)
	Register("mm", segmentNewmm)
	Register("newmm-safe", func(ctx context.Context, text string, s Settings) ([]string, error) {
		return newmm.SegmentSafe(text, s.Dictionary), nil
	})
	Register("longest", func(ctx context.Context, text string, s Settings) ([]string, error) {
		return newmm.SegmentLongest(text, s.Dictionary), nil
	})
	Register("attacut", segmentAttacut)
}

func segmentNewmm(ctx context.Context, text string, s Settings) ([]string, error) {
	return newmm.Segment(text, s.Dictionary), nil
}

func segmentAttacut(ctx context.Context, text string, s Settings) ([]string, error) {
	m, err := attacutModel(s)
	if err != nil {
		return nil, err
	}
	return m.Tokenize(ctx, text)
}

// --- Model cache -----------------------------------------------------------

type modelKey struct {
	dir, lib  string
	api       uint32
	threshold float64
}

var models = struct {
	sync.Mutex
	loaded map[modelKey]*attacut.Model
}{loaded: make(map[modelKey]*attacut.Model)}

// openModel loads an attacut model.
var openModel = attacut.Open

// attacutModel returns a loaded model, opening it on first use.
func attacutModel(s Settings) (*attacut.Model, error) {
	key := modelKey{dir: s.ModelDir, lib: s.ORTLibrary, api: s.APIVersion, threshold: s.Threshold}
	models.Lock()
	defer models.Unlock()
	if m, ok := models.loaded[key]; ok {
		return m, nil
	}
	m, err := openModel(attacut.ModelConfig{
		Dir:         s.ModelDir,
		LibraryPath: s.ORTLibrary,
		APIVersion:  s.APIVersion,
		Threshold:   s.Threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("loading attacut model: %w", err)
	}
	models.loaded[key] = m
	return m, nil
}

// Close releases all loaded models.
func Close() {
	models.Lock()
	defer models.Unlock()
	for key, m := range models.loaded {
		m.Close()
		delete(models.loaded, key)
	}
}
