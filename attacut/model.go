package attacut

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ort "github.com/shota3506/onnxruntime-purego/onnxruntime"
)

// Files of a model directory.
const (
	ModelFile      = "model.onnx"
	CharactersFile = "characters.json"
	SyllablesFile  = "syllables.json"
)

// Model input and output names.
const (
	inputCharacters = "characters"
	inputSyllables  = "syllables"
	outputLogits    = "logits"
)

// ModelConfig tells Open where to find a model and the ONNX Runtime library.
type ModelConfig struct {
	Dir         string  // model directory
	LibraryPath string  // ONNX Runtime shared library; detected if empty
	APIVersion  uint32  // ORT C-API version, defaults to 23
	Threshold   float64 // decision threshold, defaults to DefaultThreshold
}

// Model is a Tokenizer backed by an ONNX Runtime session. Clients must
// call Close when done.
type Model struct {
	*Tokenizer
	predictor *onnxPredictor
}

// Open loads the model from cfg.Dir. A missing directory or file results
// in an error wrapping ErrModelNotFound.
func Open(cfg ModelConfig) (*Model, error) {
	if err := CheckModelDir(cfg.Dir); err != nil {
		return nil, err
	}
	chars, err := LoadVocabulary(filepath.Join(cfg.Dir, CharactersFile))
	if err != nil {
		return nil, err
	}
	syllables, err := LoadVocabulary(filepath.Join(cfg.Dir, SyllablesFile))
	if err != nil {
		return nil, err
	}
	lib, err := DetectRuntime(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}
	p, err := newONNXPredictor(filepath.Join(cfg.Dir, ModelFile), lib, cfg.APIVersion)
	if err != nil {
		return nil, err
	}
	tracer().Infof("attacut: model loaded from %s", cfg.Dir)
	return &Model{
		Tokenizer: NewTokenizer(p, chars, syllables, cfg.Threshold),
		predictor: p,
	}, nil
}

// Close releases the ONNX Runtime resources. It is safe to call Close more
// than once.
func (m *Model) Close() {
	if m != nil && m.predictor != nil {
		m.predictor.Close()
	}
}

// CheckModelDir checks if dir contains all the files of a model.
func CheckModelDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: no model directory configured", ErrModelNotFound)
	}
	for _, name := range []string{ModelFile, CharactersFile, SyllablesFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
	}
	return nil
}

// ErrRuntimeNotFound is returned if no ONNX Runtime library can be located.
var ErrRuntimeNotFound = errors.New("attacut: unable to detect ONNX Runtime library path")

// DetectRuntime locates the ONNX Runtime shared library. An explicit path
// wins, then the environment variables THAISEG_ORT_LIB and ORT_LIBRARY_PATH,
// then a list of common install locations.
func DetectRuntime(path string) (string, error) {
	if path == "" {
		path = os.Getenv("THAISEG_ORT_LIB")
	}
	if path == "" {
		path = os.Getenv("ORT_LIBRARY_PATH")
	}
	if path == "" {
		for _, c := range []string{
			"/usr/lib/libonnxruntime.so",
			"/usr/local/lib/libonnxruntime.so",
			"/opt/homebrew/lib/libonnxruntime.dylib",
			"C:/onnxruntime/lib/onnxruntime.dll",
		} {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}
	if path == "" {
		return "", ErrRuntimeNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return path, fmt.Errorf("onnx runtime library path check failed: %w", err)
	}
	return path, nil
}

// --- ONNX predictor --------------------------------------------------------

type onnxPredictor struct {
	runtime *ort.Runtime
	env     *ort.Env
	session *ort.Session
}

func newONNXPredictor(modelPath, libPath string, apiVersion uint32) (*onnxPredictor, error) {
	if apiVersion == 0 {
		apiVersion = 23
	}
	runtime, err := ort.NewRuntime(libPath, apiVersion)
	if err != nil {
		return nil, fmt.Errorf("ort runtime: %w", err)
	}
	env, err := runtime.NewEnv("thaiseg-attacut", ort.LoggingLevelWarning)
	if err != nil {
		_ = runtime.Close()
		return nil, fmt.Errorf("ort env: %w", err)
	}
	session, err := runtime.NewSession(env, modelPath, nil)
	if err != nil {
		env.Close()
		_ = runtime.Close()
		return nil, fmt.Errorf("ort session (%s): %w", modelPath, err)
	}
	return &onnxPredictor{runtime: runtime, env: env, session: session}, nil
}

// Predict runs the model on a batch of one.
func (p *onnxPredictor) Predict(ctx context.Context, chars, syllables []int64) ([]float32, error) {
	shape := []int64{1, int64(len(chars))}
	inputs := make(map[string]*ort.Value, 2)
	defer closeValues(inputs)
	v, err := ort.NewTensorValue(p.runtime, chars, shape)
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", inputCharacters, err)
	}
	inputs[inputCharacters] = v
	if v, err = ort.NewTensorValue(p.runtime, syllables, shape); err != nil {
		return nil, fmt.Errorf("input %q: %w", inputSyllables, err)
	}
	inputs[inputSyllables] = v
	outputs, err := p.session.Run(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	defer closeValues(outputs)
	out, ok := outputs[outputLogits]
	if !ok {
		return nil, fmt.Errorf("model has no output %q", outputLogits)
	}
	logits, _, err := ort.GetTensorData[float32](out)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", outputLogits, err)
	}
	return append([]float32(nil), logits...), nil
}

func (p *onnxPredictor) Close() {
	if p.session != nil {
		p.session.Close()
		p.session = nil
	}
	if p.env != nil {
		p.env.Close()
		p.env = nil
	}
	if p.runtime != nil {
		_ = p.runtime.Close()
		p.runtime = nil
	}
}

func closeValues(vals map[string]*ort.Value) {
	for _, v := range vals {
		if v != nil {
			v.Close()
		}
	}
}
